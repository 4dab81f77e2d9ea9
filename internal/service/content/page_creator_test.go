package content

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wireshell/internal/config"
	"wireshell/internal/domain"
	models "wireshell/internal/domain/models/content"
	contentSvc "wireshell/internal/domain/services/content"
)

func TestPageCreator_SkipsDuplicatesAndCreatesTheRest(t *testing.T) {
	f := newFixture()

	result, err := f.creator.CreatePages(context.Background(), &contentSvc.CreatePagesRequest{
		Names:        SplitNames("foo,bar"),
		TemplateName: "basic-page",
		ParentPath:   "blog",
	})
	require.NoError(t, err)

	require.Len(t, result.Pages, 2)
	assert.Equal(t, models.PageStateSkipped, result.Pages[0].State)
	assert.Equal(t, models.PageStateCommitted, result.Pages[1].State)
	assert.Equal(t, 1, result.Created())

	assert.Equal(t, []string{"The page name 'foo' is already taken."}, f.reporter.errors)
	assert.Equal(t, []string{"Page `bar` has been successfully created."}, f.reporter.successes)

	// the existing page is untouched
	assert.Equal(t, 1, f.pages.count("/blog/foo/"))
	assert.Equal(t, "p-foo", f.pages.byPath["/blog/foo/"].ID)

	bar := f.pages.byPath["/blog/bar/"]
	require.NotNil(t, bar)
	assert.Equal(t, "bar", bar.Title)
	assert.Equal(t, "t-basic", bar.TemplateID)
	assert.Equal(t, "p-blog", *bar.ParentID)
}

func TestPageCreator_FatalResolutionCreatesNothing(t *testing.T) {
	tests := []struct {
		name     string
		template string
		parent   string
		wantErr  error
	}{
		{name: "unknown template", template: "missing", wantErr: domain.ErrTemplateNotFound},
		{name: "template disallows new pages", template: "system", wantErr: domain.ErrTemplateDisallowsNewPages},
		{name: "parent disallows children", template: "basic-page", parent: "files", wantErr: domain.ErrParentDisallowsChildren},
		{name: "template not allowed below parent", template: "blog-post", parent: "", wantErr: domain.ErrTemplateNotAllowedAsChild},
		{name: "parent does not accept template", template: "event", parent: "blog", wantErr: domain.ErrTemplateNotAllowedAsParent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			result, err := f.creator.CreatePages(context.Background(), &contentSvc.CreatePagesRequest{
				Names:        []string{"new-one", "new-two"},
				TemplateName: tt.template,
				ParentPath:   tt.parent,
				FieldData:    []byte(`{"title": "x"}`),
			})

			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 1, domain.ExitCode(err))
			assert.Empty(t, f.pages.creates)
			assert.Empty(t, f.pages.updates)
		})
	}
}

func TestPageCreator_TwoPhaseCommit(t *testing.T) {
	f := newFixture()

	_, err := f.creator.CreatePages(context.Background(), &contentSvc.CreatePagesRequest{
		Names:        []string{"Gallery"},
		TemplateName: "basic-page",
		FieldData:    []byte(`{"body": "text", "images": ["a.jpg"]}`),
	})
	require.NoError(t, err)

	require.Len(t, f.pages.creates, 1)
	require.Len(t, f.pages.updates, 1)

	shell := f.pages.creates[0]
	assert.Equal(t, "gallery", shell.Name)
	assert.Equal(t, "/gallery/", shell.Path)
	assert.Equal(t, "Gallery", shell.Title)
	assert.Empty(t, shell.Fields, "shell commit carries default field values")

	final := f.pages.updates[0]
	assert.Equal(t, shell.ID, final.ID)
	assert.Equal(t, "text", final.Fields["body"])
	assert.Equal(t, []interface{}{"a.jpg"}, final.Fields["images"])
}

func TestPageCreator_UnknownFieldsDoNotAbort(t *testing.T) {
	f := newFixture()

	result, err := f.creator.CreatePages(context.Background(), &contentSvc.CreatePagesRequest{
		Names:        []string{"hello"},
		TemplateName: "basic-page",
		FieldData:    []byte(`{"Title": "Hello", "ghostfield": "x"}`),
	})
	require.NoError(t, err)

	require.Len(t, result.Pages, 1)
	assert.Equal(t, models.PageStateCommitted, result.Pages[0].State)
	assert.Equal(t, []string{"ghostfield"}, result.Pages[0].UnknownFields)
	require.Len(t, f.reporter.warnings, 1)
	assert.Contains(t, f.reporter.warnings[0], "ghostfield")

	page := f.pages.byPath["/hello/"]
	require.NotNil(t, page)
	assert.Equal(t, "Hello", page.Title)
	assert.NotContains(t, page.Fields, "ghostfield")
}

func TestPageCreator_TitleOverrideAndNameFromPayload(t *testing.T) {
	f := newFixture()

	result, err := f.creator.CreatePages(context.Background(), &contentSvc.CreatePagesRequest{
		Names:        []string{"draft"},
		TemplateName: "basic-page",
		Title:        "Shared Title",
		FieldData:    []byte(`{"name": "Final Name!"}`),
	})
	require.NoError(t, err)

	require.Len(t, result.Pages, 1)
	assert.Equal(t, "final-name", result.Pages[0].Name)
	assert.Equal(t, "/final-name/", result.Pages[0].Path)

	page := f.pages.byPath["/final-name/"]
	require.NotNil(t, page)
	assert.Equal(t, "Shared Title", page.Title)
	assert.Nil(t, f.pages.byPath["/draft/"])
}

func TestPageCreator_WithoutFieldDataStillCreates(t *testing.T) {
	f := newFixture()

	result, err := f.creator.CreatePages(context.Background(), &contentSvc.CreatePagesRequest{
		Names:        []string{"About Us"},
		TemplateName: "basic-page",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Created())
	require.Len(t, f.pages.creates, 1)
	require.Len(t, f.pages.updates, 1)
	assert.Equal(t, "About Us", f.pages.byPath["/about-us/"].Title)
}

func TestPageCreator_InvalidFieldDataIsFatalBeforeAnyPage(t *testing.T) {
	f := newFixture()

	_, err := f.creator.CreatePages(context.Background(), &contentSvc.CreatePagesRequest{
		Names:        []string{"a", "b"},
		TemplateName: "basic-page",
		FieldData:    []byte(`[1, 2]`),
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, f.pages.creates)
}

func TestPageCreator_RequestValidation(t *testing.T) {
	tests := []struct {
		name  string
		names []string
	}{
		{name: "no names", names: nil},
		{name: "name longer than the input cap", names: []string{strings.Repeat("a", config.MaxPageNameInputLength+1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			_, err := f.creator.CreatePages(context.Background(), &contentSvc.CreatePagesRequest{
				Names:        tt.names,
				TemplateName: "basic-page",
			})
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Empty(t, f.pages.creates)
		})
	}
}

func TestPageCreator_UnusableNameIsSkipped(t *testing.T) {
	f := newFixture()

	result, err := f.creator.CreatePages(context.Background(), &contentSvc.CreatePagesRequest{
		Names:        []string{"!!!", "ok"},
		TemplateName: "basic-page",
	})
	require.NoError(t, err)

	assert.Equal(t, models.PageStateSkipped, result.Pages[0].State)
	assert.Equal(t, models.PageStateCommitted, result.Pages[1].State)
	assert.Len(t, f.reporter.errors, 1)
}

func TestPageCreator_ConflictOnCreateIsSkipped(t *testing.T) {
	f := newFixture()
	f.pages.createErr = &domain.ConflictError{Message: "taken", ResourceType: "page"}

	result, err := f.creator.CreatePages(context.Background(), &contentSvc.CreatePagesRequest{
		Names:        []string{"racy"},
		TemplateName: "basic-page",
	})
	require.NoError(t, err)

	assert.Equal(t, models.PageStateSkipped, result.Pages[0].State)
	assert.Equal(t, []string{"The page name 'racy' is already taken."}, f.reporter.errors)
}

func TestPageCreator_StoreFailureAborts(t *testing.T) {
	f := newFixture()
	f.pages.createErr = errors.New("connection reset")

	result, err := f.creator.CreatePages(context.Background(), &contentSvc.CreatePagesRequest{
		Names:        []string{"one", "two"},
		TemplateName: "basic-page",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Empty(t, result.Pages)
}

func TestSplitNames(t *testing.T) {
	assert.Equal(t, []string{"foo", "bar"}, SplitNames("foo,bar"))
	assert.Equal(t, []string{"foo", "bar"}, SplitNames(" foo , ,bar,"))
	assert.Nil(t, SplitNames(" , "))
}
