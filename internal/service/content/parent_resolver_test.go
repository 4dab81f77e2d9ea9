package content

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wireshell/internal/domain"
	models "wireshell/internal/domain/models/content"
)

func TestParentResolver_Resolve(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		template string
		wantPath string
		wantErr  error
	}{
		{name: "empty path uses root", path: "", template: "basic-page", wantPath: "/"},
		{name: "unknown path falls back to root", path: "nowhere", template: "basic-page", wantPath: "/"},
		{name: "bare name", path: "blog", template: "basic-page", wantPath: "/blog/"},
		{name: "slashes normalised", path: "/blog/", template: "blog-post", wantPath: "/blog/"},
		{name: "nested parent", path: "blog/foo", template: "basic-page", wantPath: "/blog/foo/"},
		{name: "parent forbids children", path: "files", template: "basic-page", wantErr: domain.ErrParentDisallowsChildren},
		{name: "template restricts its parents", path: "", template: "blog-post", wantErr: domain.ErrTemplateNotAllowedAsChild},
		{name: "parent restricts its children", path: "blog", template: "event", wantErr: domain.ErrTemplateNotAllowedAsParent},
		{name: "no-children checked before template parents", path: "files", template: "blog-post", wantErr: domain.ErrParentDisallowsChildren},
	}

	f := newFixture()
	resolver := NewParentResolver(f.pages, f.templates, testLogger())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl, err := f.templates.GetByName(context.Background(), tt.template)
			require.NoError(t, err)

			parent, err := resolver.Resolve(context.Background(), tt.path, tpl)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				var placement *domain.PlacementError
				require.ErrorAs(t, err, &placement)
				assert.Equal(t, tt.template, placement.Template)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, parent.Path)
		})
	}
}

func TestParentResolver_ChildRestrictionCheckedBeforeParentRestriction(t *testing.T) {
	f := newFixture()
	// Restrict both sides so the template's allowed parents and the
	// parent's allowed children reject the placement.
	strict := &models.Template{ID: "t-strict", Name: "strict", ParentTemplateIDs: []string{"t-home"}}
	f.templates.byName[strict.Name] = strict

	resolver := NewParentResolver(f.pages, f.templates, testLogger())
	_, err := resolver.Resolve(context.Background(), "blog", strict)

	assert.ErrorIs(t, err, domain.ErrTemplateNotAllowedAsChild)
}

func TestParentResolver_MissingRoot(t *testing.T) {
	f := newFixture()
	delete(f.pages.byPath, "/")
	tpl, _ := f.templates.GetByName(context.Background(), "basic-page")

	resolver := NewParentResolver(f.pages, f.templates, testLogger())
	_, err := resolver.Resolve(context.Background(), "", tpl)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
