package content

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"sort"

	"wireshell/internal/domain"
	models "wireshell/internal/domain/models/content"
	"wireshell/internal/sanitizer"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeTemplateRepo struct {
	byName map[string]*models.Template
}

func newFakeTemplateRepo(templates ...*models.Template) *fakeTemplateRepo {
	r := &fakeTemplateRepo{byName: map[string]*models.Template{}}
	for _, t := range templates {
		r.byName[t.Name] = t
	}
	return r
}

func (r *fakeTemplateRepo) GetByName(_ context.Context, name string) (*models.Template, error) {
	if t, ok := r.byName[name]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("template %s: %w", name, domain.ErrNotFound)
}

func (r *fakeTemplateRepo) GetByID(_ context.Context, id string) (*models.Template, error) {
	for _, t := range r.byName {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, fmt.Errorf("template %s: %w", id, domain.ErrNotFound)
}

func (r *fakeTemplateRepo) List(context.Context) ([]models.Template, error) {
	var out []models.Template
	for _, t := range r.byName {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeTemplateRepo) Create(_ context.Context, tpl *models.Template) error {
	r.byName[tpl.Name] = tpl
	return nil
}

// fakePageRepo keeps pages by path and snapshots every commit.
type fakePageRepo struct {
	byPath  map[string]*models.Page
	creates []models.Page
	updates []models.Page
	nextID  int

	createErr error
	updateErr error
}

func newFakePageRepo(pages ...*models.Page) *fakePageRepo {
	r := &fakePageRepo{byPath: map[string]*models.Page{}}
	for _, p := range pages {
		r.byPath[p.Path] = p
	}
	return r
}

func snapshot(p *models.Page) models.Page {
	cp := *p
	cp.Fields = maps.Clone(p.Fields)
	return cp
}

func (r *fakePageRepo) GetByPath(_ context.Context, path string) (*models.Page, error) {
	if p, ok := r.byPath[path]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("page %s: %w", path, domain.ErrNotFound)
}

func (r *fakePageRepo) Exists(_ context.Context, path string) (bool, error) {
	_, ok := r.byPath[path]
	return ok, nil
}

func (r *fakePageRepo) Create(_ context.Context, page *models.Page) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	page.ID = fmt.Sprintf("page-%d", r.nextID)
	cp := snapshot(page)
	r.byPath[page.Path] = &cp
	r.creates = append(r.creates, snapshot(page))
	return nil
}

func (r *fakePageRepo) Update(_ context.Context, page *models.Page) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	for path, p := range r.byPath {
		if p.ID == page.ID {
			delete(r.byPath, path)
		}
	}
	cp := snapshot(page)
	r.byPath[page.Path] = &cp
	r.updates = append(r.updates, snapshot(page))
	return nil
}

func (r *fakePageRepo) FindByTemplate(_ context.Context, templateName string) (*models.Page, error) {
	paths := make([]string, 0, len(r.byPath))
	for path := range r.byPath {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		if r.byPath[path].TemplateName == templateName {
			return r.byPath[path], nil
		}
	}
	return nil, fmt.Errorf("page with template %s: %w", templateName, domain.ErrNotFound)
}

func (r *fakePageRepo) count(path string) int {
	if _, ok := r.byPath[path]; ok {
		return 1
	}
	return 0
}

type fakeUserRepo struct {
	users   []models.User
	gotRole string
}

func (r *fakeUserRepo) List(_ context.Context, role string) ([]models.User, error) {
	r.gotRole = role
	return r.users, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.users = append(r.users, *user)
	return nil
}

type recordingReporter struct {
	errors, warnings, successes, infos []string
}

func (r *recordingReporter) Error(msg string)   { r.errors = append(r.errors, msg) }
func (r *recordingReporter) Warn(msg string)    { r.warnings = append(r.warnings, msg) }
func (r *recordingReporter) Success(msg string) { r.successes = append(r.successes, msg) }
func (r *recordingReporter) Info(msg string)    { r.infos = append(r.infos, msg) }

// fixture builds a small tree:
//
//	/        (home)
//	/blog/   (blog, children restricted to blog-post and basic-page)
//	/blog/foo/ (basic-page)
//	/files/  (file-list, no children)
type fixture struct {
	templates *fakeTemplateRepo
	pages     *fakePageRepo
	reporter  *recordingReporter
	creator   *pageCreator
}

func ptr(s string) *string { return &s }

func newFixture() *fixture {
	home := &models.Template{ID: "t-home", Name: "home", Fields: []models.Field{{Name: "title"}}}
	basic := &models.Template{ID: "t-basic", Name: "basic-page", Fields: []models.Field{{Name: "title"}, {Name: "body"}, {Name: "images", Type: "file"}}}
	blog := &models.Template{ID: "t-blog", Name: "blog", ChildTemplateIDs: []string{"t-post", "t-basic"}, Fields: []models.Field{{Name: "title"}}}
	post := &models.Template{ID: "t-post", Name: "blog-post", ParentTemplateIDs: []string{"t-blog"}, Fields: []models.Field{{Name: "title"}, {Name: "summary"}}}
	files := &models.Template{ID: "t-files", Name: "file-list", NoChildren: true, Fields: []models.Field{{Name: "title"}}}
	system := &models.Template{ID: "t-system", Name: "system", NoParents: true}
	event := &models.Template{ID: "t-event", Name: "event", Fields: []models.Field{{Name: "title"}}}

	templates := newFakeTemplateRepo(home, basic, blog, post, files, system, event)
	pages := newFakePageRepo(
		&models.Page{ID: "p-root", TemplateID: "t-home", TemplateName: "home", Path: "/", Title: "Home"},
		&models.Page{ID: "p-blog", ParentID: ptr("p-root"), TemplateID: "t-blog", TemplateName: "blog", Name: "blog", Path: "/blog/", Title: "Blog"},
		&models.Page{ID: "p-foo", ParentID: ptr("p-blog"), TemplateID: "t-basic", TemplateName: "basic-page", Name: "foo", Path: "/blog/foo/", Title: "Foo"},
		&models.Page{ID: "p-files", ParentID: ptr("p-root"), TemplateID: "t-files", TemplateName: "file-list", Name: "files", Path: "/files/", Title: "Files"},
	)
	reporter := &recordingReporter{}
	logger := testLogger()
	s := sanitizer.New()

	creator := NewPageCreator(
		NewTemplateResolver(templates, logger),
		NewParentResolver(pages, templates, logger),
		pages,
		NewFieldDataImporter(s, logger),
		s,
		reporter,
		logger,
	).(*pageCreator)

	return &fixture{templates: templates, pages: pages, reporter: reporter, creator: creator}
}
