package seed

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wireshell/internal/domain"
	contentRepo "wireshell/internal/domain/repositories/content"
	"wireshell/internal/repository/sqlite"
)

const blogSeed = `
templates:
  - name: blog-post
    parents: [blog]
    fields:
      - {name: title, type: text}
      - {name: Summary, type: textarea}
  - name: blog
    children: [blog-post]
    fields:
      - {name: title, type: text}
  - name: home

pages:
  - path: blog/first-post
    template: blog-post
    title: First post
    fields:
      Summary: Hello
  - path: /blog/
    template: blog
    title: Blog
  - path: /
    template: home
    title: Home

users:
  - name: editor
    email: editor@example.org
    roles: [editor]
`

func newTestSeeder(t *testing.T) (*Seeder, *sqliteRepos) {
	t.Helper()
	ctx := context.Background()

	db, err := sqlite.New(ctx, "sqlite::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sqlite.Migrate(ctx, db))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repos := &sqliteRepos{
		templates: sqlite.NewTemplateRepository(db, logger),
		pages:     sqlite.NewPageRepository(db, logger),
		users:     sqlite.NewUserRepository(db, logger),
	}
	return NewSeeder(repos.templates, repos.pages, repos.users, sqlite.NewTransactionManager(db, logger), logger), repos
}

func TestParse(t *testing.T) {
	f, err := Parse([]byte(blogSeed))
	require.NoError(t, err)
	assert.Len(t, f.Templates, 3)
	assert.Equal(t, []string{"blog"}, f.Templates[0].Parents)
	assert.Equal(t, "Hello", f.Pages[0].Fields["Summary"])

	_, err = Parse([]byte("pages:\n  - path: /x/\n"))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = Parse([]byte("templates: [unclosed"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(blogSeed), 0644))

	f, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, f.Pages, 3)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	f, err := Default()
	require.NoError(t, err)
	assert.NotEmpty(t, f.Templates)
	assert.Equal(t, "/", f.Pages[0].Path)
}

func TestSeeder_Seed(t *testing.T) {
	ctx := context.Background()
	seeder, repos := newTestSeeder(t)

	f, err := Parse([]byte(blogSeed))
	require.NoError(t, err)

	summary, err := seeder.Seed(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, &Summary{Templates: 3, Pages: 3, Users: 1}, summary)

	blog, err := repos.templates.GetByName(ctx, "blog")
	require.NoError(t, err)
	post, err := repos.templates.GetByName(ctx, "blog-post")
	require.NoError(t, err)
	assert.Equal(t, []string{blog.ID}, post.ParentTemplateIDs)
	assert.Equal(t, []string{post.ID}, blog.ChildTemplateIDs)
	assert.Equal(t, "summary", post.Fields[1].Name)
	assert.True(t, post.HasField("SUMMARY"))

	page, err := repos.pages.GetByPath(ctx, "/blog/first-post/")
	require.NoError(t, err)
	assert.Equal(t, "first-post", page.Name)
	assert.Equal(t, "blog-post", page.TemplateName)
	assert.Equal(t, "Hello", page.Fields["summary"])

	blogPage, err := repos.pages.GetByPath(ctx, "/blog/")
	require.NoError(t, err)
	assert.Equal(t, blogPage.ID, *page.ParentID)

	// a second run finds everything in place
	summary, err = seeder.Seed(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, &Summary{Skipped: 7}, summary)
}

func TestSeeder_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	seeder, repos := newTestSeeder(t)

	f, err := Parse([]byte(`
templates:
  - name: home
pages:
  - path: /orphan/child/
    template: home
`))
	require.NoError(t, err)

	_, err = seeder.Seed(ctx, f)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = repos.templates.GetByName(ctx, "home")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSeeder_UnknownTemplate(t *testing.T) {
	seeder, _ := newTestSeeder(t)

	f, err := Parse([]byte(`
templates:
  - name: post
    parents: [missing]
`))
	require.NoError(t, err)

	_, err = seeder.Seed(context.Background(), f)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "missing")
}

func TestSeeder_UnknownPageField(t *testing.T) {
	ctx := context.Background()
	seeder, repos := newTestSeeder(t)

	f, err := Parse([]byte(`
templates:
  - name: home
    fields:
      - {name: title, type: text}
pages:
  - path: /
    template: home
    fields:
      ghostfield: x
`))
	require.NoError(t, err)

	_, err = seeder.Seed(ctx, f)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "ghostfield")

	exists, err := repos.pages.Exists(ctx, "/")
	require.NoError(t, err)
	assert.False(t, exists)
}

type sqliteRepos struct {
	templates contentRepo.TemplateRepository
	pages     contentRepo.PageRepository
	users     contentRepo.UserRepository
}
