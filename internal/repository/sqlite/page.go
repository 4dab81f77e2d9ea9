package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"wireshell/internal/domain"
	models "wireshell/internal/domain/models/content"
	contentRepo "wireshell/internal/domain/repositories/content"
)

// PageRepository provides access to the page tree.
type PageRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPageRepository creates a new page repository.
func NewPageRepository(db *sql.DB, logger *slog.Logger) contentRepo.PageRepository {
	return &PageRepository{db: db, logger: logger}
}

const selectPages = `
SELECT p.id, p.parent_id, p.template_id, t.name, p.name, p.path, p.title, p.fields, p.created_at, p.updated_at
FROM pages p
JOIN templates t ON t.id = p.template_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPage(row rowScanner) (*models.Page, error) {
	var page models.Page
	var parentID sql.NullString
	var fields string
	if err := row.Scan(
		&page.ID, &parentID, &page.TemplateID, &page.TemplateName,
		&page.Name, &page.Path, &page.Title, &fields,
		&page.CreatedAt, &page.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if parentID.Valid {
		page.ParentID = &parentID.String
	}
	if err := json.Unmarshal([]byte(fields), &page.Fields); err != nil {
		return nil, fmt.Errorf("decode fields of %s: %w", page.Path, err)
	}
	if page.Fields == nil {
		page.Fields = map[string]any{}
	}
	page.State = models.PageStateCommitted
	return &page, nil
}

// GetByPath retrieves a page by its full path.
func (r *PageRepository) GetByPath(ctx context.Context, path string) (*models.Page, error) {
	page, err := scanPage(executor(ctx, r.db).QueryRowContext(ctx, selectPages+" WHERE p.path = ?", path))
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("page %s: %w", path, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get page: %w", err)
	}
	return page, nil
}

// Exists reports whether a page is stored at path.
func (r *PageRepository) Exists(ctx context.Context, path string) (bool, error) {
	var exists bool
	err := executor(ctx, r.db).QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM pages WHERE path = ?)", path).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check page exists: %w", err)
	}
	return exists, nil
}

// Create commits a new page.
func (r *PageRepository) Create(ctx context.Context, page *models.Page) error {
	fields, err := encodeJSON(page.Fields, "{}")
	if err != nil {
		return err
	}
	id := page.ID
	if id == "" {
		id = uuid.NewString()
	}
	now := time.Now().UTC()

	_, err = executor(ctx, r.db).ExecContext(ctx, `
		INSERT INTO pages (id, parent_id, template_id, name, path, title, fields, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, page.ParentID, page.TemplateID, page.Name, page.Path, page.Title, fields, now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("the page name '%s' is already taken", page.Name),
				ResourceType: "page",
				ResourceID:   page.Path,
			}
		}
		if isForeignKeyViolation(err) {
			return &domain.NotFoundError{Message: fmt.Sprintf("parent or template of page %s not found", page.Path)}
		}
		return fmt.Errorf("create page: %w", err)
	}

	page.ID = id
	page.CreatedAt, page.UpdatedAt = now, now
	if page.Fields == nil {
		page.Fields = map[string]any{}
	}
	return nil
}

// Update commits name, title and fields of an existing page.
func (r *PageRepository) Update(ctx context.Context, page *models.Page) error {
	fields, err := encodeJSON(page.Fields, "{}")
	if err != nil {
		return err
	}
	now := time.Now().UTC()

	res, err := executor(ctx, r.db).ExecContext(ctx, `
		UPDATE pages SET name = ?, path = ?, title = ?, fields = ?, updated_at = ?
		WHERE id = ?`,
		page.Name, page.Path, page.Title, fields, now, page.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("the page name '%s' is already taken", page.Name),
				ResourceType: "page",
				ResourceID:   page.Path,
			}
		}
		return fmt.Errorf("update page: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("page %s: %w", page.ID, domain.ErrNotFound)
	}

	page.UpdatedAt = now
	return nil
}

// FindByTemplate returns the first page, by path, using the named template.
func (r *PageRepository) FindByTemplate(ctx context.Context, templateName string) (*models.Page, error) {
	page, err := scanPage(executor(ctx, r.db).QueryRowContext(ctx,
		selectPages+" WHERE t.name = ? ORDER BY p.path LIMIT 1", templateName))
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("page with template %s: %w", templateName, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("find page by template: %w", err)
	}
	return page, nil
}
