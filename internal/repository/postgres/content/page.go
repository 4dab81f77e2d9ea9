package content

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"wireshell/internal/domain"
	models "wireshell/internal/domain/models/content"
	contentRepo "wireshell/internal/domain/repositories/content"
	"wireshell/internal/repository/postgres"
)

// PostgresPageRepository implements the PageRepository interface
type PostgresPageRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewPageRepository creates a new page repository
func NewPageRepository(config *postgres.RepositoryConfig) contentRepo.PageRepository {
	return &PostgresPageRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

func (r *PostgresPageRepository) selectPages() string {
	return fmt.Sprintf(`
		SELECT p.id, p.parent_id, p.template_id, t.name, p.name, p.path, p.title, p.fields, p.created_at, p.updated_at
		FROM %s p
		JOIN %s t ON t.id = p.template_id
	`, r.tables.Pages, r.tables.Templates)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPage(row rowScanner) (*models.Page, error) {
	var page models.Page
	err := row.Scan(
		&page.ID,
		&page.ParentID,
		&page.TemplateID,
		&page.TemplateName,
		&page.Name,
		&page.Path,
		&page.Title,
		&page.Fields,
		&page.CreatedAt,
		&page.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if page.Fields == nil {
		page.Fields = map[string]any{}
	}
	page.State = models.PageStateCommitted
	return &page, nil
}

// GetByPath retrieves a page by its full path
func (r *PostgresPageRepository) GetByPath(ctx context.Context, path string) (*models.Page, error) {
	query := r.selectPages() + ` WHERE p.path = $1`

	executor := postgres.GetExecutor(ctx, r.pool)
	page, err := scanPage(executor.QueryRow(ctx, query, path))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("page %s: %w", path, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get page: %w", err)
	}
	return page, nil
}

// Exists reports whether a page is stored at path
func (r *PostgresPageRepository) Exists(ctx context.Context, path string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE path = $1)`, r.tables.Pages)

	var exists bool
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, path).Scan(&exists); err != nil {
		return false, fmt.Errorf("check page exists: %w", err)
	}
	return exists, nil
}

// Create commits a new page
func (r *PostgresPageRepository) Create(ctx context.Context, page *models.Page) error {
	if page.ID == "" {
		page.ID = uuid.NewString()
	}
	now := time.Now()
	page.CreatedAt, page.UpdatedAt = now, now
	if page.Fields == nil {
		page.Fields = map[string]any{}
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, parent_id, template_id, name, path, title, fields, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, r.tables.Pages)

	executor := postgres.GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		page.ID,
		page.ParentID,
		page.TemplateID,
		page.Name,
		page.Path,
		page.Title,
		page.Fields,
		page.CreatedAt,
		page.UpdatedAt,
	)
	if err != nil {
		id := page.ID
		page.ID = ""
		if postgres.IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("the page name '%s' is already taken", page.Name),
				ResourceType: "page",
				ResourceID:   page.Path,
			}
		}
		if postgres.IsPgForeignKeyError(err) {
			return &domain.NotFoundError{Message: fmt.Sprintf("parent or template of page %s not found", page.Path)}
		}
		return fmt.Errorf("create page %s: %w", id, err)
	}

	return nil
}

// Update commits name, title and fields of an existing page
func (r *PostgresPageRepository) Update(ctx context.Context, page *models.Page) error {
	page.UpdatedAt = time.Now()

	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $2, path = $3, title = $4, fields = $5, updated_at = $6
		WHERE id = $1
	`, r.tables.Pages)

	executor := postgres.GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query,
		page.ID,
		page.Name,
		page.Path,
		page.Title,
		page.Fields,
		page.UpdatedAt,
	)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("the page name '%s' is already taken", page.Name),
				ResourceType: "page",
				ResourceID:   page.Path,
			}
		}
		return fmt.Errorf("update page: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("page %s: %w", page.ID, domain.ErrNotFound)
	}

	return nil
}

// FindByTemplate returns the first page using the named template
func (r *PostgresPageRepository) FindByTemplate(ctx context.Context, templateName string) (*models.Page, error) {
	query := r.selectPages() + ` WHERE t.name = $1 ORDER BY p.path LIMIT 1`

	executor := postgres.GetExecutor(ctx, r.pool)
	page, err := scanPage(executor.QueryRow(ctx, query, templateName))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("page with template %s: %w", templateName, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("find page by template: %w", err)
	}
	return page, nil
}
