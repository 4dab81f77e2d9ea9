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

// PostgresTemplateRepository implements the TemplateRepository interface
type PostgresTemplateRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewTemplateRepository creates a new template repository
func NewTemplateRepository(config *postgres.RepositoryConfig) contentRepo.TemplateRepository {
	return &PostgresTemplateRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

const templateColumns = `id, name, no_parents, no_children, parent_template_ids, child_template_ids, fields, created_at`

// GetByName retrieves a template by name
func (r *PostgresTemplateRepository) GetByName(ctx context.Context, name string) (*models.Template, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE name = $1`, templateColumns, r.tables.Templates)
	return r.getOne(ctx, query, name)
}

// GetByID retrieves a template by ID
func (r *PostgresTemplateRepository) GetByID(ctx context.Context, id string) (*models.Template, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, templateColumns, r.tables.Templates)
	return r.getOne(ctx, query, id)
}

func (r *PostgresTemplateRepository) getOne(ctx context.Context, query string, key string) (*models.Template, error) {
	var tpl models.Template
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, key).Scan(
		&tpl.ID,
		&tpl.Name,
		&tpl.NoParents,
		&tpl.NoChildren,
		&tpl.ParentTemplateIDs,
		&tpl.ChildTemplateIDs,
		&tpl.Fields,
		&tpl.CreatedAt,
	)
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("template %s: %w", key, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get template: %w", err)
	}
	return &tpl, nil
}

// List returns all templates ordered by name
func (r *PostgresTemplateRepository) List(ctx context.Context) ([]models.Template, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY name`, templateColumns, r.tables.Templates)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	templates := []models.Template{}
	for rows.Next() {
		var tpl models.Template
		if err := rows.Scan(
			&tpl.ID,
			&tpl.Name,
			&tpl.NoParents,
			&tpl.NoChildren,
			&tpl.ParentTemplateIDs,
			&tpl.ChildTemplateIDs,
			&tpl.Fields,
			&tpl.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		templates = append(templates, tpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate templates: %w", err)
	}
	return templates, nil
}

// Create stores a new template
func (r *PostgresTemplateRepository) Create(ctx context.Context, tpl *models.Template) error {
	if tpl.ID == "" {
		tpl.ID = uuid.NewString()
	}
	if tpl.CreatedAt.IsZero() {
		tpl.CreatedAt = time.Now()
	}
	parentIDs, childIDs, fields := emptyIfNil(tpl.ParentTemplateIDs), emptyIfNil(tpl.ChildTemplateIDs), tpl.Fields
	if fields == nil {
		fields = []models.Field{}
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, r.tables.Templates, templateColumns)

	executor := postgres.GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		tpl.ID,
		tpl.Name,
		tpl.NoParents,
		tpl.NoChildren,
		parentIDs,
		childIDs,
		fields,
		tpl.CreatedAt,
	)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("template '%s' already exists", tpl.Name),
				ResourceType: "template",
				ResourceID:   tpl.Name,
			}
		}
		return fmt.Errorf("create template: %w", err)
	}

	r.logger.Debug("template stored", "id", tpl.ID, "name", tpl.Name)
	return nil
}

func emptyIfNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
