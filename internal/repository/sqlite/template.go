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

// TemplateRepository provides access to the template storage.
type TemplateRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewTemplateRepository creates a new template repository.
func NewTemplateRepository(db *sql.DB, logger *slog.Logger) contentRepo.TemplateRepository {
	return &TemplateRepository{db: db, logger: logger}
}

const templateColumns = "id, name, no_parents, no_children, parent_template_ids, child_template_ids, fields, created_at"

// templateRow holds the JSON-encoded columns until they are decoded.
type templateRow struct {
	tpl                 models.Template
	parentIDs, childIDs string
	fields              string
}

func (row *templateRow) targets() []any {
	return []any{
		&row.tpl.ID, &row.tpl.Name, &row.tpl.NoParents, &row.tpl.NoChildren,
		&row.parentIDs, &row.childIDs, &row.fields, &row.tpl.CreatedAt,
	}
}

func (row *templateRow) decode() (*models.Template, error) {
	if err := json.Unmarshal([]byte(row.parentIDs), &row.tpl.ParentTemplateIDs); err != nil {
		return nil, fmt.Errorf("decode parent templates of %s: %w", row.tpl.Name, err)
	}
	if err := json.Unmarshal([]byte(row.childIDs), &row.tpl.ChildTemplateIDs); err != nil {
		return nil, fmt.Errorf("decode child templates of %s: %w", row.tpl.Name, err)
	}
	if err := json.Unmarshal([]byte(row.fields), &row.tpl.Fields); err != nil {
		return nil, fmt.Errorf("decode fields of %s: %w", row.tpl.Name, err)
	}
	return &row.tpl, nil
}

// GetByName retrieves a template by its name.
func (r *TemplateRepository) GetByName(ctx context.Context, name string) (*models.Template, error) {
	return r.getOne(ctx, "SELECT "+templateColumns+" FROM templates WHERE name = ?", name)
}

// GetByID retrieves a template by ID.
func (r *TemplateRepository) GetByID(ctx context.Context, id string) (*models.Template, error) {
	return r.getOne(ctx, "SELECT "+templateColumns+" FROM templates WHERE id = ?", id)
}

func (r *TemplateRepository) getOne(ctx context.Context, query, key string) (*models.Template, error) {
	var row templateRow
	if err := executor(ctx, r.db).QueryRowContext(ctx, query, key).Scan(row.targets()...); err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("template %s: %w", key, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get template: %w", err)
	}
	return row.decode()
}

// List returns all templates ordered by name.
func (r *TemplateRepository) List(ctx context.Context) ([]models.Template, error) {
	rows, err := executor(ctx, r.db).QueryContext(ctx, "SELECT "+templateColumns+" FROM templates ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	templates := []models.Template{}
	for rows.Next() {
		var row templateRow
		if err := rows.Scan(row.targets()...); err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		tpl, err := row.decode()
		if err != nil {
			return nil, err
		}
		templates = append(templates, *tpl)
	}
	return templates, rows.Err()
}

// Create stores a new template.
func (r *TemplateRepository) Create(ctx context.Context, tpl *models.Template) error {
	if tpl.ID == "" {
		tpl.ID = uuid.NewString()
	}
	if tpl.CreatedAt.IsZero() {
		tpl.CreatedAt = time.Now().UTC()
	}

	parentIDs, err := encodeJSON(tpl.ParentTemplateIDs, "[]")
	if err != nil {
		return err
	}
	childIDs, err := encodeJSON(tpl.ChildTemplateIDs, "[]")
	if err != nil {
		return err
	}
	fields, err := encodeJSON(tpl.Fields, "[]")
	if err != nil {
		return err
	}

	_, err = executor(ctx, r.db).ExecContext(ctx,
		"INSERT INTO templates ("+templateColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		tpl.ID, tpl.Name, tpl.NoParents, tpl.NoChildren, parentIDs, childIDs, fields, tpl.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
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

// encodeJSON marshals v, using empty for nil slices and maps.
func encodeJSON(v any, empty string) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode json: %w", err)
	}
	if string(b) == "null" {
		return empty, nil
	}
	return string(b), nil
}
