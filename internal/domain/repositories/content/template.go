package content

import (
	"context"

	models "wireshell/internal/domain/models/content"
)

// TemplateRepository defines data access operations for templates
type TemplateRepository interface {
	// GetByName retrieves a template by its unique name.
	// Returns an error wrapping domain.ErrNotFound when it does not exist.
	GetByName(ctx context.Context, name string) (*models.Template, error)

	// GetByID retrieves a template by ID
	GetByID(ctx context.Context, id string) (*models.Template, error)

	// List returns all templates ordered by name
	List(ctx context.Context) ([]models.Template, error)

	// Create stores a new template and assigns its ID
	Create(ctx context.Context, tpl *models.Template) error
}
