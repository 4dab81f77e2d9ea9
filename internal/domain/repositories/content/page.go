package content

import (
	"context"

	models "wireshell/internal/domain/models/content"
)

// PageRepository defines data access operations for pages
type PageRepository interface {
	// GetByPath retrieves a page by its full path ("/blog/foo/").
	// Returns an error wrapping domain.ErrNotFound when it does not exist.
	GetByPath(ctx context.Context, path string) (*models.Page, error)

	// Exists reports whether a page is stored at path
	Exists(ctx context.Context, path string) (bool, error)

	// Create commits a new page, assigning ID and timestamps.
	// A sibling with the same name yields a *domain.ConflictError.
	Create(ctx context.Context, page *models.Page) error

	// Update commits name, title and field changes of an existing page
	Update(ctx context.Context, page *models.Page) error

	// FindByTemplate returns the first page using the named template
	FindByTemplate(ctx context.Context, templateName string) (*models.Page, error)
}
