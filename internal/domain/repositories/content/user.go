package content

import (
	"context"

	models "wireshell/internal/domain/models/content"
)

// UserRepository defines data access operations for user accounts
type UserRepository interface {
	// List returns users sorted by name. An empty role returns everyone.
	List(ctx context.Context, role string) ([]models.User, error)

	// Create stores a user together with its roles
	Create(ctx context.Context, user *models.User) error
}
