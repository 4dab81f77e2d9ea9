package content

import (
	"context"

	models "wireshell/internal/domain/models/content"
)

// UserService exposes read-only queries on user accounts.
type UserService interface {
	// ListUsers returns users sorted by name, optionally filtered by role
	ListUsers(ctx context.Context, role string) ([]models.User, error)
}
