package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"wireshell/internal/domain"
	models "wireshell/internal/domain/models/content"
	contentRepo "wireshell/internal/domain/repositories/content"
)

// UserRepository provides access to user accounts.
type UserRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *sql.DB, logger *slog.Logger) contentRepo.UserRepository {
	return &UserRepository{db: db, logger: logger}
}

// List returns users sorted by name. Roles are loaded in a second query
// once the user rows are closed; the pool holds a single connection.
func (r *UserRepository) List(ctx context.Context, role string) ([]models.User, error) {
	db := executor(ctx, r.db)

	query := "SELECT id, name, email FROM users"
	args := []any{}
	if role != "" {
		query += " WHERE id IN (SELECT user_id FROM user_roles WHERE role = ?)"
		args = append(args, role)
	}
	query += " ORDER BY name"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	users := []models.User{}
	index := map[string]int{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.Roles = []string{}
		index[u.ID] = len(users)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	rows.Close()

	roleRows, err := db.QueryContext(ctx, "SELECT user_id, role FROM user_roles ORDER BY role")
	if err != nil {
		return nil, fmt.Errorf("list user roles: %w", err)
	}
	defer roleRows.Close()
	for roleRows.Next() {
		var userID, name string
		if err := roleRows.Scan(&userID, &name); err != nil {
			return nil, fmt.Errorf("scan user role: %w", err)
		}
		if i, ok := index[userID]; ok {
			users[i].Roles = append(users[i].Roles, name)
		}
	}
	return users, roleRows.Err()
}

// Create stores a user and its roles.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	db := executor(ctx, r.db)

	if _, err := db.ExecContext(ctx, "INSERT INTO users (id, name, email) VALUES (?, ?, ?)", user.ID, user.Name, user.Email); err != nil {
		if isUniqueViolation(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("user '%s' already exists", user.Name),
				ResourceType: "user",
				ResourceID:   user.Name,
			}
		}
		return fmt.Errorf("create user: %w", err)
	}

	for _, role := range user.Roles {
		if _, err := db.ExecContext(ctx, "INSERT OR IGNORE INTO user_roles (user_id, role) VALUES (?, ?)", user.ID, role); err != nil {
			return fmt.Errorf("add role %s to user %s: %w", role, user.Name, err)
		}
	}

	r.logger.Debug("user stored", "id", user.ID, "name", user.Name, "roles", user.Roles)
	return nil
}
