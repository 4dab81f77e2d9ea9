package content

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"wireshell/internal/domain"
	models "wireshell/internal/domain/models/content"
	contentRepo "wireshell/internal/domain/repositories/content"
	"wireshell/internal/repository/postgres"
)

// PostgresUserRepository implements the UserRepository interface
type PostgresUserRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(config *postgres.RepositoryConfig) contentRepo.UserRepository {
	return &PostgresUserRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// List returns users sorted by name, with their roles
func (r *PostgresUserRepository) List(ctx context.Context, role string) ([]models.User, error) {
	query := fmt.Sprintf(`
		SELECT u.id, u.name, u.email,
			COALESCE(array_agg(ur.role ORDER BY ur.role) FILTER (WHERE ur.role IS NOT NULL), '{}')
		FROM %s u
		LEFT JOIN %s ur ON ur.user_id = u.id
	`, r.tables.Users, r.tables.UserRoles)

	args := []any{}
	if role != "" {
		query += fmt.Sprintf(` WHERE u.id IN (SELECT user_id FROM %s WHERE role = $1)`, r.tables.UserRoles)
		args = append(args, role)
	}
	query += ` GROUP BY u.id, u.name, u.email ORDER BY u.name`

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Roles); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

// Create stores a user and its roles
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	executor := postgres.GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx,
		fmt.Sprintf(`INSERT INTO %s (id, name, email) VALUES ($1, $2, $3)`, r.tables.Users),
		user.ID, user.Name, user.Email,
	)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("user '%s' already exists", user.Name),
				ResourceType: "user",
				ResourceID:   user.Name,
			}
		}
		return fmt.Errorf("create user: %w", err)
	}

	for _, role := range user.Roles {
		_, err := executor.Exec(ctx,
			fmt.Sprintf(`INSERT INTO %s (user_id, role) VALUES ($1, $2) ON CONFLICT DO NOTHING`, r.tables.UserRoles),
			user.ID, role,
		)
		if err != nil {
			return fmt.Errorf("add role %s to user %s: %w", role, user.Name, err)
		}
	}

	r.logger.Debug("user stored", "id", user.ID, "name", user.Name, "roles", user.Roles)
	return nil
}
