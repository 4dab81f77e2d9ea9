package content

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	models "wireshell/internal/domain/models/content"
	contentRepo "wireshell/internal/domain/repositories/content"
	contentSvc "wireshell/internal/domain/services/content"
)

type userService struct {
	userRepo contentRepo.UserRepository
	logger   *slog.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo contentRepo.UserRepository, logger *slog.Logger) contentSvc.UserService {
	return &userService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// ListUsers returns users sorted by name, optionally filtered by role
func (s *userService) ListUsers(ctx context.Context, role string) ([]models.User, error) {
	role = strings.TrimSpace(role)
	users, err := s.userRepo.List(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	s.logger.Debug("users listed", "role", role, "count", len(users))
	return users, nil
}
