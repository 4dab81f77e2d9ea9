package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"wireshell/internal/domain"
	contentRepo "wireshell/internal/domain/repositories/content"
	contentSvc "wireshell/internal/domain/services/content"
)

// AdminTemplate is the template used by the administration page.
const AdminTemplate = "admin"

type adminService struct {
	pageRepo  contentRepo.PageRepository
	siteURL   string
	adminPath string
	logger    *slog.Logger
}

// NewAdminService creates a service locating the admin area below siteURL.
// adminPath is used when no page uses the admin template.
func NewAdminService(pageRepo contentRepo.PageRepository, siteURL, adminPath string, logger *slog.Logger) contentSvc.AdminService {
	return &adminService{
		pageRepo:  pageRepo,
		siteURL:   strings.TrimRight(siteURL, "/"),
		adminPath: adminPath,
		logger:    logger,
	}
}

// AdminURL returns the absolute URL of the admin page
func (s *adminService) AdminURL(ctx context.Context) (string, error) {
	page, err := s.pageRepo.FindByTemplate(ctx, AdminTemplate)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("find admin page: %w", err)
		}
		s.logger.Debug("no admin page, using configured path", "admin_path", s.adminPath)
		return s.siteURL + "/" + strings.TrimLeft(s.adminPath, "/"), nil
	}
	return s.siteURL + page.Path, nil
}
