package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"wireshell/internal/domain"
	models "wireshell/internal/domain/models/content"
	contentRepo "wireshell/internal/domain/repositories/content"
	contentSvc "wireshell/internal/domain/services/content"
)

type templateResolver struct {
	templateRepo contentRepo.TemplateRepository
	logger       *slog.Logger
}

// NewTemplateResolver creates a resolver validating templates for new pages
func NewTemplateResolver(templateRepo contentRepo.TemplateRepository, logger *slog.Logger) contentSvc.TemplateResolver {
	return &templateResolver{
		templateRepo: templateRepo,
		logger:       logger,
	}
}

// Resolve looks up the template and checks it may be used for new pages
func (r *templateResolver) Resolve(ctx context.Context, name string) (*models.Template, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &domain.ValidationError{Message: "template name is required"}
	}

	tpl, err := r.templateRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewTemplateNotFound(name)
		}
		return nil, fmt.Errorf("resolve template: %w", err)
	}

	if !tpl.AllowsNewPages() {
		return nil, domain.NewTemplateDisallowsNewPages(name)
	}

	r.logger.Debug("template resolved", "id", tpl.ID, "name", tpl.Name)
	return tpl, nil
}
