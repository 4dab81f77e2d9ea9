package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"wireshell/internal/domain"
	models "wireshell/internal/domain/models/content"
	contentRepo "wireshell/internal/domain/repositories/content"
	contentSvc "wireshell/internal/domain/services/content"
)

type parentResolver struct {
	pageRepo     contentRepo.PageRepository
	templateRepo contentRepo.TemplateRepository
	logger       *slog.Logger
}

// NewParentResolver creates a resolver validating placement below a parent
func NewParentResolver(
	pageRepo contentRepo.PageRepository,
	templateRepo contentRepo.TemplateRepository,
	logger *slog.Logger,
) contentSvc.ParentResolver {
	return &parentResolver{
		pageRepo:     pageRepo,
		templateRepo: templateRepo,
		logger:       logger,
	}
}

// Resolve finds the parent page for tpl and checks both sides of the
// placement rules. An empty or unknown path falls back to the tree root.
// Checks run in order: parent forbids children, template restricts its
// parents, parent restricts its children.
func (r *parentResolver) Resolve(ctx context.Context, path string, tpl *models.Template) (*models.Page, error) {
	parent, err := r.lookup(ctx, path)
	if err != nil {
		return nil, err
	}

	parentTpl, err := r.templateRepo.GetByID(ctx, parent.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("template of parent %s: %w", parent.Path, err)
	}

	if parentTpl.NoChildren {
		return nil, domain.NewParentDisallowsChildren(tpl.Name, parent.Path)
	}
	if !tpl.AllowsParent(parentTpl.ID) {
		return nil, domain.NewTemplateNotAllowedAsChild(tpl.Name, parent.Path)
	}
	if !parentTpl.AllowsChild(tpl.ID) {
		return nil, domain.NewTemplateNotAllowedAsParent(tpl.Name, parentTpl.Name, parent.Path)
	}

	r.logger.Debug("parent resolved",
		"path", parent.Path,
		"parent_template", parentTpl.Name,
		"template", tpl.Name,
	)
	return parent, nil
}

func (r *parentResolver) lookup(ctx context.Context, path string) (*models.Page, error) {
	normalized := models.NormalizePath(path)
	if normalized != models.RootPath {
		parent, err := r.pageRepo.GetByPath(ctx, normalized)
		if err == nil {
			return parent, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("resolve parent: %w", err)
		}
		r.logger.Warn("parent page not found, using root", "path", normalized)
	}

	root, err := r.pageRepo.GetByPath(ctx, models.RootPath)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.NotFoundError{Message: "root page not found, is the content store initialised?"}
		}
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	return root, nil
}
