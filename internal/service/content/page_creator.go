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

type pageCreator struct {
	templates contentSvc.TemplateResolver
	parents   contentSvc.ParentResolver
	pageRepo  contentRepo.PageRepository
	importer  *FieldDataImporter
	sanitizer contentSvc.Sanitizer
	reporter  contentSvc.Reporter
	logger    *slog.Logger
}

// NewPageCreator creates the page:create workflow
func NewPageCreator(
	templates contentSvc.TemplateResolver,
	parents contentSvc.ParentResolver,
	pageRepo contentRepo.PageRepository,
	importer *FieldDataImporter,
	sanitizer contentSvc.Sanitizer,
	reporter contentSvc.Reporter,
	logger *slog.Logger,
) contentSvc.PageCreator {
	if reporter == nil {
		reporter = contentSvc.NopReporter{}
	}
	return &pageCreator{
		templates: templates,
		parents:   parents,
		pageRepo:  pageRepo,
		importer:  importer,
		sanitizer: sanitizer,
		reporter:  reporter,
		logger:    logger,
	}
}

// CreatePages creates one page per requested name, in input order.
//
// Each page is committed twice: once as a shell so it has an ID (file-like
// fields need one), then again after the field data is applied. A crash
// between the two leaves the shell page with default field values.
func (s *pageCreator) CreatePages(ctx context.Context, req *contentSvc.CreatePagesRequest) (*contentSvc.CreatePagesResult, error) {
	if err := validateCreatePagesRequest(req); err != nil {
		return nil, err
	}

	tpl, err := s.templates.Resolve(ctx, req.TemplateName)
	if err != nil {
		return nil, err
	}
	parent, err := s.parents.Resolve(ctx, req.ParentPath, tpl)
	if err != nil {
		return nil, err
	}

	var payload FieldPayload
	if req.FieldData != nil {
		payload, err = s.importer.Parse(req.FieldData)
		if err != nil {
			return nil, err
		}
	}

	result := &contentSvc.CreatePagesResult{
		Template: tpl,
		Parent:   parent,
		Pages:    make([]contentSvc.PageOutcome, 0, len(req.Names)),
	}

	for _, raw := range req.Names {
		outcome, err := s.createPage(ctx, raw, req.Title, tpl, parent, payload)
		if err != nil {
			return result, err
		}
		result.Pages = append(result.Pages, outcome)
	}

	s.logger.Info("page batch finished",
		"template", tpl.Name,
		"parent", parent.Path,
		"requested", len(req.Names),
		"created", result.Created(),
	)
	return result, nil
}

func (s *pageCreator) createPage(
	ctx context.Context,
	raw, title string,
	tpl *models.Template,
	parent *models.Page,
	payload FieldPayload,
) (contentSvc.PageOutcome, error) {
	raw = strings.TrimSpace(raw)
	outcome := contentSvc.PageOutcome{RequestedName: raw, State: models.PageStateRequested}

	name := s.sanitizer.PageName(raw)
	if name == "" {
		s.reporter.Error(fmt.Sprintf("The page name '%s' contains no usable characters.", raw))
		outcome.State = models.PageStateSkipped
		return outcome, nil
	}
	outcome.Name = name
	outcome.Path = parent.ChildPath(name)
	outcome.State = models.PageStateSanitized

	exists, err := s.pageRepo.Exists(ctx, outcome.Path)
	if err != nil {
		return outcome, fmt.Errorf("check page %s: %w", outcome.Path, err)
	}
	if exists {
		s.skipDuplicate(&outcome)
		return outcome, nil
	}

	if title == "" {
		title = raw
	}
	page := &models.Page{
		ParentID:     &parent.ID,
		TemplateID:   tpl.ID,
		TemplateName: tpl.Name,
		Name:         name,
		Path:         outcome.Path,
		Title:        title,
		Fields:       map[string]any{},
		State:        models.PageStateSanitized,
	}

	if err := s.pageRepo.Create(ctx, page); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			s.skipDuplicate(&outcome)
			return outcome, nil
		}
		return outcome, fmt.Errorf("create page %s: %w", outcome.Path, err)
	}
	page.State = models.PageStateShellCreated
	outcome.PageID = page.ID
	outcome.State = page.State

	for _, unknown := range s.importer.Apply(page, tpl, payload) {
		s.reporter.Warn(unknown.Error())
		outcome.UnknownFields = append(outcome.UnknownFields, unknown.Field)
	}

	if err := s.pageRepo.Update(ctx, page); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// Field data renamed the page onto an existing sibling; the shell stays.
			s.reporter.Error(fmt.Sprintf("Page `%s` was created but its field data could not be saved: %v", raw, err))
			s.logger.Warn("field data not saved", "path", outcome.Path, "id", page.ID, "error", err)
			return outcome, nil
		}
		return outcome, fmt.Errorf("save page %s: %w", outcome.Path, err)
	}
	page.State = models.PageStateCommitted
	outcome.State = page.State
	outcome.Name = page.Name
	outcome.Path = page.Path

	s.reporter.Success(fmt.Sprintf("Page `%s` has been successfully created.", raw))
	s.logger.Info("page created",
		"id", page.ID,
		"path", page.Path,
		"template", tpl.Name,
		"unknown_fields", len(outcome.UnknownFields),
	)
	return outcome, nil
}

func (s *pageCreator) skipDuplicate(outcome *contentSvc.PageOutcome) {
	s.reporter.Error(fmt.Sprintf("The page name '%s' is already taken.", outcome.RequestedName))
	s.logger.Info("page skipped", "path", outcome.Path, "reason", domain.ErrDuplicateName)
	outcome.State = models.PageStateSkipped
}
