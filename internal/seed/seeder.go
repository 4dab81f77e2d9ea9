package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"

	"wireshell/internal/domain"
	models "wireshell/internal/domain/models/content"
	"wireshell/internal/domain/repositories"
	contentRepo "wireshell/internal/domain/repositories/content"
)

// Seeder applies seed files to a content store
type Seeder struct {
	templates contentRepo.TemplateRepository
	pages     contentRepo.PageRepository
	users     contentRepo.UserRepository
	tx        repositories.TransactionManager
	logger    *slog.Logger
}

// NewSeeder creates a new seeder
func NewSeeder(
	templates contentRepo.TemplateRepository,
	pages contentRepo.PageRepository,
	users contentRepo.UserRepository,
	tx repositories.TransactionManager,
	logger *slog.Logger,
) *Seeder {
	return &Seeder{
		templates: templates,
		pages:     pages,
		users:     users,
		tx:        tx,
		logger:    logger,
	}
}

// Seed stores the file's templates, pages and users in one transaction.
// Entries that already exist are left untouched and counted as skipped.
func (s *Seeder) Seed(ctx context.Context, f *File) (*Summary, error) {
	summary := &Summary{}
	err := s.tx.ExecTx(ctx, func(ctx context.Context) error {
		ids, err := s.seedTemplates(ctx, f.Templates, summary)
		if err != nil {
			return err
		}
		if err := s.seedPages(ctx, f.Pages, ids, summary); err != nil {
			return err
		}
		return s.seedUsers(ctx, f.Users, summary)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("seed applied",
		"templates", summary.Templates,
		"pages", summary.Pages,
		"users", summary.Users,
		"skipped", summary.Skipped,
	)
	return summary, nil
}

// seedTemplates returns the ID of every template named in specs.
func (s *Seeder) seedTemplates(ctx context.Context, specs []TemplateSpec, summary *Summary) (map[string]string, error) {
	ids := make(map[string]string, len(specs))
	var pending []TemplateSpec

	// IDs first, so placement rules can point at templates defined later in the file
	for _, spec := range specs {
		existing, err := s.templates.GetByName(ctx, spec.Name)
		switch {
		case err == nil:
			ids[spec.Name] = existing.ID
			summary.Skipped++
			s.logger.Debug("template exists", "name", spec.Name)
		case errors.Is(err, domain.ErrNotFound):
			ids[spec.Name] = uuid.NewString()
			pending = append(pending, spec)
		default:
			return nil, fmt.Errorf("look up template %s: %w", spec.Name, err)
		}
	}

	for _, spec := range pending {
		parents, err := s.templateIDs(ctx, ids, spec.Parents)
		if err != nil {
			return nil, fmt.Errorf("template %s parents: %w", spec.Name, err)
		}
		children, err := s.templateIDs(ctx, ids, spec.Children)
		if err != nil {
			return nil, fmt.Errorf("template %s children: %w", spec.Name, err)
		}

		tpl := &models.Template{
			ID:                ids[spec.Name],
			Name:              spec.Name,
			NoParents:         spec.NoParents,
			NoChildren:        spec.NoChildren,
			ParentTemplateIDs: parents,
			ChildTemplateIDs:  children,
			Fields:            normalizeFields(spec.Fields),
		}
		if err := s.templates.Create(ctx, tpl); err != nil {
			return nil, fmt.Errorf("create template %s: %w", spec.Name, err)
		}
		summary.Templates++
	}
	return ids, nil
}

// normalizeFields lower-cases field names, the form page fields are stored under.
func normalizeFields(fields []models.Field) []models.Field {
	out := make([]models.Field, len(fields))
	for i, f := range fields {
		f.Name = strings.ToLower(strings.TrimSpace(f.Name))
		out[i] = f
	}
	return out
}

func (s *Seeder) templateIDs(ctx context.Context, ids map[string]string, names []string) ([]string, error) {
	out := make([]string, 0, len(names))
	for _, name := range names {
		id, err := s.templateID(ctx, ids, name)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func (s *Seeder) templateID(ctx context.Context, ids map[string]string, name string) (string, error) {
	if id, ok := ids[name]; ok {
		return id, nil
	}
	tpl, err := s.templates.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", &domain.ValidationError{Message: fmt.Sprintf("unknown template '%s'", name)}
		}
		return "", err
	}
	ids[name] = tpl.ID
	return tpl.ID, nil
}

// depth is 0 for "/", 1 for "/blog/", 2 for "/blog/foo/".
func depth(normalizedPath string) int {
	return strings.Count(normalizedPath, "/") - 1
}

func (s *Seeder) seedPages(ctx context.Context, specs []PageSpec, ids map[string]string, summary *Summary) error {
	// Parents before children, keeping file order within a level
	ordered := slices.Clone(specs)
	slices.SortStableFunc(ordered, func(a, b PageSpec) int {
		return depth(models.NormalizePath(a.Path)) - depth(models.NormalizePath(b.Path))
	})

	templates := map[string]*models.Template{}
	for _, spec := range ordered {
		path := models.NormalizePath(spec.Path)

		exists, err := s.pages.Exists(ctx, path)
		if err != nil {
			return fmt.Errorf("check page %s: %w", path, err)
		}
		if exists {
			summary.Skipped++
			s.logger.Debug("page exists", "path", path)
			continue
		}

		templateID, err := s.templateID(ctx, ids, spec.Template)
		if err != nil {
			return fmt.Errorf("page %s: %w", path, err)
		}
		tpl, ok := templates[templateID]
		if !ok {
			if tpl, err = s.templates.GetByID(ctx, templateID); err != nil {
				return fmt.Errorf("page %s template: %w", path, err)
			}
			templates[templateID] = tpl
		}

		page := &models.Page{
			TemplateID:   templateID,
			TemplateName: spec.Template,
			Path:         path,
			Title:        spec.Title,
			Fields:       map[string]any{},
		}
		if parentPath := models.ParentPath(path); parentPath != "" {
			parent, err := s.pages.GetByPath(ctx, parentPath)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return &domain.ValidationError{Message: fmt.Sprintf("page %s: parent %s does not exist", path, parentPath)}
				}
				return fmt.Errorf("page %s parent: %w", path, err)
			}
			page.ParentID = &parent.ID
			page.Name = strings.TrimPrefix(strings.TrimSuffix(path, "/"), parentPath)
		}
		for key, value := range spec.Fields {
			name := strings.ToLower(strings.TrimSpace(key))
			if !tpl.HasField(name) {
				return &domain.ValidationError{
					Message: fmt.Sprintf("page %s: field '%s' does not exist on template '%s'", path, key, tpl.Name),
				}
			}
			page.SetField(name, value)
		}

		if err := s.pages.Create(ctx, page); err != nil {
			return fmt.Errorf("create page %s: %w", path, err)
		}
		summary.Pages++
	}
	return nil
}

// seedUsers checks names up front: a failed insert aborts a postgres transaction.
func (s *Seeder) seedUsers(ctx context.Context, specs []UserSpec, summary *Summary) error {
	existing, err := s.users.List(ctx, "")
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	taken := make(map[string]bool, len(existing))
	for _, u := range existing {
		taken[u.Name] = true
	}

	for _, spec := range specs {
		if taken[spec.Name] {
			summary.Skipped++
			s.logger.Debug("user exists", "name", spec.Name)
			continue
		}
		user := &models.User{Name: spec.Name, Email: spec.Email, Roles: spec.Roles}
		if err := s.users.Create(ctx, user); err != nil {
			return fmt.Errorf("create user %s: %w", spec.Name, err)
		}
		taken[spec.Name] = true
		summary.Users++
	}
	return nil
}
