package content

import (
	"context"

	models "wireshell/internal/domain/models/content"
)

// CreatePagesRequest is the input of a page:create run.
type CreatePagesRequest struct {
	Names        []string // raw names, already split on ","
	TemplateName string
	ParentPath   string // empty = tree root
	Title        string // empty = each raw name
	FieldData    []byte // raw JSON object, nil when no field data file was given
}

// PageOutcome is the result for one requested name.
type PageOutcome struct {
	RequestedName string
	Name          string // sanitized
	Path          string
	State         models.PageState // PageStateCommitted or PageStateSkipped
	PageID        string
	UnknownFields []string
}

// CreatePagesResult collects the outcomes of a batch in input order.
type CreatePagesResult struct {
	Template *models.Template
	Parent   *models.Page
	Pages    []PageOutcome
}

// Created returns how many pages were committed.
func (r *CreatePagesResult) Created() int {
	n := 0
	for _, p := range r.Pages {
		if p.State == models.PageStateCommitted {
			n++
		}
	}
	return n
}

// PageCreator creates batches of pages below a validated parent.
type PageCreator interface {
	// CreatePages resolves template and parent, then creates one page per
	// requested name. Template or parent failures are returned before any
	// page is touched; per-name failures are reported and skipped.
	CreatePages(ctx context.Context, req *CreatePagesRequest) (*CreatePagesResult, error)
}

// TemplateResolver validates a template name for new pages.
type TemplateResolver interface {
	Resolve(ctx context.Context, name string) (*models.Template, error)
}

// ParentResolver validates a placement path for a resolved template.
type ParentResolver interface {
	Resolve(ctx context.Context, path string, tpl *models.Template) (*models.Page, error)
}
