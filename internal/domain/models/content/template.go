package content

import (
	"slices"
	"strings"
	"time"
)

// Field describes one field a template gives its pages.
type Field struct {
	Name  string `json:"name" yaml:"name"`
	Type  string `json:"type" yaml:"type"` // text, textarea, integer, file, ...
	Label string `json:"label,omitempty" yaml:"label"`
}

// Template is a named content type. It decides which fields a page has and
// where in the tree a page of this type may be placed.
type Template struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`

	// NoParents forbids new pages using this template.
	NoParents bool `json:"no_parents" db:"no_parents"`
	// NoChildren forbids children below pages using this template.
	NoChildren bool `json:"no_children" db:"no_children"`

	// ParentTemplateIDs restricts the templates a parent may use. Empty = any.
	ParentTemplateIDs []string `json:"parent_template_ids" db:"parent_template_ids"`
	// ChildTemplateIDs restricts the templates children may use. Empty = any.
	ChildTemplateIDs []string `json:"child_template_ids" db:"child_template_ids"`

	Fields    []Field   `json:"fields" db:"fields"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// AllowsNewPages reports whether pages may be created with this template.
func (t *Template) AllowsNewPages() bool {
	return !t.NoParents
}

// AllowsParent reports whether a page with this template may be placed below
// a parent using the template with the given id.
func (t *Template) AllowsParent(parentTemplateID string) bool {
	return len(t.ParentTemplateIDs) == 0 || slices.Contains(t.ParentTemplateIDs, parentTemplateID)
}

// AllowsChild reports whether pages of this template may have a child using
// the template with the given id.
func (t *Template) AllowsChild(childTemplateID string) bool {
	return len(t.ChildTemplateIDs) == 0 || slices.Contains(t.ChildTemplateIDs, childTemplateID)
}

// HasField reports whether the template declares a field named name,
// ignoring case.
func (t *Template) HasField(name string) bool {
	for _, f := range t.Fields {
		if strings.EqualFold(f.Name, name) {
			return true
		}
	}
	return false
}

func (t *Template) String() string {
	return t.Name
}
