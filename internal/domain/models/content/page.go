package content

import (
	"fmt"
	"strings"
	"time"
)

// RootPath is the path of the tree root.
const RootPath = "/"

// NameField is the native field holding the page's path segment.
const NameField = "name"

// TitleField is the template field mirrored into Page.Title.
const TitleField = "title"

// PageState tracks a page through creation.
type PageState string

const (
	PageStateRequested    PageState = "requested"
	PageStateSanitized    PageState = "sanitized"
	PageStateSkipped      PageState = "skipped"
	PageStateShellCreated PageState = "shell_created"
	PageStatePopulated    PageState = "populated"
	PageStateCommitted    PageState = "committed"
)

// Page is a single content item located by a unique hierarchical path.
type Page struct {
	ID           string         `json:"id" db:"id"` // empty until first commit
	ParentID     *string        `json:"parent_id" db:"parent_id"`
	TemplateID   string         `json:"template_id" db:"template_id"`
	TemplateName string         `json:"template" db:"-"` // joined from templates, not stored
	Name         string         `json:"name" db:"name"`
	Path         string         `json:"path" db:"path"` // always ends with "/"
	Title        string         `json:"title" db:"title"`
	Fields       map[string]any `json:"fields" db:"fields"`
	State        PageState      `json:"-" db:"-"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
}

// ChildPath returns the path a child named name would have below p.
func (p *Page) ChildPath(name string) string {
	return ChildPath(p.Path, name)
}

// Field returns the value stored for a template field.
func (p *Page) Field(name string) (any, bool) {
	switch name {
	case NameField:
		return p.Name, true
	case TitleField:
		return p.Title, true
	}
	v, ok := p.Fields[name]
	return v, ok
}

// SetField assigns a field value. Callers check the name against the
// template first; SetField only routes native fields to their columns.
func (p *Page) SetField(name string, value any) {
	switch name {
	case NameField:
		if s, ok := value.(string); ok {
			p.Name = s
			if parent := ParentPath(p.Path); parent != "" {
				p.Path = ChildPath(parent, s)
			}
		}
		return
	case TitleField:
		if s, ok := value.(string); ok {
			p.Title = s
		} else if value != nil {
			p.Title = fmt.Sprint(value)
		}
		return
	}
	if p.Fields == nil {
		p.Fields = make(map[string]any)
	}
	p.Fields[name] = value
}

// NormalizePath turns "blog", "/blog" and "blog/" into "/blog/".
// Empty input yields the root path.
func NormalizePath(path string) string {
	trimmed := strings.Trim(strings.TrimSpace(path), "/")
	if trimmed == "" {
		return RootPath
	}
	return "/" + trimmed + "/"
}

// ChildPath joins a parent path and a page name.
func ChildPath(parentPath, name string) string {
	return NormalizePath(parentPath) + name + "/"
}

// ParentPath returns the parent's path, or "" for the root.
func ParentPath(path string) string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return ""
	}
	i := strings.LastIndex(trimmed, "/")
	if i < 0 {
		return RootPath
	}
	return "/" + trimmed[:i] + "/"
}
