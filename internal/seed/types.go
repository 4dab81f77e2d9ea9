package seed

import models "wireshell/internal/domain/models/content"

// File is the content of a seed YAML file.
type File struct {
	Templates []TemplateSpec `yaml:"templates"`
	Pages     []PageSpec     `yaml:"pages"`
	Users     []UserSpec     `yaml:"users"`
}

// TemplateSpec describes a template. Placement rules name other templates;
// they are resolved to IDs when the file is applied.
type TemplateSpec struct {
	Name       string         `yaml:"name"`
	NoParents  bool           `yaml:"no_parents"`
	NoChildren bool           `yaml:"no_children"`
	Parents    []string       `yaml:"parents"`  // allowed parent templates, empty = any
	Children   []string       `yaml:"children"` // allowed child templates, empty = any
	Fields     []models.Field `yaml:"fields"`
}

// PageSpec describes a page by its full path. The root ("/") must be
// listed before any other page unless it already exists.
type PageSpec struct {
	Path     string         `yaml:"path"`
	Template string         `yaml:"template"`
	Title    string         `yaml:"title"`
	Fields   map[string]any `yaml:"fields"`
}

// UserSpec describes a user account.
type UserSpec struct {
	Name  string   `yaml:"name"`
	Email string   `yaml:"email"`
	Roles []string `yaml:"roles"`
}

// Summary counts what a seed run stored and what it found already present.
type Summary struct {
	Templates int
	Pages     int
	Users     int
	Skipped   int
}
