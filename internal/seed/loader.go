// Package seed loads templates, pages and users from YAML into a content store.
package seed

import (
	"embed"
	"fmt"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"wireshell/internal/domain"
)

//go:embed default.yaml
var defaultFiles embed.FS

// Default returns the built-in seed: a home root, an admin page and a superuser.
func Default() (*File, error) {
	data, err := defaultFiles.ReadFile("default.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read default seed: %w", err)
	}
	return Parse(data)
}

// LoadFile reads and parses a seed file from disk.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates seed YAML.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("failed to parse seed YAML: %v", err)}
	}
	if err := f.Validate(); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}
	return &f, nil
}

// Validate checks required attributes of every entry.
func (f *File) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.Templates),
		validation.Field(&f.Pages),
		validation.Field(&f.Users),
	)
}

func (t TemplateSpec) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Name, validation.Required),
	)
}

func (p PageSpec) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Path, validation.Required),
		validation.Field(&p.Template, validation.Required),
	)
}

func (u UserSpec) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.Name, validation.Required),
	)
}
