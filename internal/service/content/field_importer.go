package content

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/tidwall/gjson"

	"wireshell/internal/config"
	"wireshell/internal/domain"
	models "wireshell/internal/domain/models/content"
	contentSvc "wireshell/internal/domain/services/content"
)

// FieldValue is one key of a field payload, in file order.
type FieldValue struct {
	Key   string
	Value any
}

// FieldPayload is a parsed field data file.
type FieldPayload []FieldValue

// FieldDataImporter maps field payloads onto pages.
type FieldDataImporter struct {
	sanitizer contentSvc.Sanitizer
	logger    *slog.Logger
}

// NewFieldDataImporter creates a new importer
func NewFieldDataImporter(sanitizer contentSvc.Sanitizer, logger *slog.Logger) *FieldDataImporter {
	return &FieldDataImporter{
		sanitizer: sanitizer,
		logger:    logger,
	}
}

// LoadFile reads a field data file, refusing files over the size cap
func (i *FieldDataImporter) LoadFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("field data file: %v", err)}
	}
	if info.IsDir() {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("field data file %s is a directory", path)}
	}
	if info.Size() > config.MaxFieldDataFileBytes {
		return nil, &domain.ValidationError{
			Message: fmt.Sprintf("field data file %s exceeds %d bytes", path, config.MaxFieldDataFileBytes),
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read field data file: %w", err)
	}
	return data, nil
}

// Parse decodes a JSON object, keeping key order
func (i *FieldDataImporter) Parse(raw []byte) (FieldPayload, error) {
	if !gjson.ValidBytes(raw) {
		return nil, &domain.ValidationError{Message: "field data is not valid JSON"}
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return nil, &domain.ValidationError{Message: "field data must be a JSON object"}
	}

	payload := FieldPayload{}
	doc.ForEach(func(key, value gjson.Result) bool {
		payload = append(payload, FieldValue{Key: key.String(), Value: value.Value()})
		return true
	})
	return payload, nil
}

// Apply assigns payload values to page. Keys are matched case-insensitively
// against the page's known fields; unknown keys are skipped and returned.
func (i *FieldDataImporter) Apply(page *models.Page, tpl *models.Template, payload FieldPayload) []*domain.UnknownFieldError {
	var unknown []*domain.UnknownFieldError

	for _, fv := range payload {
		name := strings.ToLower(strings.TrimSpace(fv.Key))
		if name != models.NameField && !tpl.HasField(name) {
			i.logger.Warn("field does not exist on template", "field", name, "template", tpl.Name, "page", page.Path)
			unknown = append(unknown, &domain.UnknownFieldError{Field: name, Page: page.Path})
			continue
		}

		value := fv.Value
		if name == models.NameField {
			var sanitized string
			if value != nil {
				sanitized = i.sanitizer.PageName(fmt.Sprint(value))
			}
			if sanitized == "" {
				i.logger.Warn("ignoring empty page name from field data", "page", page.Path, "value", value)
				continue
			}
			value = sanitized
		}

		page.SetField(name, value)
	}

	page.State = models.PageStatePopulated
	return unknown
}
