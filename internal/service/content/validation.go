package content

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"wireshell/internal/config"
	"wireshell/internal/domain"
	contentSvc "wireshell/internal/domain/services/content"
)

// SplitNames splits a comma-delimited name argument, dropping blank entries.
func SplitNames(arg string) []string {
	var names []string
	for _, n := range strings.Split(arg, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}

func validateCreatePagesRequest(req *contentSvc.CreatePagesRequest) error {
	err := validation.ValidateStruct(req,
		validation.Field(&req.Names,
			validation.Required.Error("at least one page name is required"),
			validation.Each(validation.Required, validation.Length(1, config.MaxPageNameInputLength)),
		),
		validation.Field(&req.ParentPath, validation.Length(0, config.MaxPagePathLength)), // empty = root
		validation.Field(&req.Title, validation.Length(0, config.MaxPageTitleLength)),
	)
	if err != nil {
		return &domain.ValidationError{Message: err.Error()}
	}
	return nil
}
