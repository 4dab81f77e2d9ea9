package domain

import (
	"errors"
	"fmt"
)

// ExitCoder defines errors that map to a process exit status.
// The command boundary uses it to decide how the process terminates.
type ExitCoder interface {
	error
	ExitCode() int
}

// Domain error types implementing ExitCoder
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}
)

func (e *NotFoundError) Error() string   { return e.Message }
func (e *ValidationError) Error() string { return e.Message }

func (e *NotFoundError) ExitCode() int   { return 1 }
func (e *ValidationError) ExitCode() int { return 1 }

func (e *NotFoundError) Is(target error) bool   { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("already exists")
	ErrValidation = errors.New("validation failed")

	ErrTemplateNotFound           = errors.New("template not found")
	ErrTemplateDisallowsNewPages  = errors.New("template not allowed for new pages")
	ErrParentDisallowsChildren    = errors.New("parent not allowed to have children")
	ErrTemplateNotAllowedAsChild  = errors.New("parent not allowed for template")
	ErrTemplateNotAllowedAsParent = errors.New("template not allowed as child of parent")
	ErrDuplicateName              = errors.New("page name already taken")
	ErrUnknownField               = errors.New("unknown field")
)

// ConflictError represents a resource conflict with details about the existing resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (page, template, user)
	ResourceID   string // ID or path of the existing resource
}

func (e *ConflictError) Error() string { return e.Message }

func (e *ConflictError) ExitCode() int { return 1 }

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// PlacementError reports why a template or parent cannot be used for new pages.
// Reason is one of the template/parent sentinels above.
type PlacementError struct {
	Reason   error
	Template string
	Parent   string // parent path, empty for template-only failures
	Message  string
}

func (e *PlacementError) Error() string { return e.Message }

func (e *PlacementError) Unwrap() error { return e.Reason }

func (e *PlacementError) ExitCode() int { return 1 }

// NewTemplateNotFound builds the error returned for an unknown template name.
func NewTemplateNotFound(name string) *PlacementError {
	return &PlacementError{
		Reason:   ErrTemplateNotFound,
		Template: name,
		Message:  fmt.Sprintf("Template '%s' doesn't exist!", name),
	}
}

// NewTemplateDisallowsNewPages builds the error for a template flagged noParents.
func NewTemplateDisallowsNewPages(name string) *PlacementError {
	return &PlacementError{
		Reason:   ErrTemplateDisallowsNewPages,
		Template: name,
		Message:  fmt.Sprintf("Template '%s' is not allowed to be used for new pages!", name),
	}
}

// NewParentDisallowsChildren builds the error for a parent whose template forbids children.
func NewParentDisallowsChildren(template, parent string) *PlacementError {
	return &PlacementError{
		Reason:   ErrParentDisallowsChildren,
		Template: template,
		Parent:   parent,
		Message:  fmt.Sprintf("The parent page '%s' is not allowed to have children!", parent),
	}
}

// NewTemplateNotAllowedAsChild builds the error for a parent outside the template's allowed parents.
func NewTemplateNotAllowedAsChild(template, parent string) *PlacementError {
	return &PlacementError{
		Reason:   ErrTemplateNotAllowedAsChild,
		Template: template,
		Parent:   parent,
		Message:  fmt.Sprintf("The parent page '%s' is not allowed to be parent for this template!", parent),
	}
}

// NewTemplateNotAllowedAsParent builds the error for a template outside the parent's allowed children.
func NewTemplateNotAllowedAsParent(template, parentTemplate, parent string) *PlacementError {
	return &PlacementError{
		Reason:   ErrTemplateNotAllowedAsParent,
		Template: template,
		Parent:   parent,
		Message:  fmt.Sprintf("This template '%s' is not allowed to be children of template '%s'!", template, parentTemplate),
	}
}

// UnknownFieldError is reported for a payload key that matches no field on the page.
// It never aborts page creation.
type UnknownFieldError struct {
	Field string
	Page  string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("Field specified in JSON did not exist: %s", e.Field)
}

func (e *UnknownFieldError) Is(target error) bool {
	return target == ErrUnknownField
}

// ExitCode returns the process status for err: 0 for nil, the error's own
// code for ExitCoder values, 1 for anything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var coder ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return 1
}
