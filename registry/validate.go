package registry

import (
	"fmt"
	"strings"
)

// FieldError represents a validation failure for a specific field.
type FieldError struct {
	Field   string // Field path (e.g., "releases[1.0.0][0].size")
	Message string // Human-readable error message
}

func (e *FieldError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidationErrors collects multiple validation errors.
type ValidationErrors struct {
	Errors []*FieldError
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d validation errors:", len(e.Errors))
	for _, err := range e.Errors {
		fmt.Fprintf(&b, "\n  - %s", err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying errors for errors.Is/As compatibility.
func (e *ValidationErrors) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, err := range e.Errors {
		errs[i] = err
	}
	return errs
}

// Validate checks structural invariants of an index response: the info block
// must name a package, and file sizes must not be negative. It returns a
// *ValidationErrors listing every violation, or nil.
func (p *Package) Validate() error {
	var errs []*FieldError

	if strings.TrimSpace(p.Info.Name) == "" {
		errs = append(errs, &FieldError{Field: "info.name", Message: "must not be empty"})
	}

	for version, files := range p.Releases {
		for i, f := range files {
			if f.Size < 0 {
				errs = append(errs, &FieldError{
					Field:   fmt.Sprintf("releases[%s][%d].size", version, i),
					Message: fmt.Sprintf("must not be negative, got %d", f.Size),
				})
			}
		}
	}

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}
