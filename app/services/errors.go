package services

import (
	"fmt"
	"sort"
	"strings"

	"quillblog/app/models"
)

// ValidationError reports field-level problems with submitted data.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func fieldError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// validationError converts a model validation failure into a ValidationError.
func validationError(err error) error {
	if fields := models.FieldErrors(err); fields != nil {
		return &ValidationError{Fields: fields}
	}
	return fmt.Errorf("invalid input: %w", err)
}
