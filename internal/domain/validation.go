package domain

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError reports every structural constraint violated by a
// submission as a field -> reason mapping. A submission that fails
// validation is rejected whole; nothing is partially saved.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func newValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

func (e *ValidationError) add(field, reason string) {
	e.Fields[field] = reason
}

// orNil returns the error only when at least one field was rejected.
// Returning a plain nil (not a typed nil) keeps errors.As checks sane.
func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Error implements the error interface, listing fields in a stable order.
func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e.Fields[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
