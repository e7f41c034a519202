package campusalert

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError collects per-field problems with a submission. It is
// returned before anything is enqueued, so an invalid request never reaches
// a worker.
type ValidationError map[string][]string

// NewValidationError creates an empty validation error.
func NewValidationError() ValidationError {
	return make(ValidationError)
}

// Add records an error message for a field.
func (e ValidationError) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Has reports whether the field has any errors.
func (e ValidationError) Has(field string) bool {
	return len(e[field]) > 0
}

// IsEmpty reports whether no errors were recorded.
func (e ValidationError) IsEmpty() bool {
	return len(e) == 0
}

// Error implements the error interface with a stable, human-readable
// summary.
func (e ValidationError) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}

	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e[field][0]))
	}
	return "validation error: " + strings.Join(parts, ", ")
}
