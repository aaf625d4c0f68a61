package sentinel

import (
	"errors"
	"fmt"
)

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so services can translate them into domain errors without
// depending on storage technology.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// ConflictError is a uniqueness violation naming the violated field. The
// postgres stores build it from constraint names so the check-then-write race
// backstop reports the same field the registry checks would have.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict on %s", e.Field)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// Conflict builds a ConflictError for the given field.
func Conflict(field string) error {
	return &ConflictError{Field: field}
}

// ConflictField extracts the violated field from err, or "" when err is not
// a field-tagged conflict.
func ConflictField(err error) string {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce.Field
	}
	return ""
}
