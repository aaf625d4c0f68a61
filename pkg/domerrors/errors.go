// Package domerrors defines the domain error taxonomy shared by all services.
//
// Stores report infrastructure facts through pkg/platform/sentinel; services
// translate those facts into domain errors carrying a stable code and a
// human-readable message. The transport layer maps codes to HTTP statuses and
// renders the {code, message} envelope without inspecting error strings.
package domerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies a class of recoverable domain failure.
type Code string

const (
	// CodeConflict signals a uniqueness violation (id, email or username).
	CodeConflict Code = "conflict"
	// CodeNotFound signals the target entity does not exist.
	CodeNotFound Code = "not_found"
	// CodeGone signals the entity exists but is soft-deleted and therefore
	// invisible to ordinary reads.
	CodeGone Code = "gone"
	// CodeAlreadyInState signals a transition into the entity's current state.
	CodeAlreadyInState Code = "already_in_state"
	// CodeOwnership signals a child entity referencing a different owner.
	CodeOwnership Code = "ownership_mismatch"
	// CodeBadRequest signals malformed or invalid input.
	CodeBadRequest Code = "bad_request"
	// CodeInternal signals a persistence or infrastructure failure.
	CodeInternal Code = "internal"
)

// Error is the domain error carried across service boundaries.
type Error struct {
	Code    Code
	Message string
	// Field names the first conflicting field for CodeConflict errors
	// ("id", "email" or "username"). Empty otherwise.
	Field string

	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New builds a domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying cause.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// Conflict builds a conflict error naming the violated field.
func Conflict(field, message string) *Error {
	return &Error{Code: CodeConflict, Message: message, Field: field}
}

// HasCode reports whether err is a domain error with the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	return errors.As(err, &de) && de.Code == code
}

// ConflictField returns the violated field of a conflict error, or "".
func ConflictField(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Field
	}
	return ""
}

// HTTPStatus maps a domain error (or any error) to an HTTP status code.
// Gone and AlreadyInState intentionally collapse to 404 on the wire; they
// stay distinct codes so callers and tests can tell them apart.
func HTTPStatus(err error) int {
	var de *Error
	if !errors.As(err, &de) {
		return http.StatusInternalServerError
	}
	switch de.Code {
	case CodeConflict, CodeBadRequest:
		return http.StatusBadRequest
	case CodeOwnership:
		return http.StatusForbidden
	case CodeNotFound, CodeGone, CodeAlreadyInState:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the caller-facing message for err, hiding internals behind
// a generic message when err is not a domain error.
func Message(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return "internal server error"
}
