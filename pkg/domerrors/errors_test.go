package domerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	err := New(CodeNotFound, "account not found")
	assert.True(t, HasCode(err, CodeNotFound))
	assert.False(t, HasCode(err, CodeGone))
	assert.False(t, HasCode(errors.New("plain"), CodeNotFound))
	assert.False(t, HasCode(nil, CodeNotFound))
}

func TestHasCodeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("operation failed: %w", New(CodeConflict, "email already in use"))
	assert.True(t, HasCode(err, CodeConflict))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeInternal, "account could not be created")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "internal: account could not be created: connection refused", err.Error())
}

func TestConflictField(t *testing.T) {
	assert.Equal(t, "email", ConflictField(Conflict("email", "email already in use")))
	assert.Equal(t, "", ConflictField(New(CodeNotFound, "nope")))
	assert.Equal(t, "", ConflictField(errors.New("plain")))
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"conflict maps to 400", Conflict("email", "taken"), http.StatusBadRequest},
		{"bad request maps to 400", New(CodeBadRequest, "invalid email"), http.StatusBadRequest},
		{"ownership maps to 403", New(CodeOwnership, "user id does not match"), http.StatusForbidden},
		{"not found maps to 404", New(CodeNotFound, "account not found"), http.StatusNotFound},
		{"gone maps to 404", New(CodeGone, "account is deleted"), http.StatusNotFound},
		{"already in state maps to 404", New(CodeAlreadyInState, "already deleted"), http.StatusNotFound},
		{"internal maps to 500", New(CodeInternal, "boom"), http.StatusInternalServerError},
		{"non-domain error maps to 500", errors.New("plain"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatus(tc.err))
		})
	}
}

func TestMessageHidesInternals(t *testing.T) {
	assert.Equal(t, "account not found", Message(New(CodeNotFound, "account not found")))
	assert.Equal(t, "internal server error", Message(errors.New("password=hunter2 leaked")))
}
