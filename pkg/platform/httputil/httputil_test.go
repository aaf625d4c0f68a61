package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"usersvc/pkg/domerrors"
)

func TestWriteError(t *testing.T) {
	t.Run("domain error renders its message", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, domerrors.New(domerrors.CodeNotFound, "account not found"))

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
		}

		var body map[string]any
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body["code"] != float64(http.StatusNotFound) {
			t.Fatalf("expected envelope code %d, got %v", http.StatusNotFound, body["code"])
		}
		if body["message"] != "account not found" {
			t.Fatalf("expected message to be returned, got %q", body["message"])
		}
	})

	t.Run("non-domain error hides its message", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, errors.New("db failed"))

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
		}

		var body map[string]any
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body["message"] != "internal server error" {
			t.Fatalf("expected generic message, got %q", body["message"])
		}
	})
}
