// Package httputil holds the response helpers shared by every handler.
package httputil

import (
	"encoding/json"
	"net/http"

	"usersvc/pkg/domerrors"
)

// WriteJSON renders v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError renders the {code, message} error envelope every endpoint of
// this service uses. Non-domain errors collapse to a generic 500 so
// infrastructure details never leak to clients.
func WriteError(w http.ResponseWriter, err error) {
	status := domerrors.HTTPStatus(err)
	WriteJSON(w, status, map[string]any{
		"code":    status,
		"message": domerrors.Message(err),
	})
}
