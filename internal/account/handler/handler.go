// Package handler is the thin HTTP layer over the account lifecycle
// service. It decodes, validates, delegates and renders; business rules live
// in the service.
package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"usersvc/internal/account/models"
	"usersvc/pkg/domerrors"
	"usersvc/pkg/platform/httputil"
)

// AccountService is the slice of the lifecycle service the handler needs.
type AccountService interface {
	Create(ctx context.Context, draft models.Account) (models.Account, error)
	Get(ctx context.Context, id string) (models.Account, error)
	List(ctx context.Context, filter models.ListFilter) ([]models.Account, error)
	Update(ctx context.Context, id string, patch models.Patch) (models.Account, error)
	SoftDelete(ctx context.Context, id string) (models.Account, error)
	Restore(ctx context.Context, id string) (models.Account, error)
	Destroy(ctx context.Context, id string) error
}

type Handler struct {
	accounts AccountService
}

func New(accounts AccountService) *Handler {
	return &Handler{accounts: accounts}
}

// Register mounts the account routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Route("/api/v1/users", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.softDelete)
		r.Put("/{id}/restore", h.restore)
		r.Delete("/{id}/permanent", h.destroy)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.ListFilter{
		FullnameContains: q.Get("fullname"),
		UsernameContains: q.Get("username"),
		EmailContains:    q.Get("email"),
		Role:             q.Get("role"),
		IncludeDeleted:   q.Get("includeDeleted") == "true",
	}

	accounts, err := h.accounts.List(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	out := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toResponse(a))
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, domerrors.New(domerrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := req.validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	account, err := h.accounts.Create(r.Context(), req.toDraft())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toResponse(account))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	account, err := h.accounts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(account))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, domerrors.New(domerrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := req.validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	account, err := h.accounts.Update(r.Context(), chi.URLParam(r, "id"), req.toPatch())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(account))
}

func (h *Handler) softDelete(w http.ResponseWriter, r *http.Request) {
	account, err := h.accounts.SoftDelete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(account))
}

func (h *Handler) restore(w http.ResponseWriter, r *http.Request) {
	account, err := h.accounts.Restore(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(account))
}

func (h *Handler) destroy(w http.ResponseWriter, r *http.Request) {
	if err := h.accounts.Destroy(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
