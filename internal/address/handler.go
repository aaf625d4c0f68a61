package address

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"usersvc/pkg/domerrors"
	"usersvc/pkg/platform/httputil"
)

// AddressService is the slice of the address service the handler needs.
type AddressService interface {
	ListByOwner(ctx context.Context, ownerID string) ([]Address, error)
	Create(ctx context.Context, a Address) (Address, error)
	Get(ctx context.Context, ownerID string, id int) (Address, error)
	Update(ctx context.Context, ownerID string, id int, patch Patch) (Address, error)
	Delete(ctx context.Context, ownerID string, id int) error
}

type Handler struct {
	addresses AddressService
}

func NewHandler(addresses AddressService) *Handler {
	return &Handler{addresses: addresses}
}

// Register mounts the address routes under the owning account.
func (h *Handler) Register(r chi.Router) {
	r.Route("/api/v1/users/{userId}/addresses", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/{addressId}", h.get)
		r.Put("/{addressId}", h.update)
		r.Delete("/{addressId}", h.delete)
	})
}

type addressRequest struct {
	Name      *string  `json:"name"`
	Address   *string  `json:"address"`
	Details   *string  `json:"details"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type addressResponse struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Details   string  `json:"details"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func toAddressResponse(a Address) addressResponse {
	return addressResponse{
		ID:        a.ID,
		Name:      a.Name,
		Address:   a.Address,
		Details:   a.Details,
		Latitude:  a.Latitude,
		Longitude: a.Longitude,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	addresses, err := h.addresses.ListByOwner(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out := make([]addressResponse, 0, len(addresses))
	for _, a := range addresses {
		out = append(out, toAddressResponse(a))
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req addressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, domerrors.New(domerrors.CodeBadRequest, "invalid request body"))
		return
	}

	draft := Address{OwnerID: chi.URLParam(r, "userId")}
	Patch(req).apply(&draft)

	created, err := h.addresses.Create(r.Context(), draft)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toAddressResponse(created))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := addressID(w, r)
	if !ok {
		return
	}
	a, err := h.addresses.Get(r.Context(), chi.URLParam(r, "userId"), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toAddressResponse(a))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := addressID(w, r)
	if !ok {
		return
	}
	var req addressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, domerrors.New(domerrors.CodeBadRequest, "invalid request body"))
		return
	}

	a, err := h.addresses.Update(r.Context(), chi.URLParam(r, "userId"), id, Patch(req))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toAddressResponse(a))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := addressID(w, r)
	if !ok {
		return
	}
	if err := h.addresses.Delete(r.Context(), chi.URLParam(r, "userId"), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func addressID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "addressId"))
	if err != nil {
		httputil.WriteError(w, domerrors.New(domerrors.CodeBadRequest, "invalid address id"))
		return 0, false
	}
	return id, true
}
