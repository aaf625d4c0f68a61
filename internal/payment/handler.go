package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"usersvc/pkg/domerrors"
	"usersvc/pkg/platform/httputil"
)

// PaymentService is the slice of the payment service the handler needs.
type PaymentService interface {
	ListByOwner(ctx context.Context, ownerID string) ([]Method, error)
	Get(ctx context.Context, id int) (Method, error)
	Create(ctx context.Context, m Method) (Method, error)
	Update(ctx context.Context, ownerID string, id int, patch Patch) (Method, error)
	Delete(ctx context.Context, ownerID string, id int) error
}

type Handler struct {
	payments PaymentService
}

func NewHandler(payments PaymentService) *Handler {
	return &Handler{payments: payments}
}

// Register mounts the payment method routes under the owning account.
func (h *Handler) Register(r chi.Router) {
	r.Route("/api/v1/users/{userId}/payment-methods", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/{paymentMethodId}", h.get)
		r.Put("/{paymentMethodId}", h.update)
		r.Delete("/{paymentMethodId}", h.delete)
	})
}

type methodRequest struct {
	CardNumber     *string `json:"cardNumber"`
	Email          *string `json:"email"`
	Phone          *string `json:"phone"`
	ExpiryDate     *string `json:"expiryDate"`
	CardHolderName *string `json:"cardHolderName"`
	City           *string `json:"city"`
	FirstLine      *string `json:"firstLine"`
	SecondLine     *string `json:"secondLine"`
	Country        *string `json:"country"`
	PostalCode     *string `json:"postalCode"`
	StateName      *string `json:"stateName"`
}

type methodResponse struct {
	ID             int    `json:"id"`
	CardNumber     string `json:"cardNumber"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	ExpiryDate     string `json:"expiryDate"`
	CardHolderName string `json:"cardHolderName"`
	City           string `json:"city"`
	FirstLine      string `json:"firstLine"`
	SecondLine     string `json:"secondLine"`
	Country        string `json:"country"`
	PostalCode     string `json:"postalCode"`
	StateName      string `json:"stateName"`
}

func toMethodResponse(m Method) methodResponse {
	return methodResponse{
		ID:             m.ID,
		CardNumber:     m.CardNumber,
		Email:          m.Email,
		Phone:          m.Phone,
		ExpiryDate:     m.ExpiryDate,
		CardHolderName: m.CardHolderName,
		City:           m.City,
		FirstLine:      m.FirstLine,
		SecondLine:     m.SecondLine,
		Country:        m.Country,
		PostalCode:     m.PostalCode,
		StateName:      m.StateName,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	methods, err := h.payments.ListByOwner(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out := make([]methodResponse, 0, len(methods))
	for _, m := range methods {
		out = append(out, toMethodResponse(m))
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req methodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, domerrors.New(domerrors.CodeBadRequest, "invalid request body"))
		return
	}

	draft := Method{OwnerID: chi.URLParam(r, "userId")}
	Patch(req).apply(&draft)

	created, err := h.payments.Create(r.Context(), draft)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toMethodResponse(created))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := methodID(w, r)
	if !ok {
		return
	}
	m, err := h.payments.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toMethodResponse(m))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := methodID(w, r)
	if !ok {
		return
	}
	var req methodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, domerrors.New(domerrors.CodeBadRequest, "invalid request body"))
		return
	}

	m, err := h.payments.Update(r.Context(), chi.URLParam(r, "userId"), id, Patch(req))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toMethodResponse(m))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := methodID(w, r)
	if !ok {
		return
	}
	if err := h.payments.Delete(r.Context(), chi.URLParam(r, "userId"), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func methodID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "paymentMethodId"))
	if err != nil {
		httputil.WriteError(w, domerrors.New(domerrors.CodeBadRequest, "invalid payment method id"))
		return 0, false
	}
	return id, true
}
