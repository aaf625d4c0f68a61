// Package http assembles the service router: platform middleware, operational
// endpoints and the domain handlers.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"usersvc/internal/platform/middleware"
)

// Registrar mounts a handler's routes on the router.
type Registrar interface {
	Register(r chi.Router)
}

// Health reports readiness of an attached dependency.
type Health func() error

// NewRouter builds the full HTTP surface. A nil rate limiter disables
// limiting; health checks run only for the dependencies that are wired.
func NewRouter(limiter *middleware.RateLimiter, health map[string]Health, handlers ...Registrar) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	if limiter != nil {
		r.Use(limiter.Handler)
	}

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", healthz(health))

	for _, h := range handlers {
		h.Register(r)
	}
	return r
}

func healthz(checks map[string]Health) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for name, check := range checks {
			if err := check(); err != nil {
				http.Error(w, name+": "+err.Error(), http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
