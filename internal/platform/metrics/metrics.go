// Package metrics registers the Prometheus instruments for the service.
// A nil *Metrics is valid and turns every increment into a no-op, so tests
// can construct services without touching the default registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	AccountsCreated     prometheus.Counter
	AccountsSoftDeleted prometheus.Counter
	AccountsRestored    prometheus.Counter
	AccountsDestroyed   prometheus.Counter

	NotificationsSent   prometheus.Counter
	NotificationsFailed prometheus.Counter

	RateLimitedRequests prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "usersvc_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		AccountsSoftDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "usersvc_accounts_soft_deleted_total",
			Help: "Total number of accounts soft-deleted",
		}),
		AccountsRestored: promauto.NewCounter(prometheus.CounterOpts{
			Name: "usersvc_accounts_restored_total",
			Help: "Total number of soft-deleted accounts restored",
		}),
		AccountsDestroyed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "usersvc_accounts_destroyed_total",
			Help: "Total number of accounts permanently deleted",
		}),
		NotificationsSent: promauto.NewCounter(prometheus.CounterOpts{
			Name: "usersvc_notifications_sent_total",
			Help: "Total number of admin notifications handed to the sink",
		}),
		NotificationsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "usersvc_notifications_failed_total",
			Help: "Total number of admin notifications the sink rejected",
		}),
		RateLimitedRequests: promauto.NewCounter(prometheus.CounterOpts{
			Name: "usersvc_rate_limited_requests_total",
			Help: "Total number of requests rejected by the rate limiter",
		}),
	}
}

func (m *Metrics) IncAccountsCreated() {
	if m != nil {
		m.AccountsCreated.Inc()
	}
}

func (m *Metrics) IncAccountsSoftDeleted() {
	if m != nil {
		m.AccountsSoftDeleted.Inc()
	}
}

func (m *Metrics) IncAccountsRestored() {
	if m != nil {
		m.AccountsRestored.Inc()
	}
}

func (m *Metrics) IncAccountsDestroyed() {
	if m != nil {
		m.AccountsDestroyed.Inc()
	}
}

func (m *Metrics) IncNotificationsSent() {
	if m != nil {
		m.NotificationsSent.Inc()
	}
}

func (m *Metrics) IncNotificationsFailed() {
	if m != nil {
		m.NotificationsFailed.Inc()
	}
}

func (m *Metrics) IncRateLimitedRequests() {
	if m != nil {
		m.RateLimitedRequests.Inc()
	}
}
