package notify

import (
	"context"
	"log/slog"

	"usersvc/internal/account/models"
	"usersvc/internal/platform/metrics"
	"usersvc/pkg/requestcontext"
)

// Dispatcher observes committed lifecycle events and fans eligible ones out
// to every administrator. It runs after the mutation, on a detached context,
// and every failure here is logged and swallowed: the mutation already
// succeeded, notification is advisory.
//
// Eligibility rules: every event notifies, except AccountCreated for an
// account holding the default role. RoleChanged events arrive pre-filtered
// by the lifecycle service.
type Dispatcher struct {
	directory Directory
	sink      Sink
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

func NewDispatcher(directory Directory, sink Sink, logger *slog.Logger, m *metrics.Metrics) *Dispatcher {
	return &Dispatcher{
		directory: directory,
		sink:      sink,
		logger:    logger,
		metrics:   m,
	}
}

// Publish implements the account service's Observer interface.
func (d *Dispatcher) Publish(ctx context.Context, event models.Event) {
	subject, body, ok := d.compose(event)
	if !ok {
		return
	}
	d.sendToAdmins(ctx, event.Kind(), subject, body)
}

func (d *Dispatcher) compose(event models.Event) (subject, body string, ok bool) {
	switch e := event.(type) {
	case models.AccountCreated:
		if e.Account.HasDefaultRole() {
			return "", "", false
		}
		subject = "New employee account created"
		body = createdBody(e.Account.Fullname, e.Account.Email, e.Account.Role)
	case models.AccountSoftDeleted:
		subject = "Account soft-deleted"
		body = softDeletedBody(e.ID)
	case models.AccountRestored:
		subject = "Account restored"
		body = restoredBody(e.ID)
	case models.AccountDestroyed:
		subject = "Account permanently deleted"
		body = destroyedBody(e.ID)
	case models.RoleChanged:
		subject = "Account role changed"
		body = roleChangedBody(e.ID, e.OldRole, e.NewRole)
	default:
		return "", "", false
	}
	return subject, wrapBody(subject, body), true
}

// sendToAdmins resolves recipients and delivers sequentially, preserving
// directory order. One failed recipient does not stop the rest.
func (d *Dispatcher) sendToAdmins(ctx context.Context, kind, subject, bodyHTML string) {
	recipients, err := d.directory.AdminEmails(ctx)
	if err != nil {
		d.logger.ErrorContext(ctx, "admin recipient resolution failed",
			"event", kind,
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		return
	}

	for _, recipient := range recipients {
		if err := d.sink.Send(ctx, subject, recipient, bodyHTML); err != nil {
			d.metrics.IncNotificationsFailed()
			d.logger.ErrorContext(ctx, "notification delivery failed",
				"event", kind,
				"recipient", recipient,
				"request_id", requestcontext.RequestID(ctx),
				"error", err,
			)
			continue
		}
		d.metrics.IncNotificationsSent()
	}
}
