// Package notify turns lifecycle events into administrator notifications.
// It is strictly decoupled from the mutation path: the dispatcher observes
// committed events, decides eligibility, resolves recipients and hands each
// message to a Sink. Nothing in here can fail a lifecycle operation.
package notify

import (
	"context"
	"log/slog"
)

// Sink accepts a composed notification and performs delivery. Delivery is
// best-effort; an error is logged by the dispatcher and dropped.
type Sink interface {
	Send(ctx context.Context, subject, recipient, bodyHTML string) error
}

// LogSink writes notifications to the log instead of delivering them.
// Used in development and whenever SMTP is not configured.
type LogSink struct {
	Logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{Logger: logger}
}

func (s *LogSink) Send(ctx context.Context, subject, recipient, _ string) error {
	s.Logger.InfoContext(ctx, "notification (log sink)",
		"subject", subject,
		"recipient", recipient,
	)
	return nil
}
