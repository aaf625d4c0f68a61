// Package events publishes lifecycle events to Kafka so downstream services
// (orders, search, analytics) can react to account changes. Publishing is
// fire-and-forget: a failed produce is logged and dropped, never surfaced to
// the lifecycle operation that raised the event.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"usersvc/internal/account/models"
)

// Envelope is the wire format on the topic, keyed by account id so per-
// account ordering is preserved within a partition.
type Envelope struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	AccountID  string `json:"account_id"`
	Email      string `json:"email,omitempty"`
	Role       string `json:"role,omitempty"`
	OldRole    string `json:"old_role,omitempty"`
	NewRole    string `json:"new_role,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

// Publisher produces lifecycle envelopes with franz-go.
type Publisher struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

func NewPublisher(brokers []string, topic string, logger *slog.Logger) (*Publisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, err
	}
	return &Publisher{client: client, topic: topic, logger: logger}, nil
}

// EnsureTopic creates the topic if it does not exist yet. Safe to call on
// every startup.
func (p *Publisher) EnsureTopic(ctx context.Context, partitions int32, replicas int16) error {
	admin := kadm.NewClient(p.client)
	resp, err := admin.CreateTopics(ctx, partitions, replicas, nil, p.topic)
	if err != nil {
		return err
	}
	for _, r := range resp {
		if r.Err != nil && !errors.Is(r.Err, kerr.TopicAlreadyExists) {
			return r.Err
		}
	}
	return nil
}

// Publish implements the account service's Observer interface.
func (p *Publisher) Publish(ctx context.Context, event models.Event) {
	env := envelopeFor(event)
	payload, err := json.Marshal(env)
	if err != nil {
		p.logger.ErrorContext(ctx, "lifecycle envelope marshal failed",
			"event", env.Type, "error", err)
		return
	}

	record := &kgo.Record{
		Key:   []byte(env.AccountID),
		Value: payload,
		Topic: p.topic,
	}
	p.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			p.logger.Error("lifecycle event produce failed",
				"event", env.Type, "account_id", env.AccountID, "error", err)
		}
	})
}

func (p *Publisher) Close() {
	p.client.Close()
}

func envelopeFor(event models.Event) Envelope {
	env := Envelope{
		ID:         uuid.NewString(),
		Type:       event.Kind(),
		OccurredAt: time.Now().UTC().Format(time.RFC3339Nano),
	}
	switch e := event.(type) {
	case models.AccountCreated:
		env.AccountID = e.Account.ID
		env.Email = e.Account.Email
		env.Role = e.Account.Role
	case models.AccountSoftDeleted:
		env.AccountID = e.ID
	case models.AccountRestored:
		env.AccountID = e.ID
	case models.AccountDestroyed:
		env.AccountID = e.ID
	case models.RoleChanged:
		env.AccountID = e.ID
		env.OldRole = e.OldRole
		env.NewRole = e.NewRole
	}
	return env
}
