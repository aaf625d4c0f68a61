//go:build integration

package events_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"usersvc/internal/account/models"
	"usersvc/internal/events"
	"usersvc/pkg/testutil/containers"
)

// TestPublisherRoundTrip produces lifecycle envelopes against a real broker
// and reads them back, checking the account-id key that drives partitioning.
func TestPublisherRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	rp := containers.NewRedpandaContainer(t)
	defer func() { _ = rp.Container.Terminate(context.Background()) }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	const topic = "account.lifecycle.test"
	pub, err := events.NewPublisher([]string{rp.Broker}, topic, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	defer pub.Close()
	require.NoError(t, pub.EnsureTopic(ctx, 1, 1))

	pub.Publish(ctx, models.AccountCreated{Account: models.Account{
		ID: "u1", Email: "u1@example.com", Role: "admin",
	}})
	pub.Publish(ctx, models.RoleChanged{ID: "u1", OldRole: "customer", NewRole: "admin"})

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(rp.Broker),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	var records []*kgo.Record
	for len(records) < 2 {
		fetches := consumer.PollFetches(ctx)
		require.NoError(t, fetches.Err())
		records = append(records, fetches.Records()...)
	}

	var created, changed events.Envelope
	require.NoError(t, json.Unmarshal(records[0].Value, &created))
	require.NoError(t, json.Unmarshal(records[1].Value, &changed))

	assert.Equal(t, "account_created", created.Type)
	assert.Equal(t, "u1", created.AccountID)
	assert.Equal(t, "admin", created.Role)
	assert.Equal(t, []byte("u1"), records[0].Key)

	assert.Equal(t, "account_role_changed", changed.Type)
	assert.Equal(t, "customer", changed.OldRole)
	assert.Equal(t, "admin", changed.NewRole)
	assert.NotEmpty(t, changed.ID)
	assert.NotEmpty(t, changed.OccurredAt)
}
