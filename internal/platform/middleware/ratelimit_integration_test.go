//go:build integration

package middleware_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"usersvc/internal/platform/middleware"
	"usersvc/pkg/testutil/containers"
)

// TestRateLimiterEnforcesWindow verifies the fixed window against a real
// Redis: requests beyond the per-minute budget get 429, distinct client IPs
// get their own budgets.
func TestRateLimiterEnforcesWindow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	rc := containers.NewRedisContainer(t)
	defer func() {
		_ = rc.Client.Close()
		_ = rc.Container.Terminate(context.Background())
	}()

	const perMinute = 3
	rl := middleware.NewRateLimiter(rc.Client, perMinute, slog.New(slog.DiscardHandler), nil)
	handler := rl.Handler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", ip)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	require.NoError(t, rc.FlushAll(context.Background()))

	for i := 0; i < perMinute; i++ {
		assert.Equal(t, http.StatusOK, do("198.51.100.1"), "request %d within budget", i+1)
	}
	assert.Equal(t, http.StatusTooManyRequests, do("198.51.100.1"))

	// a different client still has its own budget
	assert.Equal(t, http.StatusOK, do("198.51.100.2"))
}
