package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// Without Redis the limiter must fail open and pass every request through.
func TestRateLimiterFailsOpenWithoutRedis(t *testing.T) {
	rl := NewRateLimiter(nil, 1, slog.New(slog.DiscardHandler), nil)
	handler := rl.Handler(okHandler())

	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestClientIPPrefersForwardedHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	assert.Equal(t, "10.0.0.1", clientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	assert.Equal(t, "203.0.113.9", clientIP(req))

	// a multi-hop header keys on the originating client, not the whole chain
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.2, 172.16.0.1")
	assert.Equal(t, "203.0.113.9", clientIP(req))
}

// expireFailHook answers Incr in-process and refuses Expire, so the expiry
// failure path can be exercised without a server.
type expireFailHook struct{}

func (expireFailHook) DialHook(next redis.DialHook) redis.DialHook { return next }

func (expireFailHook) ProcessHook(redis.ProcessHook) redis.ProcessHook {
	return func(_ context.Context, cmd redis.Cmder) error {
		if c, ok := cmd.(*redis.IntCmd); ok {
			c.SetVal(1)
			return nil
		}
		err := errors.New("expire refused")
		cmd.SetErr(err)
		return err
	}
}

func (expireFailHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

// A failed window expiry must not break the request, but it has to surface
// in the log so a leaked key is visible.
func TestRateLimiterLogsFailedExpire(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	client.AddHook(expireFailHook{})

	var buf bytes.Buffer
	rl := NewRateLimiter(client, 5, slog.New(slog.NewTextHandler(&buf, nil)), nil)

	rec := httptest.NewRecorder()
	rl.Handler(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, buf.String(), "rate limit window expire failed")
}
