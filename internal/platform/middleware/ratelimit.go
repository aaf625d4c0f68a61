package middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"usersvc/internal/platform/metrics"
)

// RateLimiter is a fixed-window per-IP limiter backed by Redis. When Redis
// is unavailable (or not configured) it fails open: availability of the
// account API wins over strict limiting.
type RateLimiter struct {
	client    *redis.Client
	perMinute int
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

func NewRateLimiter(client *redis.Client, perMinute int, logger *slog.Logger, m *metrics.Metrics) *RateLimiter {
	return &RateLimiter{
		client:    client,
		perMinute: perMinute,
		logger:    logger,
		metrics:   m,
	}
}

// Handler wraps next with the rate limit check.
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.client == nil || rl.perMinute <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		ip := clientIP(r)
		window := time.Now().Unix() / 60
		key := fmt.Sprintf("rl:%s:%d", ip, window)

		count, err := rl.client.Incr(r.Context(), key).Result()
		if err != nil {
			// fail open
			rl.logger.WarnContext(r.Context(), "rate limit check failed", "error", err)
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			if err := rl.client.Expire(r.Context(), key, time.Minute).Err(); err != nil {
				rl.logger.WarnContext(r.Context(), "rate limit window expire failed",
					"key", key, "error", err)
			}
		}

		if count > int64(rl.perMinute) {
			rl.metrics.IncRateLimitedRequests()
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"code":    http.StatusTooManyRequests,
				"message": "rate limit exceeded",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	// Behind several proxies X-Forwarded-For is a list; the client is the
	// first entry.
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
