package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures everything the server needs from the environment so main
// stays lean.
type Config struct {
	Addr        string
	DatabaseURL string
	RedisURL    string

	// Notifications is the feature flag gating the lifecycle dispatcher.
	// When false the dispatcher is never registered and lifecycle behavior
	// is unaffected.
	Notifications bool

	KafkaBrokers []string
	KafkaTopic   string

	SMTPHost          string
	SMTPPort          int
	SMTPUsername      string
	SMTPPassword      string
	SMTPFrom          string
	SMTPSubjectPrefix string

	RateLimitPerMinute int
	ShutdownTimeout    time.Duration
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	cfg := Config{
		Addr:               envOr("USERSVC_ADDR", ":8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		RedisURL:           os.Getenv("REDIS_URL"),
		Notifications:      os.Getenv("FEATURES_NOTIFICATIONS") == "true",
		KafkaTopic:         envOr("KAFKA_TOPIC", "account.lifecycle"),
		SMTPHost:           os.Getenv("SMTP_HOST"),
		SMTPPort:           envIntOr("SMTP_PORT", 587),
		SMTPUsername:       os.Getenv("SMTP_USERNAME"),
		SMTPPassword:       os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:           envOr("SMTP_FROM", "no-reply@easymarket.com"),
		SMTPSubjectPrefix:  envOr("SMTP_SUBJECT_PREFIX", "[EasyMarket] "),
		RateLimitPerMinute: envIntOr("RATE_LIMIT_PER_MINUTE", 300),
		ShutdownTimeout:    10 * time.Second,
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
