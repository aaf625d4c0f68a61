// Command server runs the account lifecycle service: account CRUD with
// soft-delete, ownership-scoped addresses and payment methods, admin
// notifications behind a feature flag, and optional Kafka lifecycle events.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"usersvc/internal/account/handler"
	accountservice "usersvc/internal/account/service"
	accountstore "usersvc/internal/account/store"
	"usersvc/internal/address"
	"usersvc/internal/events"
	httptransport "usersvc/internal/http"
	"usersvc/internal/notify"
	"usersvc/internal/payment"
	"usersvc/internal/platform/config"
	"usersvc/internal/platform/httpserver"
	"usersvc/internal/platform/logger"
	"usersvc/internal/platform/metrics"
	"usersvc/internal/platform/middleware"
	"usersvc/internal/platform/postgres"
	"usersvc/internal/platform/redis"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	} else {
		log.Warn("DATABASE_URL not set, using in-memory stores")
	}

	redisClient, err := redis.New(cfg.RedisURL)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	m := metrics.New()
	opts := []accountservice.Option{accountservice.WithMetrics(m)}

	var publisher *events.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err = events.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, log)
		if err != nil {
			return err
		}
		defer publisher.Close()
		if err := publisher.EnsureTopic(ctx, 3, 1); err != nil {
			return err
		}
		opts = append(opts, accountservice.WithObserver(publisher))
	}

	accounts, addresses, payments := buildStores(db)
	svc := accountservice.NewAccountService(accounts, log, opts...)
	defer svc.Close()

	if cfg.Notifications {
		svc.Attach(notify.NewDispatcher(svc, buildSink(cfg, log), log, m))
		log.Info("admin notifications enabled")
	}

	addressSvc := address.NewService(addresses)
	paymentSvc := payment.NewService(payments, svc.Registry().Exists)

	var limiter *middleware.RateLimiter
	if redisClient != nil {
		limiter = middleware.NewRateLimiter(redisClient.Client, cfg.RateLimitPerMinute, log, m)
	}

	health := map[string]httptransport.Health{}
	if db != nil {
		health["postgres"] = db.Ping
	}
	if redisClient != nil {
		health["redis"] = func() error { return redisClient.Health(context.Background()) }
	}

	router := httptransport.NewRouter(limiter, health,
		handler.New(svc),
		address.NewHandler(addressSvc),
		payment.NewHandler(paymentSvc),
	)
	srv := httpserver.New(cfg.Addr, router)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// buildStores returns the postgres stores when a database is configured and
// the in-memory ones otherwise.
func buildStores(db *sql.DB) (accountstore.AccountStore, address.Store, payment.Store) {
	if db != nil {
		return accountstore.NewPostgres(db), address.NewPostgres(db), payment.NewPostgres(db)
	}

	accounts := accountstore.NewInMemory()
	registry := accountservice.NewIdentityRegistry(accounts)
	return accounts, address.NewInMemory(registry.Exists), payment.NewInMemory()
}

// buildSink delivers over SMTP when a relay is configured, otherwise logs.
func buildSink(cfg config.Config, log *slog.Logger) notify.Sink {
	if cfg.SMTPHost == "" {
		return notify.NewLogSink(log)
	}
	return notify.NewSMTPSink(notify.SMTPConfig{
		Host:          cfg.SMTPHost,
		Port:          cfg.SMTPPort,
		Username:      cfg.SMTPUsername,
		Password:      cfg.SMTPPassword,
		From:          cfg.SMTPFrom,
		SubjectPrefix: cfg.SMTPSubjectPrefix,
	})
}
