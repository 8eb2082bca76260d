// Command automation runs the background processors without the HTTP API.
// Useful for deployments that scale the capture API and the automation
// worker independently.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"realty_leads_backend/internal/automation"
	"realty_leads_backend/internal/email"
	leadrepo "realty_leads_backend/internal/leads/repository"
	"realty_leads_backend/internal/notification"
	"realty_leads_backend/internal/sms"
	"realty_leads_backend/internal/social"
	"realty_leads_backend/platform/config"
	"realty_leads_backend/platform/db"
	"realty_leads_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting automation worker", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	notifier := notification.NewService(email.NewSender(cfg), sms.NewClient(cfg, log), log)
	engine := automation.NewEngine(leadrepo.New(pool), notifier, social.NewClient(cfg, log), log)

	engine.Start(ctx)
	<-ctx.Done()
	log.Info("shutdown signal received")
	engine.Stop()
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
