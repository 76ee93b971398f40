package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"budzet/internal/amqp"
	"budzet/internal/backend"
	"budzet/internal/cli"
	apphttp "budzet/internal/http"
	"budzet/internal/log"
	"budzet/internal/services"

	"golang.org/x/crypto/bcrypt"
)

const sessionPurgeInterval = 15 * time.Minute

func main() {
	os.Exit(run())
}

// run returns the process exit code. Resources are released by its defers
// before main exits.
func run() int {
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig()
	logger := cli.SetupLogger(cfg.LogLevel, log.ComponentApp)

	ctx := context.Background()
	store, err := backend.NewFactory(logger.WithComponent(log.ComponentBackend).Slog()).
		CreateBackend(ctx, cfg.BackendConfig())
	if err != nil {
		logger.Error("Failed to initialize backend", "error", err, "backend", cfg.DataBackend)
		return 1
	}
	defer store.Close()

	// A nil interface, not a nil *amqp.Client, disables publication.
	var events services.EventPublisher
	if cfg.AMQPEnabled() {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			return 1
		}
		defer client.Close()
		events = client
		logger.Info("Publishing transaction events", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	auth := services.NewAuthService(store, services.AuthConfig{
		SessionTTL: cfg.SessionTTL,
		BcryptCost: bcrypt.DefaultCost,
	}, logger)
	transactions := services.NewTransactionService(store, events, logger)

	srv, err := apphttp.NewServer(cfg.Addr(), apphttp.Deps{
		Auth:           auth,
		Transactions:   transactions,
		Store:          store,
		Logger:         logger,
		LoginRateLimit: cfg.LoginRateLimit,
		CookieSecure:   cfg.CookieSecure,
	})
	if err != nil {
		logger.Error("Failed to create HTTP server", "error", err)
		return 1
	}

	logger.Info("Starting budzet server",
		log.FieldOperation, log.OpStartup,
		"addr", cfg.Addr(),
		"backend", cfg.DataBackend)

	err = cli.Run(logger,
		func(ctx context.Context) error {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
		func(ctx context.Context) error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
		func(ctx context.Context) error {
			ticker := time.NewTicker(sessionPurgeInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					if _, err := auth.PurgeExpiredSessions(ctx); err != nil {
						logger.Warn("Session purge failed", "error", err)
					}
				}
			}
		},
	)
	if err != nil {
		logger.Error("Server error", "error", err)
		return 1
	}
	return 0
}
