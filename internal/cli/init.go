// Package cli provides common CLI initialization utilities shared by
// cmd/financeiro and cmd/financeiro-worker.
package cli

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"financeiro/internal/backend"
	"financeiro/internal/cache"
	"financeiro/internal/config"
	applog "financeiro/internal/log"
)

// SetupLogger builds the application logger from LOG_LEVEL and LOG_FORMAT
// and sets it as the default logger.
func SetupLogger(component string) *applog.Logger {
	cfg := applog.DefaultConfig()
	cfg.Level = applog.ParseLevel(os.Getenv("LOG_LEVEL"))
	if os.Getenv("LOG_FORMAT") == "json" {
		cfg.Format = "json"
	}
	cfg.Component = component
	logger := applog.New(cfg)
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// InitBackend creates the configured store and the optional AMQP client.
// Exits the process on failure.
func InitBackend(ctx context.Context, logger *applog.Logger, cfg *config.Config) *backend.BackendResult {
	backendConfig, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", "error", err)
		os.Exit(1)
	}
	result, err := backend.NewFactory(logger.Logger).CreateBackend(ctx, backendConfig)
	if err != nil {
		logger.Error("Failed to initialize backend", "error", err, "backend", backendConfig.Type)
		os.Exit(1)
	}
	return result
}

// InitReportCache returns the shared redis report cache, or nil when
// REDIS_ADDR is unset or redis is unreachable. The returned close function
// is never nil.
func InitReportCache(ctx context.Context, logger *applog.Logger, cfg *config.Config) (*cache.RedisCache[json.RawMessage], func()) {
	if cfg.RedisAddr == "" {
		return nil, func() {}
	}
	client, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Warn("Redis unavailable, using in-process report cache only", "error", err)
		return nil, func() {}
	}
	logger.Info("Redis report cache connected", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
	return cache.NewRedisCache[json.RawMessage](client, "financeiro:reports:", cfg.CacheTTL), closeRedis(logger, client)
}

func closeRedis(logger *applog.Logger, client *redis.Client) func() {
	return func() {
		if err := client.Close(); err != nil {
			logger.Warn("Failed to close redis client", "error", err)
		}
	}
}

// GracefulShutdown sets up signal handling for graceful shutdown.
// Returns a context that will be cancelled on shutdown signals,
// and a channel that signals when shutdown is complete.
func GracefulShutdown(logger *applog.Logger, timeout time.Duration, cleanup func(ctx context.Context)) (context.Context, <-chan struct{}) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
		defer shutdownCancel()

		if cleanup != nil {
			cleanup(shutdownCtx)
		}
		cancel()

		if shutdownCtx.Err() != nil {
			logger.Warn("Shutdown timeout reached")
		} else {
			logger.Info("Shutdown complete")
		}
		close(done)
	}()

	return ctx, done
}

// WaitForShutdown blocks until the context is cancelled.
func WaitForShutdown(ctx context.Context, done <-chan struct{}) {
	<-ctx.Done()
	<-done
}

// Fatal logs err and exits.
func Fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
