package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"financeiro/internal/amqp"
	"financeiro/internal/ports/memory"
	"financeiro/internal/seed"
	"financeiro/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger  *slog.Logger
	dataset func() seed.Dataset
}

// NewFactory creates a new backend factory. Fresh stores are populated
// from the built-in demonstration dataset.
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger:  logger,
		dataset: seed.Default,
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		result *BackendResult
		err    error
	)
	switch config.Type {
	case SQLiteBackend:
		result, err = f.createSQLiteBackend(ctx, config)
	case MemoryBackend:
		result, err = f.createMemoryBackend()
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
	if err != nil {
		return nil, err
	}

	result.Publisher = f.connectAMQP(config)
	storeCleanup := result.Cleanup
	result.Cleanup = func() error {
		var errs []error
		if result.Publisher != nil {
			errs = append(errs, result.Publisher.Close())
		}
		if storeCleanup != nil {
			errs = append(errs, storeCleanup())
		}
		return errors.Join(errs...)
	}
	return result, nil
}

func (f *DefaultFactory) createSQLiteBackend(ctx context.Context, config Config) (*BackendResult, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	seeded, err := repo.SeedIfEmpty(ctx, f.dataset())
	if err != nil {
		repo.Close()
		return nil, fmt.Errorf("failed to seed SQLite repository: %w", err)
	}

	f.logger.Info("Initialized SQLite backend",
		"db_path", config.SQLiteDBPath,
		"seeded", seeded)

	return &BackendResult{
		Backend: repo,
		Cleanup: repo.Close,
	}, nil
}

func (f *DefaultFactory) createMemoryBackend() (*BackendResult, error) {
	store, err := memory.New(f.dataset())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize memory backend: %w", err)
	}

	f.logger.Info("Initialized memory backend")

	return &BackendResult{Backend: store}, nil
}

// connectAMQP returns nil when AMQP is not configured or unreachable;
// services then skip change notifications.
func (f *DefaultFactory) connectAMQP(config Config) *amqp.Client {
	if config.AMQPURL == "" {
		return nil
	}
	client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
	if err != nil {
		f.logger.Warn("Failed to initialize AMQP client, continuing without change notifications", "error", err)
		return nil
	}
	f.logger.Info("Initialized AMQP client",
		"exchange", config.AMQPExchange,
		"queue", config.AMQPQueue)
	return client
}
