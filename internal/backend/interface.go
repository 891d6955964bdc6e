package backend

import (
	"context"

	"financeiro/internal/amqp"
	"financeiro/internal/ports"
)

// Backend is everything the services need from a store
type Backend interface {
	ports.ReportSource
	ports.RegistryStore
	ports.LedgerStore
	ports.HealthChecker
}

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult contains the store, the optional change publisher and a
// cleanup function releasing both.
type BackendResult struct {
	Backend   Backend
	Publisher *amqp.Client
	Cleanup   CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	// SQLite specific
	SQLiteDBPath string

	// AMQP is optional for every backend
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// BackendType represents the type of backend
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

func (bt BackendType) String() string {
	return string(bt)
}

func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
