package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"financeiro/internal/amqp"
	"financeiro/internal/core"
	"financeiro/internal/export"
	"financeiro/internal/services"
	"financeiro/internal/sheets"
)

// Snapshotter computes the exportable reports.
type Snapshotter interface {
	Snapshot(ctx context.Context, mode core.BalanceMode) (services.Snapshot, error)
}

// Config holds configuration for the export worker
type Config struct {
	// Interval between periodic exports (default: 15m)
	Interval time.Duration

	// Mode is the DFC balance mode used in the exported reports
	Mode core.BalanceMode
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Interval: 15 * time.Minute,
		Mode:     core.BalanceChained,
	}
}

// Stats describes the export history of a worker.
type Stats struct {
	Runs      int       `json:"runs"`
	Failures  int       `json:"failures"`
	LastRun   time.Time `json:"lastRun"`
	LastError string    `json:"lastError,omitempty"`
}

// ExportWorker writes report snapshots to every configured destination on
// a fixed interval and whenever a change message arrives.
type ExportWorker struct {
	reports Snapshotter
	writers []sheets.TableWriter
	config  Config

	// Lifecycle management
	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
	trigger chan struct{}
	stats   Stats
}

func NewExportWorker(reports Snapshotter, config Config, writers ...sheets.TableWriter) *ExportWorker {
	if config.Interval <= 0 {
		config.Interval = DefaultConfig().Interval
	}
	return &ExportWorker{
		reports: reports,
		writers: writers,
		config:  config,
		trigger: make(chan struct{}, 1),
	}
}

// Start begins the export loop. Returns an error if already running.
func (w *ExportWorker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("export worker is already running")
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.mu.Unlock()

	go w.runLoop(ctx)

	slog.InfoContext(ctx, "Export worker started",
		"interval", w.config.Interval,
		"destinations", len(w.writers))
	return nil
}

// Stop gracefully stops the worker and waits for the running export.
func (w *ExportWorker) Stop(ctx context.Context) error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = false
	stopCh, doneCh := w.stopCh, w.doneCh
	w.mu.Unlock()

	close(stopCh)

	select {
	case <-doneCh:
		slog.InfoContext(ctx, "Export worker stopped gracefully")
		return nil
	case <-ctx.Done():
		slog.WarnContext(ctx, "Export worker stop timed out")
		return ctx.Err()
	}
}

func (w *ExportWorker) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// Trigger schedules an export. Triggers arriving while one is pending
// collapse into it.
func (w *ExportWorker) Trigger() {
	select {
	case w.trigger <- struct{}{}:
	default:
	}
}

// HandleChange processes a change message from AMQP.
func (w *ExportWorker) HandleChange(ctx context.Context, msg *amqp.ChangeMessage) error {
	slog.InfoContext(ctx, "Processing change message",
		"entity", msg.Entity,
		"op", msg.Op,
		"id", msg.ID)
	w.Trigger()
	return nil
}

func (w *ExportWorker) runLoop(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	// Export immediately on startup
	w.exportLogged(ctx)

	for {
		select {
		case <-w.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.exportLogged(ctx)
		case <-w.trigger:
			w.exportLogged(ctx)
		}
	}
}

func (w *ExportWorker) exportLogged(ctx context.Context) {
	if err := w.ExportNow(ctx); err != nil {
		slog.ErrorContext(ctx, "Export failed", "error", err)
	}
}

// ExportNow builds a snapshot and writes it to every destination. A failing
// destination does not stop the others.
func (w *ExportWorker) ExportNow(ctx context.Context) error {
	start := time.Now()
	snap, err := w.reports.Snapshot(ctx, w.config.Mode)
	if err != nil {
		err = fmt.Errorf("build snapshot: %w", err)
		w.record(start, err)
		return err
	}
	tables := export.Tables(snap)

	var errs []error
	for _, dst := range w.writers {
		if err := dst.Write(ctx, tables); err != nil {
			slog.WarnContext(ctx, "Export destination failed",
				"destination", dst.Name(),
				"error", err)
			errs = append(errs, fmt.Errorf("%s: %w", dst.Name(), err))
		}
	}
	err = errors.Join(errs...)
	w.record(start, err)

	slog.InfoContext(ctx, "Export completed",
		"tabs", len(tables),
		"destinations", len(w.writers),
		"failed", len(errs),
		"duration", time.Since(start))
	return err
}

func (w *ExportWorker) record(at time.Time, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stats.Runs++
	w.stats.LastRun = at
	w.stats.LastError = ""
	if err != nil {
		w.stats.Failures++
		w.stats.LastError = err.Error()
	}
}

// Stats returns the export history
func (w *ExportWorker) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}
