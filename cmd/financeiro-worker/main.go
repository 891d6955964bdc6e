package main

import (
	"context"
	"errors"
	"time"

	"financeiro/internal/cli"
	"financeiro/internal/export"
	applog "financeiro/internal/log"
	"financeiro/internal/services"
	"financeiro/internal/sheets"
	gsheet "financeiro/internal/sheets/google"
	"financeiro/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentWorker)
	logger.Info("Starting financeiro-worker")
	cfg := cli.LoadAndValidateConfig(logger)

	res := cli.InitBackend(context.Background(), logger, cfg)
	reports := services.NewReportService(res.Backend, res.Backend, res.Backend, cfg.BalanceMode())

	writers := []sheets.TableWriter{export.NewFileSink(cfg.ExportDir)}
	if cfg.SheetsEnabled() {
		client, err := gsheet.New(context.Background(), cfg.GoogleSpreadsheetID, gsheet.Credentials{
			JSON: cfg.GoogleServiceAccountJSON,
			File: cfg.GoogleServiceAccountFile,
		})
		if err != nil {
			// the file export still runs
			logger.Error("Failed to initialize Google Sheets client", "error", err)
		} else {
			writers = append(writers, client)
			logger.Info("Google Sheets export enabled", "spreadsheet_id", cfg.GoogleSpreadsheetID)
		}
	} else {
		logger.Info("Google Sheets disabled - no GOOGLE_SPREADSHEET_ID provided")
	}

	exportWorker := worker.NewExportWorker(reports, worker.Config{
		Interval: cfg.ExportInterval,
		Mode:     cfg.BalanceMode(),
	}, writers...)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(ctx context.Context) {
		if err := exportWorker.Stop(ctx); err != nil {
			logger.Error("Export worker stop error", "error", err)
		}
		if err := res.Cleanup(); err != nil {
			logger.Error("Backend cleanup error", "error", err)
		}
	})

	if err := exportWorker.Start(ctx); err != nil {
		cli.Fatal("Failed to start export worker", err)
	}
	logger.Info("Exporting reports", "dir", cfg.ExportDir, "balance_mode", cfg.DFCBalanceMode)

	if res.Publisher != nil {
		go func() {
			if err := res.Publisher.ConsumeChanges(ctx, exportWorker.HandleChange); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("Change consumption failed", "error", err)
			}
		}()
	} else {
		logger.Info("Skipping AMQP change consumption - no AMQP_URL provided")
	}

	cli.WaitForShutdown(ctx, done)
	stats := exportWorker.Stats()
	logger.Info("Worker stopped", "runs", stats.Runs, "failures", stats.Failures)
}
