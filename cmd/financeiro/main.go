package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"financeiro/internal/cli"
	apphttp "financeiro/internal/http"
	applog "financeiro/internal/log"
	"financeiro/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	ctx := context.Background()
	res := cli.InitBackend(ctx, logger, cfg)
	remote, closeRemote := cli.InitReportCache(ctx, logger, cfg)

	srv := apphttp.NewServer(apphttp.Config{
		Addr:               ":" + cfg.Port,
		ReportTimeout:      cfg.ReportTimeout,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		BalanceMode:        cfg.BalanceMode(),
		CacheSize:          cfg.CacheSize,
		CacheTTL:           cfg.CacheTTL,
		RemoteCache:        remote,
		Logger:             logger.WithComponent(applog.ComponentHTTP),
	}, res.Backend, services.FromAMQP(res.Publisher))

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 2 * cfg.ReportTimeout
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(ctx context.Context) {
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		closeRemote()
		if err := res.Cleanup(); err != nil {
			logger.Error("Backend cleanup error", "error", err)
		}
	})

	logger.Info("Starting financeiro server",
		"port", cfg.Port,
		"backend", cfg.DataBackend,
		"balance_mode", cfg.DFCBalanceMode,
		"amqp", res.Publisher != nil,
		"redis", remote != nil,
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
