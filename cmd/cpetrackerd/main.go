package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/supercpe/cpe-tracker/internal/broker"
	"github.com/supercpe/cpe-tracker/internal/common"
	"github.com/supercpe/cpe-tracker/internal/export"
	"github.com/supercpe/cpe-tracker/internal/pipeline"
	"github.com/supercpe/cpe-tracker/internal/repository"
	"github.com/supercpe/cpe-tracker/internal/server"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pipeCfg := pipeline.DefaultConfig()
	pipeCfg.Validator.MaxCredits = decimal.NewFromFloat(cfg.Extraction.MaxCredits)
	pipeCfg.Validator.LookbackYears = cfg.Extraction.LookbackYears
	pipe := pipeline.New(pipeCfg, logger)

	builder := broker.NewBuilder(logger)
	brokerCtx := broker.Context{
		OrganizationID: cfg.Broker.OrganizationID,
		FormVersion:    cfg.Broker.FormVersion,
		ProviderName:   cfg.Broker.ProviderName,
		NASBASponsorID: cfg.Broker.NASBASponsorID,
	}

	var submissions repository.SubmissionRepository
	if cfg.Database.DSN != "" {
		pool, err := repository.Open(ctx, cfg.Database, logger)
		if err != nil {
			logger.Error("database open failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := repository.HealthCheck(ctx, pool, cfg.Database.DialTimeout, logger); err != nil {
			logger.Error("database health check failed", "error", err)
			os.Exit(1)
		}
		submissions = repository.NewSubmissionRepository(pool)
	} else {
		logger.Warn("DB_URL not set; running without submission history")
	}

	svc := server.NewService(logger, pipe, builder, brokerCtx, export.NewService(logger), submissions)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: svc.Router(),
	}

	go func() {
		logger.Info("http server listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown incomplete", "error", err)
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}
