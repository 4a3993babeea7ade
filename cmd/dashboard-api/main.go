package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Atharvakhamkar/Leeds-Hackathon-2026/internal/api"
	"github.com/Atharvakhamkar/Leeds-Hackathon-2026/internal/config"
	"github.com/Atharvakhamkar/Leeds-Hackathon-2026/internal/dashboard"
	"github.com/Atharvakhamkar/Leeds-Hackathon-2026/internal/dataset"
	"github.com/Atharvakhamkar/Leeds-Hackathon-2026/internal/logging"
	"github.com/Atharvakhamkar/Leeds-Hackathon-2026/internal/override"
	"github.com/Atharvakhamkar/Leeds-Hackathon-2026/internal/storage"
)

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("dashboard-api logger error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := api.Options{AllowedOrigins: cfg.CORSAllowedOrigins, Logger: logger}
	if cfg.DatabaseURL != "" {
		dbPool, err := storage.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("dashboard-api database error", zap.Error(err))
		}
		defer dbPool.Close()

		if _, err := storage.RunMigrations(ctx, dbPool); err != nil {
			logger.Fatal("dashboard-api migration error", zap.Error(err))
		}
		opts.Exceptions = storage.NewRepository(dbPool)
	}

	svc := dashboard.NewService(dataset.NewCSVOrders(cfg.OrdersPath), override.NewStore(), logger)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewRouter(svc, opts),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("dashboard-api listening",
		zap.String("addr", cfg.HTTPAddr),
		zap.String("orders", cfg.OrdersPath),
		zap.Bool("exceptions_enabled", opts.Exceptions != nil))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("dashboard-api server error", zap.Error(err))
	}
}
