package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Atharvakhamkar/Leeds-Hackathon-2026/internal/config"
	"github.com/Atharvakhamkar/Leeds-Hackathon-2026/internal/contracts"
	"github.com/Atharvakhamkar/Leeds-Hackathon-2026/internal/dataset"
	"github.com/Atharvakhamkar/Leeds-Hackathon-2026/internal/logging"
	"github.com/Atharvakhamkar/Leeds-Hackathon-2026/internal/model"
	"github.com/Atharvakhamkar/Leeds-Hackathon-2026/internal/mq"
	"github.com/Atharvakhamkar/Leeds-Hackathon-2026/internal/risk"
	"github.com/Atharvakhamkar/Leeds-Hackathon-2026/internal/scan"
	"github.com/Atharvakhamkar/Leeds-Hackathon-2026/internal/signals"
	"github.com/Atharvakhamkar/Leeds-Hackathon-2026/internal/sink"
	"github.com/Atharvakhamkar/Leeds-Hackathon-2026/internal/storage"
)

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("risk-scan logger error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		if errors.Is(err, dataset.ErrMissingArtifact) {
			fmt.Fprintf(os.Stderr, "FATAL_ERROR: Required files (model or Excel manifest) missing: %v\n", err)
			os.Exit(1)
		}
		logger.Fatal("risk-scan error", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	if err := dataset.RequireArtifacts(cfg.ModelPath, cfg.ManifestPath); err != nil {
		return err
	}

	delayModel, err := model.Load(cfg.ModelPath)
	if err != nil {
		return err
	}
	manifest, err := dataset.LoadManifest(cfg.ManifestPath)
	if err != nil {
		return err
	}

	client := signals.NewClient(signals.Options{
		WeatherBaseURL: cfg.WeatherBaseURL,
		NewsBaseURL:    cfg.NewsBaseURL,
		WeatherAPIKey:  cfg.WeatherAPIKey,
		NewsAPIKey:     cfg.NewsAPIKey,
		Timeout:        cfg.SignalTimeout,
		Retries:        cfg.SignalRetries,
		Logger:         logger,
	})
	engine := risk.NewEngine(delayModel, client, cfg.NewsQuery, logger)

	fanout := sink.NewFanout(sink.NewFileSink(cfg.ExceptionLogPath, cfg.SinkRetries, logger), logger)

	if len(cfg.KafkaBrokers) > 0 {
		producer := mq.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer producer.Close()
		fanout.AddMirror("kafka", sink.NewPublisherSink(producer))
	}

	if cfg.DatabaseURL != "" {
		dbPool, err := storage.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer dbPool.Close()

		if _, err := storage.RunMigrations(ctx, dbPool); err != nil {
			return err
		}
		fanout.AddMirror("postgres", sink.NewStoreSink(storage.NewRepository(dbPool)))
	}

	logger.Info("risk-scan starting",
		zap.String("manifest", cfg.ManifestPath),
		zap.Int("rows", len(manifest)),
		zap.String("exception_log", cfg.ExceptionLogPath))

	summary, err := scan.NewRunner(engine, fanout, os.Stdout, logger).Run(ctx, manifest)
	if err != nil {
		return err
	}

	logger.Info("risk-scan complete",
		zap.String("run_id", summary.RunID),
		zap.Int("scanned", summary.Scanned),
		zap.Int("failed", summary.Failed),
		zap.Int("critical", summary.ByTier[contracts.TierCritical]),
		zap.Int("elevated", summary.ByTier[contracts.TierElevated]))
	return nil
}
