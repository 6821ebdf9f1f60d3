package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"clickup_sync/internal/config"
	"clickup_sync/internal/mapper"
	"clickup_sync/internal/publisher"
	"clickup_sync/internal/scheduler"
	"clickup_sync/internal/service"
	"clickup_sync/internal/source/clickup"
	"clickup_sync/internal/storage/postgres"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// Setup logger
	logger := setupLogger("info", "json")

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "error", err)
		return 1
	}

	logger = setupLogger(cfg.LogLevel, cfg.LogFormat)

	clickupSource := clickup.New(clickup.Config{
		BaseURL:    cfg.ClickUp.BaseURL,
		Token:      cfg.ClickUp.Token,
		TeamID:     cfg.ClickUp.TeamID,
		HTTPClient: &http.Client{Timeout: cfg.ClickUp.Timeout},
	}, logger)

	sink := postgres.NewSink(postgres.SinkConfig{
		DSN:    cfg.Database.DSN(),
		Schema: cfg.Database.Schema,
	}, logger)

	// Run reports are optional
	var pub service.Publisher
	if cfg.RabbitMQ.URL != "" {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			return 1
		}
		defer rabbitMQ.Close()
		pub = rabbitMQ
	}

	syncService := service.NewSyncService(
		clickupSource,
		mapper.New(cfg.Sync.OrgID),
		sink,
		pub,
		logger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	if cfg.Sync.Interval > 0 {
		logger.Info("starting clickup syncer",
			"source", clickupSource.Name(),
			"interval", cfg.Sync.Interval,
		)
		sched := scheduler.NewScheduler(syncService, cfg.Sync.Interval, logger)
		if err := sched.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("scheduler error", "error", err)
			return 1
		}
		return 0
	}

	printBanner(os.Stdout)

	stats, err := syncService.Sync(ctx)
	if stats != nil {
		printSummary(os.Stdout, stats)
	}
	if err != nil {
		logger.Error("sync failed", "error", err)
		printFailure(os.Stderr, err)
		return 1
	}

	printSuccess(os.Stdout)
	return 0
}

func setupLogger(level, format string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	var handler slog.Handler
	if format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}
