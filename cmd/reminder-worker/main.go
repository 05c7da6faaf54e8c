package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"medsaver/internal/app"
	"medsaver/internal/config"
	"medsaver/internal/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Must("development", "info").Fatal("invalid configuration", zap.Error(err))
	}

	log := logger.Must(cfg.Env, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("reminder worker starting",
		zap.String("interval", cfg.Reminders.Interval),
		zap.String("timezone", cfg.Reminders.Timezone),
	)

	a, err := app.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal("startup failed", zap.Error(err))
	}
	defer a.Close()

	worker, err := a.Worker()
	if err != nil {
		log.Fatal("reminder worker", zap.Error(err))
	}

	// Runs until SIGINT/SIGTERM.
	worker.Run(ctx)
}
