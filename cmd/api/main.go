package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medsaver/internal/app"
	"medsaver/internal/config"
	"medsaver/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {

	// ───────────────────────── CONFIG ─────────────────────────
	cfg, err := config.Load()
	if err != nil {
		// logger is not configured yet
		logger.Must("development", "info").Fatal("invalid configuration", zap.Error(err))
	}

	log := logger.Must(cfg.Env, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ───────────────────────── WIRING ─────────────────────────
	a, err := app.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal("startup failed", zap.Error(err))
	}
	defer a.Close()

	// ───────────────────────── REMINDER WORKER ─────────────────────────
	worker, err := a.Worker()
	if err != nil {
		log.Fatal("reminder worker", zap.Error(err))
	}

	// ───────────────────────── START ─────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if err := serve(ctx, srv, worker, log); err != nil {
		log.Error("server failed", zap.Error(err))
		a.Close()
		_ = log.Sync()
		os.Exit(1)
	}
}

type runner interface {
	Run(ctx context.Context)
}

// serve runs the HTTP server and the reminder worker until ctx is cancelled
// or either of them fails, then shuts both down.
func serve(ctx context.Context, srv *http.Server, worker runner, log *zap.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		worker.Run(gctx)
		return nil
	})

	g.Go(func() error {
		log.Info("API running", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
