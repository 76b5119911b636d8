package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"calcpad/internal/calculator"
	"calcpad/internal/config"
	"calcpad/internal/observability"
	"calcpad/internal/server"
)

func main() {

	if err := config.LoadDotEnv(""); err != nil {
		panic(err)
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Logger, tracing, metrics
	shutdown, err := observability.Init(ctx, observability.Options{
		ExportLogs:    cfg.ExportLogs,
		DomainMetrics: []func() error{calculator.InitMetrics},
	})
	if shutdown != nil {
		defer shutdown(context.Background())
	}
	if err != nil {
		panic(err)
	}

	// Sessions
	store := calculator.NewStore(cfg.SessionIdleTimeout, calculator.CountKeyPress, logKeyPress)
	go store.RunSweeper(ctx, cfg.SessionSweepInterval, func(evicted int) {
		observability.Logger.Info("idle sessions evicted", zap.Int("evicted", evicted), zap.Int("active", store.Len()))
	})

	// Router
	router := server.NewRouter(calculator.NewHandler(store))

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	go func() {
		observability.Logger.Info("server started", zap.String("addr", cfg.Addr))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			observability.Logger.Error("server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	waitForShutdown(srv, cfg)
}

func waitForShutdown(srv *http.Server, cfg config.Config) {

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		observability.Logger.Error("server shutdown", zap.Error(err))
		return
	}
	observability.Logger.Info("server stopped")
}

// logKeyPress is the HTTP host's per-key feedback: a debug line per press.
func logKeyPress(ctx context.Context, k calculator.Key, v calculator.View) {
	observability.LoggerWithTrace(ctx).Debug("key pressed",
		zap.String("key", string(k)),
		zap.String("display", v.Display),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)
}
