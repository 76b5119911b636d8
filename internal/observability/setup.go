package observability

import (
	"context"
	"errors"
	"fmt"
)

// Options selects which OTel pipelines Init starts.
type Options struct {
	// ExportLogs tees Logger into the OTLP log pipeline.
	ExportLogs bool
	// DomainMetrics registers application instruments once the meter
	// provider is installed.
	DomainMetrics []func() error
}

// Init starts logging, tracing and metrics. The returned shutdown flushes
// every started provider in reverse order, even when Init fails halfway.
func Init(ctx context.Context, opts Options) (func(context.Context) error, error) {
	var shutdowns []func(context.Context) error

	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		SyncLogger()
		return errors.Join(errs...)
	}

	if err := InitLogger(); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	traceShutdown, err := InitTracing(ctx)
	if err != nil {
		return shutdown, fmt.Errorf("init tracing: %w", err)
	}
	shutdowns = append(shutdowns, traceShutdown)

	metricShutdown, err := InitMetrics(ctx)
	if err != nil {
		return shutdown, fmt.Errorf("init metrics: %w", err)
	}
	shutdowns = append(shutdowns, metricShutdown)

	for _, register := range opts.DomainMetrics {
		if err := register(); err != nil {
			return shutdown, fmt.Errorf("init domain metrics: %w", err)
		}
	}

	if opts.ExportLogs {
		logShutdown, err := InitLogging(ctx)
		if err != nil {
			return shutdown, fmt.Errorf("init log export: %w", err)
		}
		shutdowns = append(shutdowns, logShutdown)
	}

	return shutdown, nil
}
