package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// providerShutdownTimeout bounds the final flush of each pipeline
const providerShutdownTimeout = 10 * time.Second

// Providers are the telemetry pipelines of one process
type Providers struct {
	Meter    *MeterProvider
	Tracer   *TracerProvider
	Logs     *LoggerProvider
	Profiler *Profiler
}

// Setup starts every pipeline cfg enables. If one fails the ones already
// started are shut down before the error is returned.
func Setup(ctx context.Context, cfg Config, logger *zap.Logger) (*Providers, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &Providers{}
	var err error
	if p.Logs, err = NewLoggerProvider(ctx, cfg, logger); err != nil {
		return nil, err
	}
	if p.Meter, err = NewMeterProvider(ctx, cfg, logger); err != nil {
		return nil, errors.Join(err, p.Shutdown(ctx))
	}
	if p.Tracer, err = NewTracerProvider(ctx, cfg, logger); err != nil {
		return nil, errors.Join(err, p.Shutdown(ctx))
	}
	if p.Profiler, err = NewProfiler(cfg, logger); err != nil {
		return nil, errors.Join(err, p.Shutdown(ctx))
	}
	return p, nil
}

// Shutdown flushes profiles, traces and metrics, then logs, so the shutdown
// of the others is still exported. Nil pipelines are skipped.
func (p *Providers) Shutdown(ctx context.Context) error {
	var errs []error
	if p.Profiler != nil {
		errs = append(errs, p.Profiler.Shutdown(ctx))
	}
	if p.Tracer != nil {
		errs = append(errs, p.Tracer.Shutdown(ctx))
	}
	if p.Meter != nil {
		errs = append(errs, p.Meter.Shutdown(ctx))
	}
	if p.Logs != nil {
		errs = append(errs, p.Logs.Shutdown(ctx))
	}
	return errors.Join(errs...)
}

// shutdownProvider runs one SDK shutdown under providerShutdownTimeout
func shutdownProvider(ctx context.Context, name string, logger *zap.Logger, shutdown func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, providerShutdownTimeout)
	defer cancel()

	if err := shutdown(ctx); err != nil {
		logger.Error("Error shutting down "+name+" provider", zap.Error(err))
		return fmt.Errorf("failed to shutdown %s provider: %w", name, err)
	}
	logger.Info("OpenTelemetry " + name + " provider shut down")
	return nil
}
