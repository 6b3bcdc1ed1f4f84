package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetup_AllDisabled(t *testing.T) {
	ctx := context.Background()
	p, err := Setup(ctx, Config{ServiceName: "taxrenew"}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, p.Meter.IsEnabled())
	assert.False(t, p.Tracer.IsEnabled())
	assert.False(t, p.Logs.IsEnabled())
	assert.False(t, p.Profiler.IsEnabled())
	assert.NotNil(t, p.Meter.Meter("test"))

	base := zap.NewNop()
	assert.Same(t, base, p.Logs.Bridge(base, zapcore.InfoLevel))

	assert.NoError(t, p.Shutdown(ctx))
}

func TestProvidersShutdown_SkipsNil(t *testing.T) {
	assert.NoError(t, (&Providers{}).Shutdown(context.Background()))
}

func TestShutdownProvider(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := zap.New(core)

	err := shutdownProvider(context.Background(), "meter", log, func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		assert.True(t, ok, "shutdown must run under a deadline")
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("OpenTelemetry meter provider shut down").Len())

	boom := errors.New("collector gone")
	err = shutdownProvider(context.Background(), "tracer", log, func(context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, logs.FilterMessage("Error shutting down tracer provider").Len())
}

func TestNewProfiler(t *testing.T) {
	t.Run("disabled is a no-op", func(t *testing.T) {
		p, err := NewProfiler(Config{ServiceName: "taxrenew"}, zap.NewNop())
		require.NoError(t, err)
		assert.False(t, p.IsEnabled())
		assert.NoError(t, p.Shutdown(context.Background()))
		assert.NoError(t, p.Shutdown(context.Background()))
	})

	t.Run("requires a server address", func(t *testing.T) {
		_, err := NewProfiler(Config{ServiceName: "taxrenew", ProfilingEnabled: true}, zap.NewNop())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "server address")
	})

	t.Run("requires a service name", func(t *testing.T) {
		_, err := NewProfiler(Config{ProfilingEnabled: true, ProfilingServerAddress: "http://localhost:4040"}, zap.NewNop())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "service name")
	})
}

func TestSetup_ProfilerErrorShutsDownStartedPipelines(t *testing.T) {
	_, err := Setup(context.Background(), Config{ServiceName: "taxrenew", ProfilingEnabled: true}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server address")
}
