package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripcast/tripcast/internal/telemetry"
)

func TestInit_Disabled(t *testing.T) {
	ctx := context.Background()

	provider, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    "tripcast-test",
		ServiceVersion: "1.0.0",
		Environment:    "test",
		OTLPEndpoint:   "localhost:4317",
		Enabled:        false,
	})

	require.NoError(t, err)
	assert.NotNil(t, provider)
	assert.NotNil(t, provider.Tracer)
	assert.NotNil(t, provider.Meter)

	// Disabled telemetry carries no SDK providers to shut down.
	assert.Nil(t, provider.TracerProvider)
	assert.Nil(t, provider.MeterProvider)

	assert.NoError(t, provider.Shutdown(ctx))
}

func TestProvider_Shutdown_NilProviders(t *testing.T) {
	provider := &telemetry.Provider{}
	assert.NoError(t, provider.Shutdown(context.Background()))
}

func TestTracer_ReturnsGlobalTracer(t *testing.T) {
	assert.NotNil(t, telemetry.Tracer("test-tracer"))
}

func TestMeter_ReturnsGlobalMeter(t *testing.T) {
	assert.NotNil(t, telemetry.Meter("test-meter"))
}
