package instrumentation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		ServiceName:        "test-service",
		ServiceVersion:     "1.0.0",
		Enabled:            true,
		MetricsExporter:    ExporterPrometheus,
		TracingExporter:    ExporterNone,
		TraceSamplingRate:  0.1,
		MaxWorkspaceLabels: 10,
	}
}

func TestNewProvider_Disabled(t *testing.T) {
	ctx := context.Background()
	config := testConfig()
	config.Enabled = false

	provider, err := NewProvider(ctx, config)
	require.NoError(t, err)

	assert.False(t, provider.Enabled())
	assert.False(t, provider.PrometheusEnabled())
	require.NotNil(t, provider.Metrics())
	provider.Metrics().RecordSignal(ctx, "ticket", "Parex")
	assert.NotNil(t, provider.Tracer("test"))
	assert.NoError(t, provider.Push(ctx, nil))
	assert.NoError(t, provider.Shutdown(ctx))
}

func TestNewProvider_Prometheus(t *testing.T) {
	ctx := context.Background()

	provider, err := NewProvider(ctx, testConfig())
	require.NoError(t, err)
	defer func() { _ = provider.Shutdown(ctx) }()

	assert.True(t, provider.Enabled())
	assert.True(t, provider.PrometheusEnabled())

	m := provider.Metrics()
	require.NotNil(t, m)
	m.RecordMailFetch(ctx, SourceStatic, StatusSuccess, 8, 10*time.Millisecond)
	m.RecordReport(ctx, "daily-runway", StatusSuccess, time.Millisecond)

	_, span := provider.Tracer("test").Start(ctx, "test-span")
	span.End()
}

func TestNewProvider_Stdout(t *testing.T) {
	ctx := context.Background()
	config := testConfig()
	config.MetricsExporter = ExporterStdout
	config.TracingExporter = ExporterStdout

	provider, err := NewProvider(ctx, config)
	require.NoError(t, err)
	defer func() { _ = provider.Shutdown(ctx) }()

	assert.True(t, provider.Enabled())
	assert.False(t, provider.PrometheusEnabled())
}

func TestNewProvider_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "otlp metrics without endpoint", mutate: func(c *Config) { c.MetricsExporter = ExporterOTLP }},
		{name: "otlp tracing without endpoint", mutate: func(c *Config) { c.TracingExporter = ExporterOTLP }},
		{name: "unknown metrics exporter", mutate: func(c *Config) { c.MetricsExporter = "statsd" }},
		{name: "unknown tracing exporter", mutate: func(c *Config) { c.TracingExporter = "jaeger" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := testConfig()
			tt.mutate(&config)
			_, err := NewProvider(context.Background(), config)
			assert.Error(t, err)
		})
	}
}

func TestProvider_PushWithoutGateway(t *testing.T) {
	ctx := context.Background()

	provider, err := NewProvider(ctx, testConfig())
	require.NoError(t, err)
	defer func() { _ = provider.Shutdown(ctx) }()

	assert.NoError(t, provider.Push(ctx, map[string]string{"command": "daily"}))
}
