package instrumentation

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"time"
)

// Exporter names accepted by METRICS_EXPORTER and TRACING_EXPORTER.
const (
	ExporterPrometheus = "prometheus"
	ExporterOTLP       = "otlp"
	ExporterStdout     = "stdout"
	ExporterNone       = "none"
)

// Label values shared by the pipeline metrics.
const (
	StatusSuccess = "success"
	StatusError   = "error"

	SourceGmail  = "gmail"
	SourceFile   = "file"
	SourceStatic = "static"
)

// DefaultMetricInterval is how often push-style readers (OTLP, stdout) export.
const DefaultMetricInterval = 10 * time.Second

var (
	metricsExporters = []string{ExporterPrometheus, ExporterOTLP, ExporterStdout}
	tracingExporters = []string{ExporterOTLP, ExporterStdout, ExporterNone}
)

// Config controls telemetry for a single opshelm process. A batch run
// (daily, quarterly, yearly) and the MCP server share the same settings.
type Config struct {
	ServiceName    string
	ServiceVersion string
	// ServiceInstanceID defaults to the hostname when empty.
	ServiceInstanceID string

	Enabled bool

	MetricsExporter string
	TracingExporter string
	// MetricInterval applies to OTLP and stdout metric readers; zero means
	// DefaultMetricInterval.
	MetricInterval time.Duration

	// OTLPEndpoint is host:port without scheme, e.g. "localhost:4318".
	OTLPEndpoint string
	OTLPInsecure bool

	TraceSamplingRate float64

	// PushgatewayURL receives the Prometheus registry after each batch run.
	PushgatewayURL string
	PushJob        string

	// MaxWorkspaceLabels caps distinct workspace label values. Workspaces
	// beyond the cap are recorded as "other".
	MaxWorkspaceLabels int

	AuditLogging AuditLoggingConfig
}

// AuditLoggingConfig holds configuration for audit logging.
type AuditLoggingConfig struct {
	Enabled bool

	// IncludePII logs full account addresses instead of hashes.
	IncludePII bool
}

// DefaultConfig returns the defaults, overridden by environment variables.
// Unparseable values fall back to the default.
func DefaultConfig() Config {
	return Config{
		ServiceName:        envOr("OTEL_SERVICE_NAME", "opshelm"),
		ServiceVersion:     "unknown",
		ServiceInstanceID:  envOr("OTEL_SERVICE_INSTANCE_ID", ""),
		Enabled:            envParse("INSTRUMENTATION_ENABLED", true, strconv.ParseBool),
		MetricsExporter:    envOr("METRICS_EXPORTER", ExporterPrometheus),
		TracingExporter:    envOr("TRACING_EXPORTER", ExporterNone),
		MetricInterval:     envParse("METRICS_EXPORT_INTERVAL", DefaultMetricInterval, time.ParseDuration),
		OTLPEndpoint:       envOr("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTLPInsecure:       envParse("OTEL_EXPORTER_OTLP_INSECURE", false, strconv.ParseBool),
		TraceSamplingRate:  envParse("OTEL_TRACES_SAMPLER_ARG", 0.1, parseFloat),
		PushgatewayURL:     envOr("PUSHGATEWAY_URL", ""),
		PushJob:            envOr("PUSHGATEWAY_JOB", "opshelm"),
		MaxWorkspaceLabels: envParse("METRICS_MAX_WORKSPACE_LABELS", 20, strconv.Atoi),
		AuditLogging: AuditLoggingConfig{
			Enabled:    envParse("AUDIT_LOGGING_ENABLED", true, strconv.ParseBool),
			IncludePII: envParse("AUDIT_LOGGING_INCLUDE_PII", false, strconv.ParseBool),
		},
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.TraceSamplingRate < 0 || c.TraceSamplingRate > 1 {
		return fmt.Errorf("trace sampling rate must be between 0.0 and 1.0, got %f", c.TraceSamplingRate)
	}
	if c.MetricsExporter != "" && !slices.Contains(metricsExporters, c.MetricsExporter) {
		return fmt.Errorf("invalid metrics exporter %q, must be one of: %v", c.MetricsExporter, metricsExporters)
	}
	if c.TracingExporter != "" && !slices.Contains(tracingExporters, c.TracingExporter) {
		return fmt.Errorf("invalid tracing exporter %q, must be one of: %v", c.TracingExporter, tracingExporters)
	}
	if c.OTLPEndpoint == "" && (c.MetricsExporter == ExporterOTLP || c.TracingExporter == ExporterOTLP) {
		return fmt.Errorf("OTLP endpoint is required by the otlp exporter; set OTEL_EXPORTER_OTLP_ENDPOINT")
	}
	if c.MetricInterval < 0 {
		return fmt.Errorf("metric export interval must not be negative, got %s", c.MetricInterval)
	}
	if c.PushgatewayURL != "" && c.MetricsExporter != ExporterPrometheus {
		return fmt.Errorf("pushgateway requires the prometheus metrics exporter, got %q", c.MetricsExporter)
	}
	if c.MaxWorkspaceLabels < 1 {
		return fmt.Errorf("max workspace labels must be positive, got %d", c.MaxWorkspaceLabels)
	}
	return nil
}

func (c *Config) metricInterval() time.Duration {
	if c.MetricInterval <= 0 {
		return DefaultMetricInterval
	}
	return c.MetricInterval
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envParse[T any](key string, fallback T, parse func(string) (T, error)) T {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := parse(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
