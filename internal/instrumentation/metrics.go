package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys.
const (
	attrSource    = "source"
	attrStatus    = "status"
	attrKind      = "kind"
	attrWorkspace = "workspace"
	attrReport    = "report"
	attrResult    = "result"
	attrTool      = "tool"
)

// Metrics records pipeline metrics. The zero value is a no-op recorder, so
// callers never need to nil-check instrumentation.
type Metrics struct {
	// Mail source metrics
	mailFetchTotal       metric.Int64Counter
	mailFetchDuration    metric.Float64Histogram
	messagesFetchedTotal metric.Int64Counter

	// Pipeline metrics
	signalsExtractedTotal metric.Int64Counter
	reportsGeneratedTotal metric.Int64Counter
	reportRenderDuration  metric.Float64Histogram

	// OAuth metrics
	oauthExchangeTotal metric.Int64Counter

	// MCP tool metrics
	toolInvocationsTotal metric.Int64Counter
	toolDuration         metric.Float64Histogram

	workspaces *WorkspaceLabels
}

// NewMetrics creates every instrument on meter. At most maxWorkspaces distinct
// workspace names are used as label values.
func NewMetrics(meter metric.Meter, maxWorkspaces int) (*Metrics, error) {
	m := &Metrics{workspaces: NewWorkspaceLabels(maxWorkspaces)}

	var err error

	m.mailFetchTotal, err = meter.Int64Counter(
		"mail_fetch_total",
		metric.WithDescription("Total number of mail source fetches"),
		metric.WithUnit("{fetch}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail_fetch_total counter: %w", err)
	}

	m.mailFetchDuration, err = meter.Float64Histogram(
		"mail_fetch_duration_seconds",
		metric.WithDescription("Mail source fetch duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail_fetch_duration_seconds histogram: %w", err)
	}

	m.messagesFetchedTotal, err = meter.Int64Counter(
		"messages_fetched_total",
		metric.WithDescription("Total number of messages returned by mail sources"),
		metric.WithUnit("{message}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create messages_fetched_total counter: %w", err)
	}

	m.signalsExtractedTotal, err = meter.Int64Counter(
		"signals_extracted_total",
		metric.WithDescription("Total number of signals extracted from messages"),
		metric.WithUnit("{signal}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create signals_extracted_total counter: %w", err)
	}

	m.reportsGeneratedTotal, err = meter.Int64Counter(
		"reports_generated_total",
		metric.WithDescription("Total number of reports rendered"),
		metric.WithUnit("{report}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create reports_generated_total counter: %w", err)
	}

	m.reportRenderDuration, err = meter.Float64Histogram(
		"report_render_duration_seconds",
		metric.WithDescription("Report render and write duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create report_render_duration_seconds histogram: %w", err)
	}

	m.oauthExchangeTotal, err = meter.Int64Counter(
		"oauth_code_exchange_total",
		metric.WithDescription("Total number of OAuth authorization code exchanges"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create oauth_code_exchange_total counter: %w", err)
	}

	m.toolInvocationsTotal, err = meter.Int64Counter(
		"mcp_tool_invocations_total",
		metric.WithDescription("Total number of MCP tool invocations"),
		metric.WithUnit("{invocation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_invocations_total counter: %w", err)
	}

	m.toolDuration, err = meter.Float64Histogram(
		"mcp_tool_duration_seconds",
		metric.WithDescription("MCP tool execution duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_duration_seconds histogram: %w", err)
	}

	return m, nil
}

// RecordMailFetch records one fetch from a mail source and the number of
// messages it returned.
func (m *Metrics) RecordMailFetch(ctx context.Context, source, status string, messages int, duration time.Duration) {
	if m == nil || m.mailFetchTotal == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(attrSource, source),
		attribute.String(attrStatus, status),
	)
	m.mailFetchTotal.Add(ctx, 1, attrs)
	m.mailFetchDuration.Record(ctx, duration.Seconds(), attrs)

	if messages > 0 {
		m.messagesFetchedTotal.Add(ctx, int64(messages), metric.WithAttributes(attribute.String(attrSource, source)))
	}
}

// RecordSignal counts one extracted signal.
func (m *Metrics) RecordSignal(ctx context.Context, kind, workspace string) {
	if m == nil || m.signalsExtractedTotal == nil {
		return
	}

	m.signalsExtractedTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrKind, kind),
		attribute.String(attrWorkspace, m.workspaces.Label(workspace)),
	))
}

// RecordReport records one rendered report.
func (m *Metrics) RecordReport(ctx context.Context, report, status string, duration time.Duration) {
	if m == nil || m.reportsGeneratedTotal == nil {
		return
	}

	m.reportsGeneratedTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrReport, report),
		attribute.String(attrStatus, status),
	))
	m.reportRenderDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String(attrReport, report),
	))
}

// RecordOAuthExchange records an authorization code exchange.
// Result is StatusSuccess or StatusError.
func (m *Metrics) RecordOAuthExchange(ctx context.Context, result string) {
	if m == nil || m.oauthExchangeTotal == nil {
		return
	}

	m.oauthExchangeTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrResult, result)))
}

// RecordToolInvocation records an MCP tool invocation with tool name, status, and duration.
func (m *Metrics) RecordToolInvocation(ctx context.Context, toolName, status string, duration time.Duration) {
	if m == nil || m.toolInvocationsTotal == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(attrTool, toolName),
		attribute.String(attrStatus, status),
	)
	m.toolInvocationsTotal.Add(ctx, 1, attrs)
	m.toolDuration.Record(ctx, duration.Seconds(), attrs)
}
