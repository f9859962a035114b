package instrumentation

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the tracer name used for all OpsHelm spans.
const TracerName = "github.com/teemow/opshelm"

// Span attribute keys.
const (
	SpanAttrTool      = "mcp.tool"
	SpanAttrSource    = "mail.source"
	SpanAttrMessages  = "mail.messages"
	SpanAttrReport    = "opshelm.report"
	SpanAttrWorkspace = "opshelm.workspace"
	SpanAttrRunID     = "opshelm.run_id"
	SpanAttrSignals   = "opshelm.signals"
)

// StartSpan starts an internal span. The caller must end it.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return start(ctx, name, trace.SpanKindInternal, attrs)
}

// StartToolSpan starts a server span named "tool.<name>" for an MCP call.
func StartToolSpan(ctx context.Context, toolName string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return start(ctx, "tool."+toolName, trace.SpanKindServer,
		prepend(attribute.String(SpanAttrTool, toolName), attrs))
}

// StartMailSpan starts a client span named "mail.<source>.fetch".
func StartMailSpan(ctx context.Context, source string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return start(ctx, "mail."+source+".fetch", trace.SpanKindClient,
		prepend(attribute.String(SpanAttrSource, source), attrs))
}

// StartReportSpan starts an internal span named "report.<name>".
func StartReportSpan(ctx context.Context, report string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return start(ctx, "report."+report, trace.SpanKindInternal,
		prepend(attribute.String(SpanAttrReport, report), attrs))
}

func start(ctx context.Context, name string, kind trace.SpanKind, attrs []attribute.KeyValue) (context.Context, trace.Span) {
	return otel.GetTracerProvider().Tracer(TracerName).Start(ctx, name,
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(kind),
	)
}

func prepend(first attribute.KeyValue, rest []attribute.KeyValue) []attribute.KeyValue {
	return append([]attribute.KeyValue{first}, rest...)
}

// SetSpanError marks span as failed; a nil err leaves it untouched.
func SetSpanError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// SetSpanSuccess sets the span status to OK.
func SetSpanSuccess(span trace.Span) {
	span.SetStatus(codes.Ok, "")
}

// SpanIDs returns the hex trace and span ids of the span in ctx, or empty
// strings when ctx carries no valid span.
func SpanIDs(ctx context.Context) (traceID, spanID string) {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return "", ""
	}
	return sc.TraceID().String(), sc.SpanID().String()
}
