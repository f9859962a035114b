// Package instrumentation provides OpenTelemetry metrics and tracing for OpsHelm.
//
// # Metrics
//
// Mail sources:
//   - mail_fetch_total: fetches by source and status
//   - mail_fetch_duration_seconds: fetch latency by source and status
//   - messages_fetched_total: messages returned by source
//
// Pipeline:
//   - signals_extracted_total: signals by kind and workspace
//   - reports_generated_total: rendered reports by report and status
//   - report_render_duration_seconds: render and write latency by report
//
// MCP and auth:
//   - mcp_tool_invocations_total / mcp_tool_duration_seconds: by tool and status
//   - oauth_code_exchange_total: authorization code exchanges by result
//
// Workspace labels are capped by METRICS_MAX_WORKSPACE_LABELS; names past
// the cap are reported as "other".
//
// # Tracing
//
// Spans are created per run (run.<workflow>), per mail fetch
// (mail.<source>.fetch), for extraction (pipeline.extract), per report
// (report.<name>) and per MCP tool call (tool.<name>).
//
// # Export
//
// The serve command exposes Prometheus metrics over HTTP. Batch commands
// (daily, quarterly, yearly) push the registry to PUSHGATEWAY_URL when set.
//
// Environment:
//   - INSTRUMENTATION_ENABLED (default: true)
//   - METRICS_EXPORTER: prometheus, otlp, stdout (default: prometheus)
//   - TRACING_EXPORTER: otlp, stdout, none (default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT, OTEL_EXPORTER_OTLP_INSECURE
//   - OTEL_TRACES_SAMPLER_ARG (default: 0.1)
//   - METRICS_EXPORT_INTERVAL for otlp and stdout readers (default: 10s)
//   - OTEL_SERVICE_NAME (default: opshelm)
//   - PUSHGATEWAY_URL, PUSHGATEWAY_JOB (default job: opshelm)
//   - AUDIT_LOGGING_ENABLED, AUDIT_LOGGING_INCLUDE_PII
//
// # Example
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	provider.Metrics().RecordReport(ctx, "daily-runway", instrumentation.StatusSuccess, d)
package instrumentation
