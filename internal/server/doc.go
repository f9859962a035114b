// Package server holds the state shared by OpsHelm's MCP tool handlers and
// the optional HTTP endpoint that exposes Prometheus metrics and health
// checks while the stdio MCP server runs.
//
// ServerContext carries the pipeline runner, metrics recorder, audit logger
// and logger, and a context that is cancelled on Shutdown.
//
// MetricsServer serves on its own address:
//   - /metrics (promhttp over the default Prometheus registry)
//   - /healthz, /readyz and /healthz/detailed (HealthChecker)
package server
