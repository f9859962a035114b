// Package resources exposes read-only OpsHelm data as MCP resources: the
// workspace registry and the reports written by today's daily run.
package resources
