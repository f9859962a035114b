// Package common provides shared helpers for OpsHelm MCP tools: argument
// parsing and the instrumented handler wrapper.
package common
