// Package report_tools exposes the OpsHelm pipeline as MCP tools.
//
// Every tool fetches mail for a window of days, extracts signals and
// renders one report (or the raw signals as JSON). Tools are read-only:
// nothing is written to the output directory.
package report_tools
