// Package cmd implements the command-line interface for opshelm.
//
// This package provides the following commands:
//   - daily: Write today's runway, customer queues, meeting prep and promise reminders
//   - quarterly, yearly: Write the accomplishments report for the period
//   - demo: Generate every report from a built-in sample mailbox
//   - auth: Authorize read-only Gmail access for an account
//   - serve: Start the MCP server to provide report tools for AI assistants
//   - version: Display version information
//   - generate-docs: Generate markdown documentation for all MCP tools
//
// The daily command is the default command when no subcommand is specified.
package cmd
