// Package config loads OpsHelm settings from the environment and an
// optional .env file.
//
// Command-line flags are applied on top of the loaded Config by the cmd
// package. Workspace definitions come from WORKSPACES_FILE, the WORKSPACES
// variable, or the built-in defaults, in that order.
package config
