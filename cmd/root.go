package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the opshelm application
var rootCmd = &cobra.Command{
	Use:   "opshelm",
	Short: "Turns your inbox into daily operational reports",
	Long: `opshelm reads recent email, classifies it into tickets, meetings, tasks
and promises, groups them by customer workspace and writes Markdown reports:
the Daily Runway, Customer Queue, Meeting Prep, Promise Reminders and
quarterly or yearly Accomplishments.

It can run as:
  - A batch CLI tool (default: the daily workflow)
  - An MCP (Model Context Protocol) server for AI assistants`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "opshelm version %s\n" .Version}}`)

	// If no subcommand is provided, run the daily workflow
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "daily")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	globals.register(rootCmd)

	rootCmd.AddCommand(newDailyCmd())
	rootCmd.AddCommand(newPeriodCmd("quarterly"))
	rootCmd.AddCommand(newPeriodCmd("yearly"))
	rootCmd.AddCommand(newDemoCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
}
