package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

func newDailyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daily",
		Short: "Write today's runway, customer queues, meeting prep and promise reminders",
		Long: `Fetch the messages received today (local midnight to midnight), extract
signals and write the daily report set into <output-dir>/<YYYY-MM-DD>/:

  daily-runway.md
  customer-queue-<workspace>.md   (one per workspace with signals today)
  meeting-prep.md
  promise-reminders.md

This is the default command when no subcommand is specified.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaily(cmd.Context(), globals)
		},
	}
}

func runDaily(ctx context.Context, o globalOptions) error {
	a, err := newApp(ctx, o)
	if err != nil {
		return err
	}
	defer a.close()

	source, err := a.source(ctx, o.input)
	if err != nil {
		return err
	}

	sum, err := a.runner(source).RunDaily(ctx)
	a.push(ctx, "daily")
	if err != nil {
		return err
	}

	printSummary(sum)
	return nil
}
