package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teemow/opshelm/internal/report"
)

// newPeriodCmd builds the quarterly or yearly accomplishments command.
func newPeriodCmd(name string) *cobra.Command {
	period := report.Period(name)
	var workspace string

	cmd := &cobra.Command{
		Use:   name,
		Short: fmt.Sprintf("Write the %s accomplishments report", name),
		Long: fmt.Sprintf(`Fetch the messages of the last %d days, extract signals and write
<output-dir>/%s-accomplishments-<YYYY-MM-DD>.md with summary counts, a
workspace breakdown, the monthly trend and the most active days.`, period.Days(), name),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPeriod(cmd.Context(), globals, period, workspace)
		},
	}

	cmd.Flags().StringVar(&workspace, "workspace", "", "Restrict the report to one workspace")
	return cmd
}

func runPeriod(ctx context.Context, o globalOptions, period report.Period, workspace string) error {
	a, err := newApp(ctx, o)
	if err != nil {
		return err
	}
	defer a.close()

	if workspace != "" {
		if _, ok := a.cfg.Registry().Get(workspace); !ok {
			a.logger.Warn("workspace is not configured, report will only match signals tagged with it",
				"workspace", workspace)
		}
	}

	source, err := a.source(ctx, o.input)
	if err != nil {
		return err
	}

	sum, err := a.runner(source).RunPeriod(ctx, period, workspace)
	a.push(ctx, string(period))
	if err != nil {
		return err
	}

	printSummary(sum)
	return nil
}
