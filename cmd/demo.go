package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/teemow/opshelm/internal/mail"
	"github.com/teemow/opshelm/internal/runner"
)

// demoOutputDir is used when --output-dir is not given.
const demoOutputDir = "examples/output"

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Generate every report from a built-in sample mailbox",
		Long: `Run the pipeline over eight sample messages covering both default
workspaces and every signal kind, then write all reports into the output
directory (default: examples/output). No Google account is needed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			o := globals
			if o.outputDir == "" {
				o.outputDir = demoOutputDir
			}
			return runDemo(cmd.Context(), o, time.Now)
		},
	}
}

func runDemo(ctx context.Context, o globalOptions, now func() time.Time) error {
	a, err := newApp(ctx, o)
	if err != nil {
		return err
	}
	defer a.close()

	source := mail.NewStaticSource(mail.SampleMessages(now()))
	sum, err := a.runner(source, runner.WithClock(now)).RunDemo(ctx)
	if err != nil {
		return err
	}

	fmt.Println("OpsHelm demo")
	printSummary(sum)
	return nil
}
