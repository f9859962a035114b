package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/teemow/opshelm/internal/config"
	"github.com/teemow/opshelm/internal/gmail"
	"github.com/teemow/opshelm/internal/google"
	"github.com/teemow/opshelm/internal/instrumentation"
	"github.com/teemow/opshelm/internal/logging"
	"github.com/teemow/opshelm/internal/mail"
	"github.com/teemow/opshelm/internal/output"
	"github.com/teemow/opshelm/internal/runner"
	"github.com/teemow/opshelm/internal/signal"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	account        string
	outputDir      string
	workspacesFile string
	input          string
	envFile        string
	debug          bool
}

var globals globalOptions

func (o *globalOptions) register(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&o.account, "account", "", "Google account name for the cached token. Can also use OPSHELM_ACCOUNT env var. (default \"default\")")
	flags.StringVar(&o.outputDir, "output-dir", "", "Directory reports are written to. Can also use OUTPUT_DIR env var. (default \"./output\")")
	flags.StringVar(&o.workspacesFile, "workspaces-file", "", "YAML or JSON mapping of workspace name to subject/sender prefix. Can also use WORKSPACES_FILE env var.")
	flags.StringVar(&o.input, "input", "", "Read messages from a JSON file instead of Gmail")
	flags.StringVar(&o.envFile, "env-file", "", "Load environment variables from this file (default: ./.env when present)")
	flags.BoolVar(&o.debug, "debug", false, "Enable debug logging")
}

// app bundles what a command needs once configuration is resolved.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	provider *instrumentation.Provider
	audit    *instrumentation.AuditLogger
}

// newApp loads configuration, applies flag overrides and starts
// instrumentation. Callers must call close.
func newApp(ctx context.Context, o globalOptions) (*app, error) {
	cfg, err := config.Load(o.envFile)
	if err != nil {
		return nil, err
	}

	if o.account != "" {
		cfg.Account = o.account
	}
	if o.outputDir != "" {
		cfg.OutputDir = o.outputDir
	}
	if o.workspacesFile != "" {
		if err := cfg.SetWorkspacesFile(o.workspacesFile); err != nil {
			return nil, err
		}
	}
	cfg.Instrumentation.ServiceVersion = version

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	level := slog.LevelInfo
	if o.debug {
		level = slog.LevelDebug
	}
	logger := logging.New(os.Stderr, level, os.Getenv("LOG_FORMAT"))
	slog.SetDefault(logger)

	provider, err := instrumentation.NewProvider(ctx, cfg.Instrumentation)
	if err != nil {
		return nil, fmt.Errorf("failed to create instrumentation provider: %w", err)
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		provider: provider,
		audit:    instrumentation.NewAuditLogger(logger, cfg.Instrumentation.AuditLogging),
	}, nil
}

// close flushes instrumentation.
func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.provider.Shutdown(ctx); err != nil {
		a.logger.Warn("instrumentation shutdown failed", logging.Err(err))
	}
}

// source returns the mail source selected by --input, falling back to Gmail.
func (a *app) source(ctx context.Context, input string) (mail.Source, error) {
	if input != "" {
		return mail.NewFileSource(input), nil
	}

	conf, err := google.NewOAuthConfig(a.cfg.Google.ClientID, a.cfg.Google.ClientSecret)
	if err != nil {
		return nil, err
	}
	client, err := gmail.NewClient(ctx, google.NewFileTokenProvider(conf), a.cfg.Account, nil,
		gmail.WithMaxResults(a.cfg.MaxResults),
		gmail.WithLogger(a.logger))
	if err != nil {
		if errors.Is(err, google.ErrNoToken) {
			return nil, fmt.Errorf("%w\n\n%s", err, google.GetAuthenticationErrorMessage(a.cfg.Account))
		}
		return nil, fmt.Errorf("failed to create Gmail client for account %s: %w", a.cfg.Account, err)
	}
	return client, nil
}

// runner wires the pipeline around source.
func (a *app) runner(source mail.Source, opts ...runner.Option) *runner.Runner {
	opts = append([]runner.Option{
		runner.WithMetrics(a.provider.Metrics()),
		runner.WithAuditLogger(a.audit),
		runner.WithLogger(a.logger),
		runner.WithAccount(a.cfg.Account),
	}, opts...)

	return runner.New(source,
		a.cfg.Registry(),
		output.NewWriter(a.cfg.OutputDir, logging.NewSlogAdapter(a.logger)),
		opts...)
}

// push sends batch metrics to the Pushgateway, if one is configured.
func (a *app) push(ctx context.Context, command string) {
	if err := a.provider.Push(ctx, map[string]string{"command": command}); err != nil {
		a.logger.Warn("failed to push metrics", logging.Operation(command), logging.Err(err))
	}
}

// printSummary writes a short run report to stdout.
func printSummary(sum *runner.Summary) {
	fmt.Printf("Run %s (%s): %d messages, %d signals\n", sum.RunID, sum.Workflow, sum.Messages, sum.Signals)

	kinds := make([]string, 0, len(signal.Kinds))
	for _, k := range signal.Kinds {
		kinds = append(kinds, fmt.Sprintf("%s=%d", k, sum.Counts[k]))
	}
	fmt.Printf("  Signals: %s\n", strings.Join(kinds, " "))
	for _, ws := range sum.Workspaces {
		fmt.Printf("  %s: %d\n", ws.Name, ws.Count)
	}
	for _, f := range sum.Files {
		fmt.Printf("  wrote %s\n", f)
	}
}
