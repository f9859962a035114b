package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/teemow/opshelm/internal/logging"
	"github.com/teemow/opshelm/internal/resources"
	"github.com/teemow/opshelm/internal/server"
	"github.com/teemow/opshelm/internal/tools/report_tools"
)

func newServeCmd() *cobra.Command {
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol (MCP) server on stdio so AI assistants
can extract signals and render OpsHelm reports on demand.

Tools:
  opshelm_extract_signals     signals as JSON
  opshelm_daily_digest        Daily Runway
  opshelm_customer_queue      Customer Queue
  opshelm_meeting_prep        Meeting Prep
  opshelm_promise_reminders   Promise Reminders
  opshelm_accomplishments     quarterly or yearly Accomplishments

Resources:
  opshelm://workspaces            configured workspaces
  opshelm://reports/<report>      today's daily-runway, meeting-prep and
                                  promise-reminders written by "opshelm daily"

Mail comes from Gmail (run "opshelm auth" first) or from --input.

Metrics:
  --metrics-addr :9090 serves /metrics, /healthz and /readyz on a dedicated
  port. Requires the prometheus metrics exporter (the default).
  Can also use METRICS_ADDR env var.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if metricsAddr == "" {
				metricsAddr = os.Getenv("METRICS_ADDR")
			}
			return runServe(cmd.Context(), globals, metricsAddr)
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Metrics server address, e.g. :9090 (disabled when empty)")
	return cmd
}

func runServe(ctx context.Context, o globalOptions, metricsAddr string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	// Setup graceful shutdown
	shutdownCtx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a, err := newApp(shutdownCtx, o)
	if err != nil {
		return err
	}
	defer a.close()

	source, err := a.source(shutdownCtx, o.input)
	if err != nil {
		return err
	}

	serverContext := server.NewServerContext(shutdownCtx, a.runner(source),
		server.WithMetrics(a.provider.Metrics()),
		server.WithAuditLogger(a.audit),
		server.WithLogger(a.logger))
	defer func() {
		if err := serverContext.Shutdown(); err != nil {
			a.logger.Warn("server context shutdown failed", logging.Err(err))
		}
	}()

	health := server.NewHealthChecker(serverContext)
	health.SetReady(false)

	if metricsAddr != "" {
		metricsServer, err := server.NewMetricsServer(server.MetricsServerConfig{
			Addr:     metricsAddr,
			Provider: a.provider,
			Health:   health,
			Logger:   a.logger,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}

		go func() {
			if err := metricsServer.Start(); err != nil {
				a.logger.Error("metrics server failed", logging.Err(err))
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
			defer cancel()
			if err := metricsServer.Shutdown(ctx); err != nil {
				a.logger.Warn("metrics server shutdown failed", logging.Err(err))
			}
		}()
	}

	mcpSrv := newMCPServer()
	if err := registerAllTools(mcpSrv, serverContext); err != nil {
		return err
	}
	health.SetReady(true)

	a.logger.Info("starting MCP server", "transport", "stdio", "account", a.cfg.Account)
	return runStdioServer(shutdownCtx, mcpSrv)
}

func newMCPServer() *mcpserver.MCPServer {
	return mcpserver.NewMCPServer("opshelm", version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, false), // Subscribe and listChanged
	)
}

func runStdioServer(ctx context.Context, mcpSrv *mcpserver.MCPServer) error {
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	select {
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("server stopped with error: %w", err)
		}
		return nil
	case <-ctx.Done():
		// ServeStdio handles SIGTERM itself; give it a moment to drain.
		select {
		case <-serverDone:
		case <-time.After(2 * time.Second):
		}
		return nil
	}
}

// registerAllTools registers all MCP tools and resources
func registerAllTools(mcpSrv *mcpserver.MCPServer, ctx *server.ServerContext) error {
	if err := report_tools.RegisterReportTools(mcpSrv, ctx); err != nil {
		return fmt.Errorf("failed to register report tools: %w", err)
	}
	if err := resources.RegisterResources(mcpSrv, ctx); err != nil {
		return fmt.Errorf("failed to register resources: %w", err)
	}
	return nil
}
