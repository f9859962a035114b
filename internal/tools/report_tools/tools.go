package report_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/opshelm/internal/report"
	"github.com/teemow/opshelm/internal/server"
	"github.com/teemow/opshelm/internal/signal"
	"github.com/teemow/opshelm/internal/tools/common"
)

// Tool names.
const (
	ToolExtractSignals   = "opshelm_extract_signals"
	ToolDailyDigest      = "opshelm_daily_digest"
	ToolCustomerQueue    = "opshelm_customer_queue"
	ToolMeetingPrep      = "opshelm_meeting_prep"
	ToolPromiseReminders = "opshelm_promise_reminders"
	ToolAccomplishments  = "opshelm_accomplishments"
)

// maxDays bounds the fetch window a tool call may request.
const maxDays = 366

var daysOption = mcp.WithNumber("days",
	mcp.Description("Number of days of mail to analyse (default: 1, today only)"),
)

// RegisterReportTools registers the signal and report tools with the MCP server.
func RegisterReportTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	if sc == nil || sc.Runner() == nil {
		return fmt.Errorf("report tools need a server context with a runner")
	}

	tools := []struct {
		tool    mcp.Tool
		handler func(context.Context, mcp.CallToolRequest, *server.ServerContext) (*mcp.CallToolResult, error)
	}{
		{
			tool: mcp.NewTool(ToolExtractSignals,
				mcp.WithDescription("Extract tickets, meetings, tasks and promises from recent mail as JSON"),
				daysOption,
				mcp.WithString("workspace", mcp.Description("Only return signals for this workspace")),
				mcp.WithString("kind",
					mcp.Description("Only return signals of this kind"),
					mcp.Enum(string(signal.KindTicket), string(signal.KindMeeting), string(signal.KindTask), string(signal.KindPromise)),
				),
			),
			handler: handleExtractSignals,
		},
		{
			tool: mcp.NewTool(ToolDailyDigest,
				mcp.WithDescription("Render the Daily Runway: urgent tickets, today's meetings, tasks and promises"),
				daysOption,
			),
			handler: handleDailyDigest,
		},
		{
			tool: mcp.NewTool(ToolCustomerQueue,
				mcp.WithDescription("Render the Customer Queue: open tickets grouped by customer, ordered by priority score"),
				daysOption,
				mcp.WithString("workspace", mcp.Description("Restrict the queue to one workspace")),
			),
			handler: handleCustomerQueue,
		},
		{
			tool: mcp.NewTool(ToolMeetingPrep,
				mcp.WithDescription("Render meeting preparation notes with related signals"),
				daysOption,
				mcp.WithString("subject", mcp.Description("Prepare a single meeting whose subject contains this text")),
			),
			handler: handleMeetingPrep,
		},
		{
			tool: mcp.NewTool(ToolPromiseReminders,
				mcp.WithDescription("Render overdue, due-today and upcoming promises"),
				daysOption,
				mcp.WithString("workspace", mcp.Description("Restrict reminders to one workspace")),
			),
			handler: handlePromiseReminders,
		},
		{
			tool: mcp.NewTool(ToolAccomplishments,
				mcp.WithDescription("Render a quarterly or yearly accomplishments report"),
				mcp.WithString("period",
					mcp.Description("Reporting period (default: quarterly)"),
					mcp.Enum(string(report.PeriodQuarterly), string(report.PeriodYearly)),
				),
				mcp.WithNumber("days", mcp.Description("Override the fetch window (default: length of the period)")),
				mcp.WithString("workspace", mcp.Description("Restrict the report to one workspace")),
			),
			handler: handleAccomplishments,
		},
	}

	for _, t := range tools {
		handler := t.handler
		s.AddTool(t.tool, common.InstrumentedToolHandler(t.tool.Name, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handler(ctx, request, sc)
			}))
	}
	return nil
}

// collect parses the days argument and runs extraction over that window.
func collect(ctx context.Context, sc *server.ServerContext, args map[string]any, defDays int) ([]signal.Signal, error) {
	days, err := common.IntArg(args, "days", defDays)
	if err != nil {
		return nil, err
	}
	if days < 1 || days > maxDays {
		return nil, fmt.Errorf("'days' must be between 1 and %d, got %d", maxDays, days)
	}
	return sc.Runner().CollectDays(ctx, days)
}

func handleExtractSignals(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	signals, err := collect(ctx, sc, args, 1)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if ws := common.StringArg(args, "workspace"); ws != "" {
		signals = signal.InWorkspace(signals, ws)
	}
	if kind := common.StringArg(args, "kind"); kind != "" {
		filtered := make([]signal.Signal, 0, len(signals))
		for _, s := range signals {
			if string(s.Kind()) == kind {
				filtered = append(filtered, s)
			}
		}
		signals = filtered
	}

	data, err := json.MarshalIndent(signals, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode signals: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func handleDailyDigest(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	signals, err := collect(ctx, sc, request.GetArguments(), 1)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	r := sc.Runner()
	return mcp.NewToolResultText(r.Generator().DailyDigest(signals, r.Now())), nil
}

func handleCustomerQueue(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	signals, err := collect(ctx, sc, args, 1)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ws := common.StringArg(args, "workspace")
	if ws != "" {
		signals = signal.InWorkspace(signals, ws)
	}
	return mcp.NewToolResultText(sc.Runner().Generator().CustomerQueue(signals, ws)), nil
}

func handleMeetingPrep(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	signals, err := collect(ctx, sc, args, 1)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	subject := common.StringArg(args, "subject")
	return mcp.NewToolResultText(sc.Runner().Generator().MeetingPrep(signals, subject)), nil
}

func handlePromiseReminders(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	signals, err := collect(ctx, sc, args, 1)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ws := common.StringArg(args, "workspace")
	return mcp.NewToolResultText(sc.Runner().Generator().PromiseReminders(signals, ws)), nil
}

func handleAccomplishments(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	period := report.PeriodQuarterly
	if p := common.StringArg(args, "period"); p != "" {
		parsed, err := report.ParsePeriod(p)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		period = parsed
	}

	signals, err := collect(ctx, sc, args, period.Days())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ws := common.StringArg(args, "workspace")
	return mcp.NewToolResultText(sc.Runner().Generator().Accomplishments(signals, period, ws)), nil
}
