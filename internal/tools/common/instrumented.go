package common

import (
	"context"
	"errors"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"go.opentelemetry.io/otel/attribute"

	"github.com/teemow/opshelm/internal/instrumentation"
	"github.com/teemow/opshelm/internal/logging"
	"github.com/teemow/opshelm/internal/server"
)

// ToolHandler is the mcp-go tool handler signature. It is an alias so
// wrapped handlers pass straight to server.MCPServer.AddTool.
type ToolHandler = func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// InstrumentedToolHandler wraps a tool handler with a span, metrics and
// audit logging. A result with IsError set counts as a failure.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandler("my_tool", sc, handler))
func InstrumentedToolHandler(toolName string, sc *server.ServerContext, handler ToolHandler) ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		workspace := StringArg(request.GetArguments(), "workspace")

		ctx, span := instrumentation.StartToolSpan(ctx, toolName,
			attribute.String(instrumentation.SpanAttrWorkspace, workspace))
		defer span.End()

		start := time.Now()
		record := instrumentation.NewRunRecord(instrumentation.ActionTool, toolName).
			WithWorkspace(workspace).
			WithSpanContext(ctx)

		result, err := handler(ctx, request)

		failure := err
		if failure == nil && result != nil && result.IsError {
			failure = errors.New(resultText(result))
		}

		status := instrumentation.StatusSuccess
		if failure != nil {
			status = instrumentation.StatusError
			instrumentation.SetSpanError(span, failure)
		} else {
			instrumentation.SetSpanSuccess(span)
		}
		logging.WithTool(sc.Logger(), toolName).Debug("tool call finished",
			logging.Status(status), logging.Err(failure))

		sc.Metrics().RecordToolInvocation(ctx, toolName, status, time.Since(start))
		sc.AuditLogger().Log(record.Complete(failure))

		return result, err
	}
}

// resultText returns the first text content of a tool result.
func resultText(result *mcp.CallToolResult) string {
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return "tool returned an error result"
}
