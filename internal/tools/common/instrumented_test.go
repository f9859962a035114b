package common

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/opshelm/internal/instrumentation"
	"github.com/teemow/opshelm/internal/server"
)

func newAuditedContext(t *testing.T) (*server.ServerContext, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	audit := instrumentation.NewAuditLogger(logger, instrumentation.AuditLoggingConfig{Enabled: true})

	sc := server.NewServerContext(context.Background(), nil,
		server.WithAuditLogger(audit),
		server.WithLogger(slog.New(slog.DiscardHandler)))
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc, &buf
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{Params: mcp.CallToolParams{Name: "test_tool", Arguments: args}}
}

func TestInstrumentedToolHandler(t *testing.T) {
	tests := []struct {
		name      string
		handler   ToolHandler
		wantErr   bool
		wantAudit string
	}{
		{
			name: "success",
			handler: func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return mcp.NewToolResultText("ok"), nil
			},
			wantAudit: "tool_completed",
		},
		{
			name: "handler error",
			handler: func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return nil, errors.New("boom")
			},
			wantErr:   true,
			wantAudit: "tool_failed",
		},
		{
			name: "error result",
			handler: func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return mcp.NewToolResultError("bad input"), nil
			},
			wantAudit: "tool_failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, buf := newAuditedContext(t)

			wrapped := InstrumentedToolHandler("test_tool", sc, tt.handler)
			_, err := wrapped(context.Background(), callRequest(map[string]any{"workspace": "Parex"}))
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}

			assert.Contains(t, buf.String(), tt.wantAudit)
			assert.Contains(t, buf.String(), "test_tool")
		})
	}
}

func TestInstrumentedToolHandler_NilDependencies(t *testing.T) {
	sc := server.NewServerContext(context.Background(), nil)
	defer sc.Shutdown()

	called := false
	wrapped := InstrumentedToolHandler("test_tool", sc, func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		called = true
		return mcp.NewToolResultText("ok"), nil
	})

	result, err := wrapped(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	assert.True(t, called)
	assert.NotNil(t, result)
}

func TestResultText(t *testing.T) {
	assert.Equal(t, "bad input", resultText(mcp.NewToolResultError("bad input")))
	assert.Equal(t, "tool returned an error result", resultText(&mcp.CallToolResult{}))
}

func TestInstrumentedToolHandler_AddTool(t *testing.T) {
	sc, buf := newAuditedContext(t)
	s := mcpserver.NewMCPServer("test-server", "1.0.0", mcpserver.WithToolCapabilities(true))

	s.AddTool(mcp.NewTool("test_tool"), InstrumentedToolHandler("test_tool", sc,
		func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("ok"), nil
		}))

	st, ok := s.ListTools()["test_tool"]
	require.True(t, ok)

	result, err := st.Handler(context.Background(), callRequest(nil))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, buf.String(), "tool_completed")
}
