package resources

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/opshelm/internal/mail"
	"github.com/teemow/opshelm/internal/output"
	"github.com/teemow/opshelm/internal/report"
	"github.com/teemow/opshelm/internal/runner"
	"github.com/teemow/opshelm/internal/server"
	"github.com/teemow/opshelm/internal/workspace"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestServerContext(t *testing.T) *server.ServerContext {
	t.Helper()
	r := runner.New(
		mail.NewStaticSource(mail.SampleMessages(testNow)),
		workspace.NewRegistry(workspace.DefaultEntries...),
		output.NewWriter(t.TempDir(), nil),
		runner.WithClock(func() time.Time { return testNow }),
		runner.WithLocation(time.UTC),
		runner.WithLogger(slog.New(slog.DiscardHandler)),
	)
	sc := server.NewServerContext(context.Background(), r)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func readRequest(uri string) mcp.ReadResourceRequest {
	return mcp.ReadResourceRequest{Params: mcp.ReadResourceParams{URI: uri}}
}

func TestRegisterResources(t *testing.T) {
	s := mcpserver.NewMCPServer("test-server", "1.0.0", mcpserver.WithResourceCapabilities(false, false))
	assert.NoError(t, RegisterResources(s, newTestServerContext(t)))

	noRunner := server.NewServerContext(context.Background(), nil)
	defer noRunner.Shutdown()
	assert.Error(t, RegisterResources(s, noRunner))
}

func TestHandleWorkspaces(t *testing.T) {
	sc := newTestServerContext(t)

	contents, err := handleWorkspaces(context.Background(), readRequest(URIWorkspaces), sc)
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(*mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, URIWorkspaces, text.URI)

	var got []workspace.Workspace
	require.NoError(t, json.Unmarshal([]byte(text.Text), &got))
	assert.Equal(t, []workspace.Workspace{
		{Name: "Parex", Prefix: "parex", Active: true},
		{Name: "ParkPlace", Prefix: "parkplace", Active: true},
	}, got)
}

func TestHandleDailyReport(t *testing.T) {
	sc := newTestServerContext(t)
	uri := ReportURI(report.NameDailyRunway)

	_, err := handleDailyReport(context.Background(), readRequest(uri), sc, report.NameDailyRunway)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no daily-runway report for today")

	_, err = sc.Runner().RunDaily(context.Background())
	require.NoError(t, err)

	contents, err := handleDailyReport(context.Background(), readRequest(uri), sc, report.NameDailyRunway)
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(*mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, "text/markdown", text.MIMEType)
	assert.Contains(t, text.Text, "# Daily Runway Report - 2025-03-10")
}
