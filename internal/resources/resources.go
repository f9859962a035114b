package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/opshelm/internal/report"
	"github.com/teemow/opshelm/internal/server"
)

// URIWorkspaces lists the configured workspaces.
const URIWorkspaces = "opshelm://workspaces"

// dailyReports are served from today's daily output directory.
var dailyReports = []struct {
	name  string
	title string
}{
	{report.NameDailyRunway, "Today's Daily Runway"},
	{report.NameMeetingPrep, "Today's Meeting Prep"},
	{report.NamePromiseReminders, "Today's Promise Reminders"},
}

// ReportURI is the resource URI of today's copy of the named report.
func ReportURI(name string) string {
	return "opshelm://reports/" + name
}

// RegisterResources registers the workspace and daily report resources.
func RegisterResources(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	if sc == nil || sc.Runner() == nil {
		return fmt.Errorf("resources need a server context with a runner")
	}

	workspaces := mcp.NewResource(URIWorkspaces,
		"Workspaces",
		mcp.WithResourceDescription("Configured workspaces with their subject/sender prefixes"),
		mcp.WithMIMEType("application/json"),
	)
	s.AddResource(workspaces, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleWorkspaces(ctx, request, sc)
	})

	for _, r := range dailyReports {
		name := r.name
		resource := mcp.NewResource(ReportURI(name),
			r.title,
			mcp.WithResourceDescription("Written by the last daily run for today; run `opshelm daily` first"),
			mcp.WithMIMEType("text/markdown"),
		)
		s.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			return handleDailyReport(ctx, request, sc, name)
		})
	}

	return nil
}

func handleWorkspaces(_ context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	jsonData, err := json.MarshalIndent(sc.Runner().Registry().Active(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal workspaces: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}

func handleDailyReport(_ context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext, name string) ([]mcp.ResourceContents, error) {
	content, err := sc.Runner().ReadDailyReport(name)
	if err != nil {
		return nil, fmt.Errorf("no %s report for today: %w", name, err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "text/markdown",
			Text:     content,
		},
	}, nil
}
