package cmd

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"

	"github.com/teemow/opshelm/internal/mail"
	"github.com/teemow/opshelm/internal/output"
	"github.com/teemow/opshelm/internal/runner"
	"github.com/teemow/opshelm/internal/server"
	"github.com/teemow/opshelm/internal/workspace"
)

func newGenerateDocsCmd() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "generate-docs",
		Short: "Generate MCP tool documentation",
		Long: `Render a Markdown reference of the MCP tools exposed by "opshelm serve".
The tools are registered against an offline pipeline and introspected, so
the reference always matches the tool definitions. No mail is read.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			markdown, err := toolsMarkdown()
			if err != nil {
				return err
			}
			return writeDocs(cmd.OutOrStdout(), cmd.ErrOrStderr(), outputFile, markdown)
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func writeDocs(stdout, stderr io.Writer, outputFile, markdown string) error {
	if outputFile == "" {
		_, err := io.WriteString(stdout, markdown)
		return err
	}
	if err := os.WriteFile(outputFile, []byte(markdown), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintf(stderr, "Documentation written to: %s\n", outputFile)
	return nil
}

func toolsMarkdown() (string, error) {
	r := runner.New(mail.NewStaticSource(nil),
		workspace.NewRegistry(workspace.DefaultEntries...),
		output.NewWriter(os.TempDir(), nil),
		runner.WithClock(time.Now))

	serverContext := server.NewServerContext(context.Background(), r)
	defer func() { _ = serverContext.Shutdown() }()

	mcpSrv := newMCPServer()
	if err := registerAllTools(mcpSrv, serverContext); err != nil {
		return "", err
	}

	registered := mcpSrv.ListTools()
	tools := make([]mcp.Tool, 0, len(registered))
	for _, name := range slices.Sorted(maps.Keys(registered)) {
		tools = append(tools, registered[name].Tool)
	}
	return generateToolsMarkdown(tools), nil
}

// generateToolsMarkdown expects tools sorted by name.
func generateToolsMarkdown(tools []mcp.Tool) string {
	var sb strings.Builder

	sb.WriteString("# MCP Tools Reference\n\n")
	sb.WriteString("Tools available when running `opshelm serve`. Generated by `opshelm generate-docs`.\n\n")
	sb.WriteString("## Common Arguments\n\n")
	sb.WriteString("- `days`: look-back window in days. `1` (the default) means today since local midnight.\n")
	sb.WriteString("- `workspace`: restricts the output to one workspace where supported.\n\n")
	sb.WriteString("## Tools\n\n")

	for _, tool := range tools {
		writeTool(&sb, tool)
	}
	return sb.String()
}

func writeTool(sb *strings.Builder, tool mcp.Tool) {
	fmt.Fprintf(sb, "### %s\n\n", tool.Name)
	if tool.Description != "" {
		fmt.Fprintf(sb, "%s\n\n", tool.Description)
	}

	props := tool.InputSchema.Properties
	if len(props) > 0 {
		sb.WriteString("**Arguments:**\n")
		for _, name := range slices.Sorted(maps.Keys(props)) {
			prop, ok := props[name].(map[string]any)
			if !ok {
				continue
			}
			writeArgument(sb, name, prop, slices.Contains(tool.InputSchema.Required, name))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

func writeArgument(sb *strings.Builder, name string, prop map[string]any, required bool) {
	typ, _ := prop["type"].(string)
	if typ == "" {
		typ = "any"
	}
	presence := "optional"
	if required {
		presence = "required"
	}

	fmt.Fprintf(sb, "- `%s` (%s, %s): ", name, typ, presence)
	if desc, ok := prop["description"].(string); ok {
		sb.WriteString(desc)
	}
	if values, ok := prop["enum"].([]string); ok && len(values) > 0 {
		fmt.Fprintf(sb, " One of: `%s`.", strings.Join(values, "`, `"))
	}
	sb.WriteString("\n")
}
