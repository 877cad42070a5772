package cmd

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/basintools/basindb/internal/importer"
	"github.com/basintools/basindb/internal/report"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

// serveCmd exposes the import/export pipeline over MCP stdio so editor
// integrations drive it without shelling out.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the import/export pipeline as MCP tools over stdio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log, sync := newLogger()
		defer sync()

		s := server.NewMCPServer("basindb", rootCmd.Version)

		s.AddTool(
			mcp.NewTool("import_text_files",
				mcp.WithDescription("Decode a directory of model text files into the project database"),
				mcp.WithString("project_dir", mcp.Required(),
					mcp.Description("Directory holding the text files")),
			),
			func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				dir, err := req.RequireString("project_dir")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				ctx, cfg, err := openProject(dir, log)
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				defer func() { _ = ctx.Store.Close() }()

				im := &importer.Importer{Ctx: ctx, Cfg: cfg}
				if err := im.Run(); err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				return mcp.NewToolResultText("imported " + dir + " into " + ctx.Store.Path()), nil
			},
		)

		s.AddTool(
			mcp.NewTool("export_text_files",
				mcp.WithDescription("Re-encode the project database as model text files"),
				mcp.WithString("project_dir", mcp.Required(),
					mcp.Description("Project directory to write the text files into")),
			),
			func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				dir, err := req.RequireString("project_dir")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				ctx, cfg, err := openProject(dir, log)
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				defer func() { _ = ctx.Store.Close() }()

				ex := &importer.Exporter{Ctx: ctx, Cfg: cfg}
				if err := ex.Run(); err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				return mcp.NewToolResultText("exported " + ctx.Store.Path() + " into " + dir), nil
			},
		)

		s.AddTool(
			mcp.NewTool("project_status",
				mcp.WithDescription("Row counts and connection graph health for a project database"),
				mcp.WithString("project_dir", mcp.Required(),
					mcp.Description("Project directory whose database to inspect")),
			),
			func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				dir, err := req.RequireString("project_dir")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				ctx, _, err := openProject(dir, log)
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				defer func() { _ = ctx.Store.Close() }()

				rep, err := report.Verify(ctx.Store)
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				var b strings.Builder
				if err := rep.WriteJSON(&b); err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				return mcp.NewToolResultText(b.String()), nil
			},
		)

		return server.ServeStdio(s)
	},
}
