// Package mcpserver exposes the command catalog to MCP clients over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"botdash/internal/catalog"
	"botdash/pkg/logging"
)

const subsystem = "MCP"

// Server serves read-only catalog tools.
type Server struct {
	catalog *catalog.Catalog
	mcp     *server.MCPServer
}

// New builds the MCP server for cat.
func New(cat *catalog.Catalog, version string) *Server {
	s := &Server{
		catalog: cat,
		mcp: server.NewMCPServer(
			"botdash",
			version,
			server.WithToolCapabilities(false),
		),
	}
	s.mcp.AddTools(s.tools()...)
	return s
}

func (s *Server) tools() []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("search_commands",
				mcp.WithDescription("Search the bot command reference by text and category"),
				mcp.WithString("term",
					mcp.Description("Case-insensitive text matched against name, description, usage and examples"),
				),
				mcp.WithString("category",
					mcp.Description("Category key, or \"all\""),
				),
			),
			Handler: s.HandleSearchCommands,
		},
		{
			Tool: mcp.NewTool("list_categories",
				mcp.WithDescription("List the command categories with their display names"),
			),
			Handler: s.HandleListCategories,
		},
	}
}

// HandleSearchCommands handles the search_commands tool.
func (s *Server) HandleSearchCommands(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state := catalog.Unfiltered()
	args := request.GetArguments()
	if v, ok := args["term"]; ok {
		term, ok := v.(string)
		if !ok {
			return mcp.NewToolResultError("term must be a string"), nil
		}
		state.SearchTerm = term
	}
	if v, ok := args["category"]; ok {
		category, ok := v.(string)
		if !ok {
			return mcp.NewToolResultError("category must be a string"), nil
		}
		if category != "" {
			state.Category = category
		}
	}

	result := catalog.Search(s.catalog.Commands(), state)
	logging.Debug(subsystem, "search_commands term=%q category=%q results=%d", state.SearchTerm, state.Category, result.Counters.Results)
	return jsonResult(result)
}

// HandleListCategories handles the list_categories tool.
func (s *Server) HandleListCategories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cats := catalog.Categories(s.catalog.Commands())
	if len(cats) == 0 {
		return mcp.NewToolResultText("No categories available"), nil
	}
	return jsonResult(cats)
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// Serve speaks MCP on in/out until ctx is cancelled or in is closed.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	logging.Info(subsystem, "Serving %d commands over stdio", s.catalog.Len())
	return server.NewStdioServer(s.mcp).Listen(ctx, in, out)
}
