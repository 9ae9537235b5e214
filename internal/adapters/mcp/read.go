package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"chroninotes/internal/application/commands"
	"chroninotes/internal/domain"
	"chroninotes/internal/ports"
)

// RegisterReadTools adds all read-only notes tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, repo ports.NotesRepository) {
	s.AddTool(listTool(), listHandler(repo))
	s.AddTool(getTool(), getHandler(repo))
	s.AddTool(treeTool(), treeHandler(repo))
	s.AddTool(rootTool(), rootHandler(repo))
}

// --- list ---

func listTool() mcp.Tool {
	return mcp.NewTool("list",
		mcp.WithDescription("List every note and folder as JSON. Entries carry id, title, icon, isFolder, parentId and timestamps; content is always null here."),
		mcp.WithBoolean("nested",
			mcp.Description("Nest entries under their folders via a children field instead of returning a flat list."),
		),
	)
}

func listHandler(repo ports.NotesRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		entries, err := commands.NewListCommand(repo).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		if req.GetBool("nested", false) {
			nested := domain.Nest(entries)
			if nested == nil {
				nested = []domain.Entry{}
			}
			return jsonResult(nested)
		}
		return jsonResult(entries)
	}
}

// --- get ---

func getTool() mcp.Tool {
	return mcp.NewTool("get",
		mcp.WithDescription("Read one note or folder by id. Notes include their content document."),
		mcp.WithString("id",
			mcp.Description("Entry id: the path relative to the notes root, e.g. projects/roadmap"),
			mcp.Required(),
		),
	)
}

func getHandler(repo ports.NotesRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		entry, err := commands.NewGetCommand(repo, req.GetString("id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return jsonResult(entry)
	}
}

// --- tree ---

func treeTool() mcp.Tool {
	return mcp.NewTool("tree",
		mcp.WithDescription("Display the notes hierarchy as an indented tree."),
	)
}

func treeHandler(repo ports.NotesRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		root, err := commands.NewBuildTreeCommand(repo).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(root.Children) == 0 {
			return mcp.NewToolResultText("No notes yet."), nil
		}
		var sb strings.Builder
		renderTree(&sb, root, "")
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func renderTree(sb *strings.Builder, node *domain.TreeNode, prefix string) {
	if !node.IsRoot() {
		fmt.Fprintf(sb, "%s%s %s  (%s)\n", prefix, node.Entry.Icon, node.Entry.Title, node.Entry.ID)
		prefix += "  "
	}
	for _, child := range node.Children {
		renderTree(sb, child, prefix)
	}
}

// --- root ---

func rootTool() mcp.Tool {
	return mcp.NewTool("root",
		mcp.WithDescription("Get the filesystem path of the notes root. The directory is created if missing."),
	)
}

func rootHandler(repo ports.NotesRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewRootCommand(repo, nil, false).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Path), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError(fmt.Errorf("encoding result: %w", err))
	}
	return mcp.NewToolResultText(string(data)), nil
}
