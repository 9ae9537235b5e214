package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"chroninotes/internal/application/commands"
	"chroninotes/internal/domain"
	"chroninotes/internal/ports"
)

// RegisterWriteTools adds all mutating notes tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, repo ports.NotesRepository) {
	s.AddTool(createTool(), createHandler(repo))
	s.AddTool(createFolderTool(), createFolderHandler(repo))
	s.AddTool(updateTool(), updateHandler(repo))
	s.AddTool(deleteTool(), deleteHandler(repo))
}

// --- create ---

func createTool() mcp.Tool {
	return mcp.NewTool("create",
		mcp.WithDescription("Create an empty note. The file name is derived from the title and made unique within the folder."),
		mcp.WithString("parent_id",
			mcp.Description("Id of the folder to create the note in. Omit for the notes root."),
		),
		mcp.WithString("title",
			mcp.Description("Note title (default: Untitled)"),
		),
		mcp.WithString("icon",
			mcp.Description("Short glyph shown next to the title"),
		),
	)
}

func createHandler(repo ports.NotesRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewCreateNoteCommand(repo,
			req.GetString("parent_id", ""),
			req.GetString("title", ""),
			req.GetString("icon", ""),
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return jsonResult(result.Entry)
	}
}

// --- create_folder ---

func createFolderTool() mcp.Tool {
	return mcp.NewTool("create_folder",
		mcp.WithDescription("Create a folder. The directory name is derived from the title and made unique within the parent."),
		mcp.WithString("parent_id",
			mcp.Description("Id of the parent folder. Omit for the notes root."),
		),
		mcp.WithString("title",
			mcp.Description("Folder title (default: New Folder)"),
		),
		mcp.WithString("icon",
			mcp.Description("Short glyph shown next to the title"),
		),
	)
}

func createFolderHandler(repo ports.NotesRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewCreateFolderCommand(repo,
			req.GetString("parent_id", ""),
			req.GetString("title", ""),
			req.GetString("icon", ""),
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return jsonResult(result.Entry)
	}
}

// --- update ---

func updateTool() mcp.Tool {
	return mcp.NewTool("update",
		mcp.WithDescription("Change the title, icon or content of an entry. Omitted fields are kept. The id does not change. Content is ignored for folders."),
		mcp.WithString("id",
			mcp.Description("Entry id"),
			mcp.Required(),
		),
		mcp.WithString("title",
			mcp.Description("New title"),
		),
		mcp.WithString("icon",
			mcp.Description("New icon"),
		),
		mcp.WithObject("content",
			mcp.Description("New content document, e.g. {\"type\":\"doc\",\"content\":[]}. A JSON string is accepted too."),
		),
	)
}

func updateHandler(repo ports.NotesRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		patch, err := patchFromArgs(req.GetArguments())
		if err != nil {
			return toolError(err)
		}

		result, err := commands.NewUpdateCommand(repo, req.GetString("id", ""), patch).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return jsonResult(result.Entry)
	}
}

// patchFromArgs keeps absent fields nil so they are left untouched
func patchFromArgs(args map[string]any) (domain.Patch, error) {
	var patch domain.Patch

	if v, ok := args["title"].(string); ok {
		patch.Title = &v
	}
	if v, ok := args["icon"].(string); ok {
		patch.Icon = &v
	}

	switch v := args["content"].(type) {
	case nil:
	case string:
		patch.Content = json.RawMessage(v)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return patch, fmt.Errorf("invalid content: %w", err)
		}
		patch.Content = data
	}

	return patch, nil
}

// --- delete ---

func deleteTool() mcp.Tool {
	return mcp.NewTool("delete",
		mcp.WithDescription("Permanently delete a note, or a folder with everything inside it. Deleting a missing id succeeds."),
		mcp.WithString("id",
			mcp.Description("Entry id"),
			mcp.Required(),
		),
	)
}

func deleteHandler(repo ports.NotesRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewDeleteCommand(repo, req.GetString("id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}
