package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"chroninotes/internal/application/commands"
	"chroninotes/internal/ports"
)

// RegisterSettingsTools adds the pomodoro preference tools to the MCP server.
func RegisterSettingsTools(s *server.MCPServer, store ports.SettingsStore) {
	s.AddTool(settingsGetTool(), settingsGetHandler(store))
	s.AddTool(settingsSetTool(), settingsSetHandler(store))
}

func settingsGetTool() mcp.Tool {
	return mcp.NewTool("settings_get",
		mcp.WithDescription("Read the pomodoro work and break durations in minutes."),
	)
}

func settingsGetHandler(store ports.SettingsStore) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		settings, err := commands.NewGetSettingsCommand(store).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return jsonResult(settings)
	}
}

func settingsSetTool() mcp.Tool {
	return mcp.NewTool("settings_set",
		mcp.WithDescription("Save the pomodoro work and break durations in minutes (1 to 1440)."),
		mcp.WithNumber("work_minutes",
			mcp.Description("Length of a work session"),
			mcp.Required(),
		),
		mcp.WithNumber("break_minutes",
			mcp.Description("Length of a break"),
			mcp.Required(),
		),
	)
}

func settingsSetHandler(store ports.SettingsStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewSetSettingsCommand(store,
			req.GetInt("work_minutes", 0),
			req.GetInt("break_minutes", 0),
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}
