package mcptools

import (
	"context"
	"fmt"

	"goverdict/app"

	"github.com/mark3labs/mcp-go/mcp"
)

// GetVerdictTool handles the get_verdict MCP tool.
type GetVerdictTool struct {
	service *app.VerdictService
}

// NewGetVerdictTool creates a GetVerdictTool backed by service.
func NewGetVerdictTool(service *app.VerdictService) *GetVerdictTool {
	return &GetVerdictTool{service: service}
}

// Definition returns the MCP tool definition for get_verdict.
func (t *GetVerdictTool) Definition() mcp.Tool {
	return mcp.NewTool("get_verdict",
		mcp.WithDescription("Fetch a stored verdict by ID. Requires the server to run with a database."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Verdict ID returned by calculate_viability"),
		),
	)
}

// Handle processes the get_verdict tool call.
func (t *GetVerdictTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("'id' is required"), nil
	}

	record, err := t.service.Get(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get verdict: %v", err)), nil
	}
	return mcp.NewToolResultText(renderVerdict(record)), nil
}
