package mcptools

import (
	"context"
	"fmt"

	"goverdict/app"
	"goverdict/internal/config"

	"github.com/mark3labs/mcp-go/mcp"
)

// ThresholdsTool handles the viability_thresholds MCP tool.
type ThresholdsTool struct {
	service *app.VerdictService
}

// NewThresholdsTool creates a ThresholdsTool backed by service.
func NewThresholdsTool(service *app.VerdictService) *ThresholdsTool {
	return &ThresholdsTool{service: service}
}

// Definition returns the MCP tool definition for viability_thresholds.
func (t *ThresholdsTool) Definition() mcp.Tool {
	return mcp.NewTool("viability_thresholds",
		mcp.WithDescription("Show the weights and thresholds verdicts are computed with, as YAML."),
	)
}

// Handle processes the viability_thresholds tool call.
func (t *ThresholdsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, err := config.MarshalEngineConfig(t.service.Thresholds())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode thresholds: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("# config_hash: %s\n%s", t.service.ConfigHash(), out)), nil
}
