// Package mcptools exposes the verdict service as MCP tools.
package mcptools

import (
	"goverdict/app"

	"github.com/mark3labs/mcp-go/server"
)

// Version is reported to MCP clients
const Version = "0.3.0"

// NewServer creates an MCP server with the verdict tools registered
func NewServer(service *app.VerdictService) *server.MCPServer {
	s := server.NewMCPServer(
		"goverdict",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	calculate := NewCalculateTool(service)
	s.AddTool(calculate.Definition(), calculate.Handle)

	thresholds := NewThresholdsTool(service)
	s.AddTool(thresholds.Definition(), thresholds.Handle)

	get := NewGetVerdictTool(service)
	s.AddTool(get.Definition(), get.Handle)

	return s
}
