package mcptools

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// jsonArg decodes an argument that may arrive as a JSON string or as an
// already-decoded object
func jsonArg(req mcp.CallToolRequest, key string, dst interface{}) error {
	raw, ok := req.GetArguments()[key]
	if !ok || raw == nil {
		return fmt.Errorf("'%s' is required", key)
	}

	var data []byte
	switch v := raw.(type) {
	case string:
		if v == "" {
			return fmt.Errorf("'%s' is required", key)
		}
		data = []byte(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("'%s' is not valid JSON: %v", key, err)
		}
		data = b
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("'%s' is not valid JSON: %v", key, err)
	}
	return nil
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
