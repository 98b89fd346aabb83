package mcptools

import (
	"context"
	"fmt"
	"strings"

	"goverdict/app"
	"goverdict/domain/verdict"
	"goverdict/models"

	"github.com/mark3labs/mcp-go/mcp"
)

// CalculateTool handles the calculate_viability MCP tool.
type CalculateTool struct {
	service *app.VerdictService
}

// NewCalculateTool creates a CalculateTool backed by service.
func NewCalculateTool(service *app.VerdictService) *CalculateTool {
	return &CalculateTool{service: service}
}

// Definition returns the MCP tool definition for calculate_viability.
func (t *CalculateTool) Definition() mcp.Tool {
	return mcp.NewTool("calculate_viability",
		mcp.WithDescription(
			"Fuse pain, competition, market and timing research scores into a viability verdict. "+
				"Returns the 0-10 score, the verdict tier, red flags, dealbreakers and recommendations.",
		),
		mcp.WithString("input",
			mcp.Required(),
			mcp.Description(`JSON object with optional "pain", "competition", "market", "timing" and "filtering" sections`),
		),
		mcp.WithString("mode",
			mcp.Description(`"full" (default) or "mvp" to score pain and competition only`),
		),
		mcp.WithString("job_id",
			mcp.Description("Research job the verdict belongs to"),
		),
		mcp.WithString("format",
			mcp.Description(`"markdown" (default) or "json"`),
		),
	)
}

// Handle processes the calculate_viability tool call.
func (t *CalculateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input verdict.Input
	if err := jsonArg(req, "input", &input); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	format := req.GetString("format", "markdown")
	if format != "markdown" && format != "json" {
		return mcp.NewToolResultError(fmt.Sprintf("unknown format %q: use markdown or json", format)), nil
	}

	record, err := t.service.Evaluate(ctx, models.EvaluationRequest{
		JobID: req.GetString("job_id", ""),
		Mode:  models.EvaluationMode(req.GetString("mode", "")),
		Input: input,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to calculate viability: %v", err)), nil
	}

	if format == "json" {
		return jsonResult(record)
	}
	return mcp.NewToolResultText(renderVerdict(record)), nil
}

func renderVerdict(record *models.VerdictRecord) string {
	v := record.Verdict
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("## %s (%.1f/10)\n\n", v.VerdictLabel, v.OverallScore))
	sb.WriteString(v.VerdictDescription + "\n\n")
	sb.WriteString(fmt.Sprintf("- **Tier**: %s\n", v.Verdict))
	sb.WriteString(fmt.Sprintf("- **Confidence**: %s\n", v.Confidence))
	sb.WriteString(fmt.Sprintf("- **Data**: %s (%s)\n", v.DataSufficiency, v.DataSufficiencyReason))
	if v.ScoreRange != nil {
		sb.WriteString(fmt.Sprintf("- **Likely range**: %.1f to %.1f\n", v.ScoreRange.Low, v.ScoreRange.High))
	}
	sb.WriteString(fmt.Sprintf("- **Verdict ID**: %s\n", record.ID))

	if len(v.Dimensions) > 0 {
		sb.WriteString("\n### Dimensions\n\n")
		for _, d := range v.Dimensions {
			sb.WriteString(fmt.Sprintf("- %s: %.1f (%s, weight %.0f%%)\n", d.Name, d.Score, d.Status, d.Weight*100))
		}
	}

	if len(v.RedFlags) > 0 {
		sb.WriteString("\n### Red flags\n\n")
		for _, f := range v.RedFlags {
			sb.WriteString(fmt.Sprintf("- [%s] **%s**: %s\n", f.Severity, f.Title, f.Message))
		}
	}

	if len(v.Dealbreakers) > 0 {
		sb.WriteString("\n### Dealbreakers\n\n")
		for _, d := range v.Dealbreakers {
			sb.WriteString("- " + d + "\n")
		}
	}

	if len(v.Recommendations) > 0 {
		sb.WriteString("\n### Recommendations\n\n")
		for i, r := range v.Recommendations {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, r))
		}
	}

	return sb.String()
}
