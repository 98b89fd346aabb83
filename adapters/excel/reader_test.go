package excel

import (
	"os"
	"path/filepath"
	"testing"

	"goverdict/domain/core"
	"goverdict/domain/verdict"
	"goverdict/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeXLSX(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, v))
		}
	}
	path := filepath.Join(t.TempDir(), "batch.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestDataReader_CSV(t *testing.T) {
	path := writeCSV(t, ""+
		"Job_ID, Mode ,pain_score,pain_confidence,pain_signals,pain_wtp_count,competition_score,competitor_count,has_free_alternatives,market_maturity,competition_threats\n"+
		"job-a,mvp,8,high,120,0,7,6,yes,Mature,Notion; Coda ;\n"+
		",,,,,,,,,,\n"+
		"job-b,,6.5,,40,3,,,,,\n")

	reqs, err := NewDataReader(BatchFileConfig{FilePath: path}).ReadRequests()
	require.NoError(t, err)
	require.Len(t, reqs, 2)

	a := reqs[0]
	assert.Equal(t, "job-a", a.JobID)
	assert.Equal(t, models.ModeMVP, a.Mode)
	require.NotNil(t, a.Input.Pain)
	assert.Equal(t, 8.0, a.Input.Pain.OverallScore)
	assert.Equal(t, verdict.ConfidenceHigh, a.Input.Pain.Confidence)
	assert.Equal(t, 120, a.Input.Pain.TotalSignals)
	assert.Nil(t, a.Input.Pain.PostsAnalyzed)
	require.NotNil(t, a.Input.Competition)
	assert.True(t, a.Input.Competition.HasFreeAlternatives)
	assert.Equal(t, verdict.MaturityMature, a.Input.Competition.MarketMaturity)
	assert.Equal(t, []string{"Notion", "Coda"}, a.Input.Competition.Threats)
	assert.Nil(t, a.Input.Market)
	assert.Nil(t, a.Input.Timing)
	assert.Nil(t, a.Input.Filtering)

	b := reqs[1]
	assert.Equal(t, models.EvaluationMode(""), b.Mode)
	require.NotNil(t, b.Input.Pain)
	assert.Equal(t, verdict.ConfidenceMedium, b.Input.Pain.Confidence, "missing confidence defaults to medium")
	assert.Equal(t, 3, b.Input.Pain.WillingnessToPayCount)
	assert.Nil(t, b.Input.Competition)
}

func TestDataReader_XLSX(t *testing.T) {
	path := writeXLSX(t, [][]interface{}{
		{"job_id", "market_score", "penetration_required", "achievability", "timing_score", "timing_trend", "core_signals", "related_signals", "posts_analyzed", "sources", "pain_score", "pain_posts_analyzed"},
		{"job-x", 7.5, 12, "challenging", 6, "rising", 30, 10, 80, "reddit;hn", 7, 80},
	})

	reqs, err := NewDataReader(BatchFileConfig{FilePath: path}).ReadRequests()
	require.NoError(t, err)
	require.Len(t, reqs, 1)

	in := reqs[0].Input
	require.NotNil(t, in.Market)
	assert.Equal(t, 7.5, in.Market.Score)
	assert.Equal(t, 12.0, in.Market.PenetrationRequired)
	assert.Equal(t, verdict.AchievabilityChallenging, in.Market.Achievability)
	require.NotNil(t, in.Timing)
	assert.Equal(t, verdict.TrendRising, in.Timing.Trend)
	require.NotNil(t, in.Filtering)
	assert.Equal(t, 40, in.Filtering.TotalSignals())
	assert.Equal(t, []string{"reddit", "hn"}, in.Filtering.Sources)
	require.NotNil(t, in.Pain.PostsAnalyzed)
	assert.Equal(t, 80, *in.Pain.PostsAnalyzed)
}

func TestDataReader_NamedSheet(t *testing.T) {
	path := writeXLSX(t, [][]interface{}{{"pain_score"}, {5}})

	_, err := NewDataReader(BatchFileConfig{FilePath: path, SheetName: "Missing"}).ReadRequests()
	assert.Error(t, err)

	reqs, err := NewDataReader(BatchFileConfig{FilePath: path, SheetName: "Sheet1"}).ReadRequests()
	require.NoError(t, err)
	assert.Len(t, reqs, 1)
}

func TestDataReader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"header only", "pain_score\n", "header row"},
		{"bad number", "pain_score\nhigh\n", `row 2: column "pain_score"`},
		{"bad confidence", "pain_score,pain_confidence\n5,certain\n", "one of low, medium, high"},
		{"fractional count", "pain_score,pain_signals\n5,2.5\n", "an integer"},
		{"bad boolean", "competition_score,has_free_alternatives\n5,maybe\n", "a boolean"},
		{"row number skips blanks", "pain_score\n5\n,\nx\n", "row 4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDataReader(BatchFileConfig{FilePath: writeCSV(t, tt.content)}).ReadRequests()
			require.Error(t, err)
			assert.ErrorIs(t, err, core.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDataReader_MissingFile(t *testing.T) {
	_, err := NewDataReader(BatchFileConfig{FilePath: filepath.Join(t.TempDir(), "nope.csv")}).ReadRequests()
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestMapRequests_CountsStoredAsFloats(t *testing.T) {
	data := &ExcelData{Rows: []RawRowData{{ColPainScore: "6", ColPainSignals: "12.0"}}}
	reqs, err := MapRequests(data)
	require.NoError(t, err)
	assert.Equal(t, 12, reqs[0].Input.Pain.TotalSignals)
}
