package excel

import (
	"fmt"
	"strconv"
	"strings"

	"goverdict/domain/core"
	"goverdict/domain/verdict"
	"goverdict/models"
)

// MapRequests converts every row of data into an evaluation request.
// Errors name the sheet row and column that failed.
func MapRequests(data *ExcelData) ([]models.EvaluationRequest, error) {
	reqs := make([]models.EvaluationRequest, 0, len(data.Rows))
	for i, row := range data.Rows {
		rowNum := i + 2
		if i < len(data.RowNumbers) {
			rowNum = data.RowNumbers[i]
		}
		req, err := mapRow(row)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", core.ErrInvalidInput, rowNum, err)
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

func mapRow(row RawRowData) (models.EvaluationRequest, error) {
	p := rowParser{row: row}

	req := models.EvaluationRequest{
		JobID: row[ColJobID],
		Mode:  models.EvaluationMode(strings.ToLower(row[ColMode])),
	}

	if p.has(ColPainScore) {
		req.Input.Pain = &verdict.PainScoreInput{
			OverallScore:          p.float(ColPainScore),
			Confidence:            p.confidence(ColPainConfidence),
			TotalSignals:          p.int(ColPainSignals),
			WillingnessToPayCount: p.int(ColPainWTPCount),
			PostsAnalyzed:         p.optionalInt(ColPainPosts),
			AverageIntensity:      p.optionalFloat(ColPainAvgIntensity),
		}
	}

	if p.has(ColCompetitionScore) {
		req.Input.Competition = &verdict.CompetitionScoreInput{
			Score:               p.float(ColCompetitionScore),
			Confidence:          p.confidence(ColCompetitionConfidence),
			CompetitorCount:     p.int(ColCompetitorCount),
			Threats:             p.list(ColCompetitionThreats),
			HasFreeAlternatives: p.bool(ColFreeAlternatives),
			MarketMaturity:      verdict.MarketMaturity(strings.ToLower(row[ColMarketMaturity])),
		}
	}

	if p.has(ColMarketScore) {
		req.Input.Market = &verdict.MarketScoreInput{
			Score:               p.float(ColMarketScore),
			Confidence:          p.confidence(ColMarketConfidence),
			PenetrationRequired: p.float(ColPenetrationRequired),
			Achievability:       verdict.Achievability(strings.ToLower(row[ColAchievability])),
		}
	}

	if p.has(ColTimingScore) {
		req.Input.Timing = &verdict.TimingScoreInput{
			Score:          p.float(ColTimingScore),
			Confidence:     p.confidence(ColTimingConfidence),
			Trend:          verdict.Trend(strings.ToLower(row[ColTimingTrend])),
			TailwindsCount: p.int(ColTailwinds),
			HeadwindsCount: p.int(ColHeadwinds),
			TimingWindow:   row[ColTimingWindow],
		}
	}

	if p.has(ColCoreSignals) || p.has(ColRelatedSignals) || p.has(ColPostsAnalyzed) {
		req.Input.Filtering = &verdict.FilteringMetrics{
			CoreSignals:    p.int(ColCoreSignals),
			RelatedSignals: p.int(ColRelatedSignals),
			PostsAnalyzed:  p.int(ColPostsAnalyzed),
			Sources:        p.list(ColSources),
		}
	}

	return req, p.err
}

// rowParser converts cells and keeps the first conversion error
type rowParser struct {
	row RawRowData
	err error
}

func (p *rowParser) has(col string) bool {
	_, ok := p.row[col]
	return ok
}

func (p *rowParser) fail(col, value, want string) {
	if p.err == nil {
		p.err = fmt.Errorf("column %q: %q is not %s", col, value, want)
	}
}

func (p *rowParser) float(col string) float64 {
	v, ok := p.row[col]
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(col, v, "a number")
		return 0
	}
	return f
}

func (p *rowParser) int(col string) int {
	v, ok := p.row[col]
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		// Spreadsheets often store counts as 12.0
		f, ferr := strconv.ParseFloat(v, 64)
		if ferr != nil || f != float64(int(f)) {
			p.fail(col, v, "an integer")
			return 0
		}
		n = int(f)
	}
	return n
}

func (p *rowParser) optionalInt(col string) *int {
	if !p.has(col) {
		return nil
	}
	n := p.int(col)
	return &n
}

func (p *rowParser) optionalFloat(col string) *float64 {
	if !p.has(col) {
		return nil
	}
	f := p.float(col)
	return &f
}

func (p *rowParser) bool(col string) bool {
	v, ok := p.row[col]
	if !ok {
		return false
	}
	switch strings.ToLower(v) {
	case "yes", "y":
		return true
	case "no", "n":
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(col, v, "a boolean")
		return false
	}
	return b
}

func (p *rowParser) confidence(col string) verdict.Confidence {
	v, ok := p.row[col]
	if !ok {
		return verdict.ConfidenceMedium
	}
	c := verdict.Confidence(strings.ToLower(v))
	switch c {
	case verdict.ConfidenceLow, verdict.ConfidenceMedium, verdict.ConfidenceHigh:
		return c
	}
	p.fail(col, v, "one of low, medium, high")
	return verdict.ConfidenceLow
}

func (p *rowParser) list(col string) []string {
	v, ok := p.row[col]
	if !ok {
		return nil
	}
	var out []string
	for _, item := range strings.Split(v, listSeparator) {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
