package viability

import (
	"testing"

	"goverdict/domain/verdict"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int { return &v }

func TestAdjustMarketScore(t *testing.T) {
	cfg := DefaultConfig().MarketAdjustment

	tests := []struct {
		name        string
		market      float64
		pain        *verdict.PainScoreInput
		competition *verdict.CompetitionScoreInput
		want        float64
		reasons     int
	}{
		{
			name:   "no purchase evidence available leaves score untouched",
			market: 8,
			want:   8,
		},
		{
			name:    "zero wtp",
			market:  8,
			pain:    &verdict.PainScoreInput{WillingnessToPayCount: 0, TotalSignals: 40},
			want:    2.4,
			reasons: 1,
		},
		{
			name:        "all three factors",
			market:      8,
			pain:        &verdict.PainScoreInput{WillingnessToPayCount: 2, AverageIntensity: floatPtr(0.5)},
			competition: &verdict.CompetitionScoreInput{HasFreeAlternatives: true},
			want:        1.9,
			reasons:     3,
		},
		{
			name:    "mild pain",
			market:  6,
			pain:    &verdict.PainScoreInput{WillingnessToPayCount: 12, AverageIntensity: floatPtr(0.2)},
			want:    3,
			reasons: 1,
		},
		{
			name:        "floored at one",
			market:      2,
			pain:        &verdict.PainScoreInput{WillingnessToPayCount: 0},
			competition: &verdict.CompetitionScoreInput{HasFreeAlternatives: true},
			want:        1,
			reasons:     2,
		},
		{
			name:    "floor never raises a score already below it",
			market:  0.5,
			pain:    &verdict.PainScoreInput{WillingnessToPayCount: 0},
			want:    0.5,
			reasons: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			market := &verdict.MarketScoreInput{Score: tt.market}
			adj := AdjustMarketScore(cfg, market, tt.pain, tt.competition)

			assert.Equal(t, tt.market, adj.RawScore)
			assert.InDelta(t, tt.want, adj.AdjustedScore, 1e-9)
			assert.Len(t, adj.Reasons, tt.reasons)
			assert.LessOrEqual(t, adj.WTPFactor, 1.0)
			assert.LessOrEqual(t, adj.SeverityFactor, 1.0)
			assert.LessOrEqual(t, adj.FreeAlternativeFactor, 1.0)
		})
	}
}
