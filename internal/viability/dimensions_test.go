package viability

import (
	"testing"

	"goverdict/domain/verdict"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	th := DefaultConfig().Status

	assert.Equal(t, verdict.StatusStrong, StatusFor(th, 7))
	assert.Equal(t, verdict.StatusAdequate, StatusFor(th, 6.9))
	assert.Equal(t, verdict.StatusAdequate, StatusFor(th, 5))
	assert.Equal(t, verdict.StatusNeedsWork, StatusFor(th, 4.9))
	assert.Equal(t, verdict.StatusNeedsWork, StatusFor(th, 3))
	assert.Equal(t, verdict.StatusCritical, StatusFor(th, 2.9))
}

func TestWeakestDimension(t *testing.T) {
	assert.Nil(t, WeakestDimension(nil))

	dims := []verdict.DimensionScore{
		{Name: verdict.DimensionPain, Score: 6},
		{Name: verdict.DimensionCompetition, Score: 4},
		{Name: verdict.DimensionMarket, Score: 4},
		{Name: verdict.DimensionTiming, Score: 8},
	}
	w := WeakestDimension(dims)
	require.NotNil(t, w)
	assert.Equal(t, verdict.DimensionCompetition, w.Name, "ties go to the first dimension")
}

func TestOverallConfidence(t *testing.T) {
	dims := []verdict.DimensionScore{
		{Weight: 0.6, Confidence: verdict.ConfidenceHigh},
		{Weight: 0.4, Confidence: verdict.ConfidenceMedium},
	}

	assert.Equal(t, verdict.ConfidenceHigh, OverallConfidence(dims, nil))
	assert.Equal(t, verdict.ConfidenceMedium, OverallConfidence(dims, &verdict.SampleSize{Label: verdict.SampleLowConfidence}))
	assert.Equal(t, verdict.ConfidenceLow, OverallConfidence(dims, &verdict.SampleSize{Label: verdict.SampleVeryLimited}))
	assert.Equal(t, verdict.ConfidenceLow, OverallConfidence(nil, nil))

	lowDims := []verdict.DimensionScore{
		{Weight: 0.5, Confidence: verdict.ConfidenceLow},
		{Weight: 0.5, Confidence: verdict.ConfidenceMedium},
	}
	assert.Equal(t, verdict.ConfidenceMedium, OverallConfidence(lowDims, nil))
}

func TestDataSufficiency(t *testing.T) {
	all := verdict.Availability{Pain: true, Competition: true, Market: true, Timing: true}
	two := verdict.Availability{Pain: true, Competition: true}

	tests := []struct {
		name   string
		avail  verdict.Availability
		sample *verdict.SampleSize
		want   verdict.Sufficiency
	}{
		{"nothing", verdict.Availability{}, nil, verdict.SufficiencyInsufficient},
		{"one dimension", verdict.Availability{Pain: true}, nil, verdict.SufficiencyLimited},
		{"two dimensions tiny sample", two, &verdict.SampleSize{Label: verdict.SampleVeryLimited}, verdict.SufficiencyLimited},
		{"two dimensions", two, nil, verdict.SufficiencyPartial},
		{"all with low sample", all, &verdict.SampleSize{Label: verdict.SampleLowConfidence}, verdict.SufficiencyPartial},
		{"all with good sample", all, &verdict.SampleSize{Label: verdict.SampleHighConfidence}, verdict.SufficiencySufficient},
		{"all without sample info", all, nil, verdict.SufficiencySufficient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason := DataSufficiency(tt.avail, tt.sample)
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, reason)
		})
	}
}

func TestDealbreakers(t *testing.T) {
	dims := []verdict.DimensionScore{
		{Name: verdict.DimensionPain, Score: 2, Status: verdict.StatusCritical, Summary: "3 pain signals"},
		{Name: verdict.DimensionCompetition, Score: 6, Status: verdict.StatusAdequate},
	}
	adjustments := []verdict.Adjustment{
		{Rule: "competition_saturation_cap", Reason: "capped"},
		{Rule: "wtp_kill_switch", Forced: verdict.TierWeak, Reason: "forced weak"},
	}

	got := Dealbreakers(dims, adjustments)

	require.Len(t, got, 2)
	assert.Contains(t, got[0], "Pain is critical (2.0/10)")
	assert.Equal(t, "forced weak", got[1])
	assert.NotNil(t, Dealbreakers(nil, nil))
}

func TestRecommendations_OrderAndLimit(t *testing.T) {
	cfg := DefaultConfig()
	dims := []verdict.DimensionScore{
		{Name: verdict.DimensionPain, Score: 4, Status: verdict.StatusNeedsWork},
		{Name: verdict.DimensionCompetition, Score: 2, Status: verdict.StatusCritical},
	}
	flags := []verdict.RedFlag{
		{Severity: verdict.SeverityMedium, Title: FlagCompetitiveMarket},
		{Severity: verdict.SeverityHigh, Title: FlagNoPurchaseIntent},
	}
	avail := verdict.Availability{Pain: true, Competition: true}
	sample := &verdict.SampleSize{PostsAnalyzed: 10, Label: verdict.SampleVeryLimited}

	got := Recommendations(cfg, dims, flags, avail, sample)

	require.Len(t, got, cfg.MaxRecommendations)
	assert.Equal(t, flagRecommendations[FlagNoPurchaseIntent], got[0])
	assert.Equal(t, dimensionRecommendations[verdict.DimensionCompetition], got[1], "weakest dimension first")
	assert.Equal(t, dimensionRecommendations[verdict.DimensionPain], got[2])
	assert.Equal(t, missingRecommendations[verdict.DimensionMarket], got[3])
	assert.Equal(t, missingRecommendations[verdict.DimensionTiming], got[4])
}

func TestRecommendations_SampleAdvice(t *testing.T) {
	cfg := DefaultConfig()
	avail := verdict.Availability{Pain: true, Competition: true, Market: true, Timing: true}
	sample := &verdict.SampleSize{PostsAnalyzed: 30, Label: verdict.SampleLowConfidence}

	got := Recommendations(cfg, nil, nil, avail, sample)

	assert.Equal(t, []string{"Analyze at least 50 posts before committing; only 30 were analyzed"}, got)
}

func TestRecommendations_NothingToSay(t *testing.T) {
	avail := verdict.Availability{Pain: true, Competition: true, Market: true, Timing: true}
	got := Recommendations(DefaultConfig(), nil, nil, avail, nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
