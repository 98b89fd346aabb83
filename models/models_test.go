package models

import (
	"testing"

	"goverdict/domain/verdict"

	"github.com/stretchr/testify/assert"
)

func TestEvaluationRequest_Normalized(t *testing.T) {
	in := verdict.Input{
		Pain:        &verdict.PainScoreInput{OverallScore: 7},
		Competition: &verdict.CompetitionScoreInput{Score: 6},
		Market:      &verdict.MarketScoreInput{Score: 5},
		Filtering:   &verdict.FilteringMetrics{PostsAnalyzed: 40},
	}

	tests := []struct {
		name       string
		req        EvaluationRequest
		wantMode   EvaluationMode
		wantMarket bool
	}{
		{"default mode is full", EvaluationRequest{Input: in}, ModeFull, true},
		{"full keeps every dimension", EvaluationRequest{Mode: ModeFull, Input: in}, ModeFull, true},
		{"mvp drops extra dimensions", EvaluationRequest{Mode: ModeMVP, Input: in}, ModeMVP, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.req.Normalized()
			assert.Equal(t, tt.wantMode, got.Mode)
			assert.Equal(t, tt.wantMarket, got.Input.Market != nil)
			assert.NotNil(t, got.Input.Pain)
			assert.NotNil(t, got.Input.Competition)
		})
	}
}

func TestBatchResult_Summarize(t *testing.T) {
	b := BatchResult{Items: []BatchItemResult{
		{Index: 0, Record: &VerdictRecord{Verdict: verdict.ViabilityVerdict{Verdict: verdict.TierStrong}}},
		{Index: 1, Error: "invalid input"},
		{Index: 2, Record: &VerdictRecord{Verdict: verdict.ViabilityVerdict{Verdict: verdict.TierStrong}}},
		{Index: 3, Record: &VerdictRecord{Verdict: verdict.ViabilityVerdict{Verdict: verdict.TierNone}}},
	}}

	b.Summarize()

	assert.Equal(t, 4, b.Summary.Total)
	assert.Equal(t, 3, b.Summary.Succeeded)
	assert.Equal(t, 1, b.Summary.Failed)
	assert.Equal(t, 2, b.Summary.ByTier[verdict.TierStrong])
	assert.Equal(t, 1, b.Summary.ByTier[verdict.TierNone])
}
