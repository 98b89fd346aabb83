package viability

import (
	"testing"

	"goverdict/domain/verdict"

	"github.com/stretchr/testify/assert"
)

func TestClassifier_Tier(t *testing.T) {
	c := NewClassifier(DefaultConfig().Tiers)

	tests := []struct {
		score float64
		want  verdict.Tier
	}{
		{10, verdict.TierStrong},
		{7.5, verdict.TierStrong},
		{7.49, verdict.TierMixed},
		{5.0, verdict.TierMixed},
		{4.99, verdict.TierWeak},
		{4.0, verdict.TierWeak},
		{3.99, verdict.TierNone},
		{2.5, verdict.TierNone},
		{0, verdict.TierNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Tier(tt.score), "tier(%.2f)", tt.score)
	}
}

func TestClassifier_ForcedTierOverridesScore(t *testing.T) {
	c := NewClassifier(DefaultConfig().Tiers)

	assert.Equal(t, verdict.TierWeak, c.Classify(9, verdict.TierWeak), "forced tier lowers strong")
	assert.Equal(t, verdict.TierWeak, c.Classify(5, verdict.TierWeak), "forced tier lowers mixed")
	assert.Equal(t, verdict.TierWeak, c.Classify(4.2, verdict.TierWeak))
	assert.Equal(t, verdict.TierWeak, c.Classify(2, verdict.TierWeak), "forced tier lifts none")
	assert.Equal(t, verdict.TierWeak, c.Classify(0, verdict.TierWeak))
	assert.Equal(t, verdict.TierMixed, c.Classify(6, ""))
	assert.Equal(t, verdict.TierNone, c.Classify(2, ""))
}

func TestRawLabel(t *testing.T) {
	assert.Equal(t, "STRONG SIGNAL", RawLabel(verdict.TierStrong))
	assert.Equal(t, "MIXED SIGNAL", RawLabel(verdict.TierMixed))
	assert.Equal(t, "WEAK SIGNAL", RawLabel(verdict.TierWeak))
	assert.Equal(t, "DO NOT PURSUE", RawLabel(verdict.TierNone))
	assert.Equal(t, "INSUFFICIENT DATA", RawLabel(verdict.TierInsufficient))
}

func TestCalibratedLabel(t *testing.T) {
	sample := func(label verdict.SampleLabel) *verdict.SampleSize {
		return &verdict.SampleSize{Label: label}
	}

	tests := []struct {
		name   string
		tier   verdict.Tier
		sample *verdict.SampleSize
		want   string
	}{
		{"no sample info", verdict.TierStrong, nil, LabelStrong},
		{"very limited strong", verdict.TierStrong, sample(verdict.SampleVeryLimited), LabelPromisingLimited},
		{"very limited mixed", verdict.TierMixed, sample(verdict.SampleVeryLimited), LabelUncertainLimited},
		{"very limited weak", verdict.TierWeak, sample(verdict.SampleVeryLimited), LabelWeakLimited},
		{"very limited none is never hedged", verdict.TierNone, sample(verdict.SampleVeryLimited), LabelDoNotPursue},
		{"low confidence strong", verdict.TierStrong, sample(verdict.SampleLowConfidence), LabelStrongNeedsData},
		{"low confidence mixed", verdict.TierMixed, sample(verdict.SampleLowConfidence), LabelMixed},
		{"moderate strong", verdict.TierStrong, sample(verdict.SampleModerateConfidence), LabelStrong},
		{"high weak", verdict.TierWeak, sample(verdict.SampleHighConfidence), LabelWeak},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalibratedLabel(tt.tier, tt.sample))
		})
	}
}

func TestDescription_EveryTier(t *testing.T) {
	seen := make(map[string]bool)
	for _, tier := range []verdict.Tier{verdict.TierStrong, verdict.TierMixed, verdict.TierWeak, verdict.TierNone, verdict.TierInsufficient} {
		d := Description(tier)
		assert.NotEmpty(t, d)
		assert.False(t, seen[d], "description for %s is reused", tier)
		seen[d] = true
	}
}
