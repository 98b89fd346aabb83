package viability

import "goverdict/domain/verdict"

// Verdict labels
const (
	LabelStrong       = "STRONG SIGNAL"
	LabelMixed        = "MIXED SIGNAL"
	LabelWeak         = "WEAK SIGNAL"
	LabelDoNotPursue  = "DO NOT PURSUE"
	LabelInsufficient = "INSUFFICIENT DATA"

	LabelPromisingLimited = "PROMISING — LIMITED DATA"
	LabelUncertainLimited = "UNCERTAIN — LIMITED DATA"
	LabelWeakLimited      = "WEAK — LIMITED DATA"
	LabelStrongNeedsData  = "STRONG — NEEDS MORE DATA"
)

// Classifier maps final scores to verdict tiers and labels
type Classifier struct {
	tiers TierThresholds
}

// NewClassifier creates a classifier with the given tier thresholds
func NewClassifier(tiers TierThresholds) *Classifier {
	return &Classifier{tiers: tiers}
}

// Tier partitions the 0-10 scale into verdict tiers
func (c *Classifier) Tier(score float64) verdict.Tier {
	switch {
	case score >= c.tiers.Strong:
		return verdict.TierStrong
	case score >= c.tiers.Mixed:
		return verdict.TierMixed
	case score >= c.tiers.Weak:
		return verdict.TierWeak
	default:
		return verdict.TierNone
	}
}

// Classify returns the tier for a score. A tier forced by a rule wins
// regardless of the score.
func (c *Classifier) Classify(score float64, forced verdict.Tier) verdict.Tier {
	if forced != "" {
		return forced
	}
	return c.Tier(score)
}

// RawLabel is the label before any sample-size softening
func RawLabel(tier verdict.Tier) string {
	switch tier {
	case verdict.TierStrong:
		return LabelStrong
	case verdict.TierMixed:
		return LabelMixed
	case verdict.TierWeak:
		return LabelWeak
	case verdict.TierNone:
		return LabelDoNotPursue
	default:
		return LabelInsufficient
	}
}

// CalibratedLabel hedges positive labels when the sample is small. A
// failing verdict is never hedged.
func CalibratedLabel(tier verdict.Tier, sample *verdict.SampleSize) string {
	if sample == nil {
		return RawLabel(tier)
	}

	switch sample.Label {
	case verdict.SampleVeryLimited:
		switch tier {
		case verdict.TierStrong:
			return LabelPromisingLimited
		case verdict.TierMixed:
			return LabelUncertainLimited
		case verdict.TierWeak:
			return LabelWeakLimited
		}
	case verdict.SampleLowConfidence:
		if tier == verdict.TierStrong {
			return LabelStrongNeedsData
		}
	}
	return RawLabel(tier)
}

// Description is the one-sentence explanation shown next to the label
func Description(tier verdict.Tier) string {
	switch tier {
	case verdict.TierStrong:
		return "Evidence across dimensions supports pursuing this idea."
	case verdict.TierMixed:
		return "Some evidence supports this idea, but key risks need to be resolved first."
	case verdict.TierWeak:
		return "Evidence is thin or contradicts the idea; pivot or validate further before investing."
	case verdict.TierNone:
		return "The research does not support pursuing this idea."
	default:
		return "Not enough research data was available to produce a verdict."
	}
}
