package viability

import (
	"fmt"

	"goverdict/domain/verdict"
)

// SampleLabelFor buckets a posts-analyzed count
func SampleLabelFor(cfg SampleSizeConfig, postsAnalyzed int) verdict.SampleLabel {
	switch {
	case postsAnalyzed >= cfg.High:
		return verdict.SampleHighConfidence
	case postsAnalyzed >= cfg.Moderate:
		return verdict.SampleModerateConfidence
	case postsAnalyzed >= cfg.Low:
		return verdict.SampleLowConfidence
	default:
		return verdict.SampleVeryLimited
	}
}

// EstimateSampleSize classifies how much data the verdict rests on
func EstimateSampleSize(cfg SampleSizeConfig, postsAnalyzed, signalsFound int) verdict.SampleSize {
	label := SampleLabelFor(cfg, postsAnalyzed)

	var description string
	switch label {
	case verdict.SampleHighConfidence:
		description = fmt.Sprintf("%d posts analyzed: enough data for a confident verdict", postsAnalyzed)
	case verdict.SampleModerateConfidence:
		description = fmt.Sprintf("%d posts analyzed: reasonable data, verdict is fairly reliable", postsAnalyzed)
	case verdict.SampleLowConfidence:
		description = fmt.Sprintf("%d posts analyzed: limited data, treat the verdict as directional", postsAnalyzed)
	default:
		description = fmt.Sprintf("Only %d posts analyzed: very limited data, verdict may change substantially", postsAnalyzed)
	}

	return verdict.SampleSize{
		PostsAnalyzed: postsAnalyzed,
		SignalsFound:  signalsFound,
		Label:         label,
		Description:   description,
	}
}

// ScoreRangeFor returns the ± interval around score, or nil when the sample
// is large enough that no interval is reported
func ScoreRangeFor(cfg SampleSizeConfig, score float64, label verdict.SampleLabel) *verdict.ScoreRange {
	var margin float64
	switch label {
	case verdict.SampleLowConfidence:
		margin = cfg.LowMargin
	case verdict.SampleVeryLimited:
		margin = cfg.VeryLimitedMargin
	default:
		return nil
	}

	return &verdict.ScoreRange{
		Low:  round1(clampScore(score - margin)),
		High: round1(clampScore(score + margin)),
	}
}
