package viability

import (
	"fmt"
	"sort"
	"strings"

	"goverdict/domain/verdict"

	"gonum.org/v1/gonum/floats"
)

// StatusFor grades a single dimension score
func StatusFor(t StatusThresholds, score float64) verdict.DimensionStatus {
	switch {
	case score >= t.Strong:
		return verdict.StatusStrong
	case score >= t.Adequate:
		return verdict.StatusAdequate
	case score >= t.NeedsWork:
		return verdict.StatusNeedsWork
	default:
		return verdict.StatusCritical
	}
}

func dimensionTitle(name verdict.DimensionName) string {
	s := string(name)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func painSummary(p *verdict.PainScoreInput) string {
	return fmt.Sprintf("%d pain signals, %d mention willingness to pay", p.TotalSignals, p.WillingnessToPayCount)
}

func competitionSummary(c *verdict.CompetitionScoreInput) string {
	maturity := "unknown-maturity"
	if c.MarketMaturity != "" {
		maturity = string(c.MarketMaturity)
	}
	s := fmt.Sprintf("%d competitors in a %s market", c.CompetitorCount, maturity)
	if c.HasFreeAlternatives {
		s += ", free alternatives available"
	}
	return s
}

func marketSummary(m *verdict.MarketScoreInput, adj *verdict.MarketAdjustment) string {
	s := fmt.Sprintf("Requires %.1f%% market penetration (%s)", m.PenetrationRequired, m.Achievability)
	if adj != nil && adj.AdjustedScore != adj.RawScore {
		s += fmt.Sprintf("; size score %.1f discounted to %.1f", adj.RawScore, adj.AdjustedScore)
	}
	return s
}

func timingSummary(t *verdict.TimingScoreInput) string {
	s := fmt.Sprintf("%s trend with %d tailwinds and %d headwinds", t.Trend, t.TailwindsCount, t.HeadwindsCount)
	if t.TimingWindow != "" {
		s += "; window: " + t.TimingWindow
	}
	return s
}

// WeakestDimension returns the lowest-scoring dimension. Ties go to the
// first one in the list.
func WeakestDimension(dims []verdict.DimensionScore) *verdict.DimensionScore {
	if len(dims) == 0 {
		return nil
	}
	weakest := dims[0]
	for _, d := range dims[1:] {
		if d.Score < weakest.Score {
			weakest = d
		}
	}
	return &weakest
}

// OverallConfidence is the weight-averaged dimension confidence, capped by sample size
func OverallConfidence(dims []verdict.DimensionScore, sample *verdict.SampleSize) verdict.Confidence {
	if len(dims) == 0 {
		return verdict.ConfidenceLow
	}

	weights := make([]float64, len(dims))
	ranks := make([]float64, len(dims))
	for i, d := range dims {
		weights[i] = d.Weight
		ranks[i] = d.Confidence.Rank()
	}
	mean := floats.Dot(weights, ranks)

	conf := verdict.ConfidenceLow
	switch {
	case mean >= 2.5:
		conf = verdict.ConfidenceHigh
	case mean >= 1.5:
		conf = verdict.ConfidenceMedium
	}

	if sample != nil {
		switch sample.Label {
		case verdict.SampleVeryLimited:
			conf = verdict.ConfidenceLow
		case verdict.SampleLowConfidence:
			if conf == verdict.ConfidenceHigh {
				conf = verdict.ConfidenceMedium
			}
		}
	}
	return conf
}

// DataSufficiency rates how much the verdict should be trusted and says why
func DataSufficiency(avail verdict.Availability, sample *verdict.SampleSize) (verdict.Sufficiency, string) {
	n := avail.Count()
	switch {
	case n == 0:
		return verdict.SufficiencyInsufficient, "No research dimensions were available"
	case n == 1:
		return verdict.SufficiencyLimited, "Only one research dimension was available"
	case sample != nil && sample.Label == verdict.SampleVeryLimited:
		return verdict.SufficiencyLimited, fmt.Sprintf("Only %d posts were analyzed", sample.PostsAnalyzed)
	case n < len(verdict.CanonicalOrder):
		return verdict.SufficiencyPartial, fmt.Sprintf("%d of %d research dimensions were available", n, len(verdict.CanonicalOrder))
	case sample != nil && sample.Label == verdict.SampleLowConfidence:
		return verdict.SufficiencyPartial, fmt.Sprintf("All dimensions present but only %d posts were analyzed", sample.PostsAnalyzed)
	default:
		return verdict.SufficiencySufficient, "All research dimensions were available with an adequate sample"
	}
}

// Dealbreakers lists critical dimensions and verdict-forcing rule reasons
func Dealbreakers(dims []verdict.DimensionScore, adjustments []verdict.Adjustment) []string {
	out := []string{}
	for _, d := range dims {
		if d.Status == verdict.StatusCritical {
			out = append(out, fmt.Sprintf("%s is critical (%.1f/10): %s", dimensionTitle(d.Name), d.Score, d.Summary))
		}
	}
	for _, a := range adjustments {
		if a.Forced != "" {
			out = append(out, a.Reason)
		}
	}
	return out
}

var flagRecommendations = map[string]string{
	FlagNoPurchaseIntent:       "Test willingness to pay with a pricing page or pre-sale before building",
	FlagSaturatedMarket:        "Find a wedge that free alternatives cannot serve before competing on price",
	FlagUnrealisticPenetration: "Raise prices or broaden the target market; the revenue goal needs too much of it",
	FlagMarketGoalUnlikely:     "Reset revenue expectations or pick a larger market",
}

var dimensionRecommendations = map[verdict.DimensionName]string{
	verdict.DimensionPain:        "Validate the pain directly: interview people who described the problem and ask what they pay today",
	verdict.DimensionCompetition: "Differentiate from existing competitors or target an underserved niche",
	verdict.DimensionMarket:      "Narrow to a segment where the required market penetration is realistic",
	verdict.DimensionTiming:      "Revisit timing: identify a trigger that makes the problem urgent now",
}

var missingRecommendations = map[verdict.DimensionName]string{
	verdict.DimensionPain:        "Run community pain analysis to complete the verdict",
	verdict.DimensionCompetition: "Run competitor analysis to complete the verdict",
	verdict.DimensionMarket:      "Run market sizing to complete the verdict",
	verdict.DimensionTiming:      "Run timing and trend analysis to complete the verdict",
}

// Recommendations builds at most limit next steps, most urgent first:
// high-severity flags, weak dimensions from the weakest up, missing
// dimensions, then sample-size advice.
func Recommendations(cfg Config, dims []verdict.DimensionScore, flags []verdict.RedFlag, avail verdict.Availability, sample *verdict.SampleSize) []string {
	out := []string{}
	seen := make(map[string]struct{})
	add := func(s string) {
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	for _, f := range flags {
		if f.Severity == verdict.SeverityHigh {
			add(flagRecommendations[f.Title])
		}
	}

	weak := make([]verdict.DimensionScore, 0, len(dims))
	for _, d := range dims {
		if d.Status == verdict.StatusNeedsWork || d.Status == verdict.StatusCritical {
			weak = append(weak, d)
		}
	}
	sort.SliceStable(weak, func(i, j int) bool { return weak[i].Score < weak[j].Score })
	for _, d := range weak {
		add(dimensionRecommendations[d.Name])
	}

	present := map[verdict.DimensionName]bool{
		verdict.DimensionPain:        avail.Pain,
		verdict.DimensionCompetition: avail.Competition,
		verdict.DimensionMarket:      avail.Market,
		verdict.DimensionTiming:      avail.Timing,
	}
	for _, name := range verdict.CanonicalOrder {
		if !present[name] {
			add(missingRecommendations[name])
		}
	}

	if sample != nil && (sample.Label == verdict.SampleVeryLimited || sample.Label == verdict.SampleLowConfidence) {
		add(fmt.Sprintf("Analyze at least %d posts before committing; only %d were analyzed",
			cfg.SampleSize.Moderate, sample.PostsAnalyzed))
	}

	if len(out) > cfg.MaxRecommendations {
		out = out[:cfg.MaxRecommendations]
	}
	return out
}
