package viability

import (
	"fmt"
	"math"
	"strings"

	"goverdict/domain/verdict"
)

const neutralAxisScore = 5.0

// ExtractFilteringMetrics counts core and related signals and collects the
// distinct sources they came from, in first-seen order. Noise is dropped.
func ExtractFilteringMetrics(signals []verdict.TieredSignal, postsAnalyzed int) verdict.FilteringMetrics {
	metrics := verdict.FilteringMetrics{PostsAnalyzed: postsAnalyzed, Sources: []string{}}
	seen := make(map[string]struct{})

	for _, s := range signals {
		switch s.Tier {
		case verdict.SignalCore:
			metrics.CoreSignals++
		case verdict.SignalRelated:
			metrics.RelatedSignals++
		default:
			continue
		}

		key := strings.ToLower(strings.TrimSpace(s.Source))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		metrics.Sources = append(metrics.Sources, s.Source)
	}

	return metrics
}

func distinctSources(sources []string) int {
	seen := make(map[string]struct{}, len(sources))
	for _, s := range sources {
		key := strings.ToLower(strings.TrimSpace(s))
		if key != "" {
			seen[key] = struct{}{}
		}
	}
	return len(seen)
}

func multiSourceScore(n int) float64 {
	switch {
	case n >= 3:
		return 10
	case n == 2:
		return 7
	case n == 1:
		return 4
	default:
		return 0
	}
}

// ScoreHypothesisConfidence answers "did the research find this specific idea?"
func ScoreHypothesisConfidence(m verdict.FilteringMetrics) verdict.HypothesisConfidence {
	total := m.TotalSignals()

	directPercent := 0.0
	if total > 0 {
		directPercent = math.Min(100, float64(m.CoreSignals)/float64(total)*100)
	}
	directScore := directPercent / 10
	volumeScore := math.Min(10, float64(total)/10)
	sources := distinctSources(m.Sources)
	sourceScore := multiSourceScore(sources)

	score := round1(clampScore(0.5*directScore + 0.25*volumeScore + 0.25*sourceScore))

	level := verdict.HypothesisLow
	switch {
	case score >= 6:
		level = verdict.HypothesisHigh
	case score >= 3:
		level = verdict.HypothesisPartial
	}

	factors := []string{
		fmt.Sprintf("%.0f%% of %d signals directly match the hypothesis", directPercent, total),
		fmt.Sprintf("Signal volume score %.1f", volumeScore),
		fmt.Sprintf("Confirmed across %d distinct source(s)", sources),
	}

	return verdict.HypothesisConfidence{
		Score:                   score,
		Level:                   level,
		DirectSignalPercent:     round1(directPercent),
		SignalVolume:            total,
		MultiSourceConfirmation: sources >= 2,
		Factors:                 factors,
	}
}

// competitorPresenceScore favors some competition over none: an empty
// market is more often unvalidated than open.
func competitorPresenceScore(comp *verdict.CompetitionScoreInput) float64 {
	if comp == nil {
		return neutralAxisScore
	}
	switch n := comp.CompetitorCount; {
	case n == 0:
		return 3
	case n <= 5:
		return 8
	case n <= 10:
		return 6
	default:
		return 4
	}
}

// ScoreMarketOpportunity answers "is there a market at all?", independent
// of whether the specific hypothesis was found
func ScoreMarketOpportunity(in verdict.Input, m verdict.FilteringMetrics) verdict.MarketOpportunity {
	var factors []string

	marketSize := neutralAxisScore
	if in.Market != nil {
		marketSize = in.Market.Score
		factors = append(factors, fmt.Sprintf("Market size score %.1f", marketSize))
	} else {
		factors = append(factors, "No market sizing available, assuming neutral")
	}

	timing := neutralAxisScore
	if in.Timing != nil {
		timing = in.Timing.Score
		factors = append(factors, fmt.Sprintf("Timing score %.1f (%s trend)", timing, in.Timing.Trend))
	} else {
		factors = append(factors, "No timing data available, assuming neutral")
	}

	postsRatio := math.Min(1, float64(m.PostsAnalyzed)/100)
	signalBonus := math.Min(3, float64(m.TotalSignals())/15)
	activity := clampScore(postsRatio*7 + signalBonus)
	factors = append(factors, fmt.Sprintf("Discussion activity %.1f from %d posts", activity, m.PostsAnalyzed))

	presence := competitorPresenceScore(in.Competition)
	if in.Competition != nil {
		factors = append(factors, fmt.Sprintf("%d competitors found", in.Competition.CompetitorCount))
	}

	score := round1(clampScore(0.3*marketSize + 0.25*timing + 0.25*activity + 0.2*presence))

	level := verdict.OpportunityWeak
	switch {
	case score >= 7:
		level = verdict.OpportunityStrong
	case score >= 5:
		level = verdict.OpportunityModerate
	}

	return verdict.MarketOpportunity{
		Score:              score,
		Level:              level,
		MarketSizeScore:    round1(marketSize),
		TimingScore:        round1(timing),
		ActivityScore:      round1(activity),
		CompetitorPresence: presence,
		Factors:            factors,
	}
}
