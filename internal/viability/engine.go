// Package viability fuses independently scored research dimensions into a
// single calibrated "should you pursue this idea" verdict.
//
// The pipeline runs leaves first: weight normalization, aggregation,
// calibration, the ordered override rules, classification, then sample-size
// and two-axis annotations. An Engine is immutable once built and can be
// shared across goroutines.
package viability

import (
	"goverdict/domain/verdict"
)

// Engine computes viability verdicts for a fixed threshold set
type Engine struct {
	cfg        Config
	calibrator *Calibrator
	classifier *Classifier
	rules      []Rule
}

// NewEngine validates cfg and builds an engine around it
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		cfg:        cfg,
		calibrator: NewCalibrator(cfg.Calibration),
		classifier: NewClassifier(cfg.Tiers),
		rules:      DefaultRules(cfg),
	}, nil
}

// NewDefaultEngine builds an engine with the production thresholds
func NewDefaultEngine() *Engine {
	engine, err := NewEngine(DefaultConfig())
	if err != nil {
		panic(err) // DefaultConfig is always valid
	}
	return engine
}

// Config returns the threshold set the engine was built with
func (e *Engine) Config() Config {
	return e.cfg
}

// CalculateMVP is the legacy two-dimension entry point. It runs the same
// pipeline as Calculate and produces the identical verdict for the same input.
func (e *Engine) CalculateMVP(pain *verdict.PainScoreInput, competition *verdict.CompetitionScoreInput) *verdict.ViabilityVerdict {
	return e.Calculate(verdict.Input{Pain: pain, Competition: competition})
}

// Calculate runs the full pipeline over whichever dimensions are present
func (e *Engine) Calculate(in verdict.Input) *verdict.ViabilityVerdict {
	avail := in.Availability()
	table := e.cfg.WeightTableFor(avail)

	var marketAdj *verdict.MarketAdjustment
	if in.Market != nil {
		adj := AdjustMarketScore(e.cfg.MarketAdjustment, in.Market, in.Pain, in.Competition)
		marketAdj = &adj
	}

	present, summaries := e.collect(in, table, marketAdj)
	sample := e.sampleSize(in)

	v := &verdict.ViabilityVerdict{
		Dimensions:       []verdict.DimensionScore{},
		Dealbreakers:     []string{},
		Recommendations:  []string{},
		Availability:     avail,
		IsComplete:       avail.Count() == len(verdict.CanonicalOrder),
		SampleSize:       sample,
		MarketAdjustment: marketAdj,
	}

	if in.Filtering != nil {
		hc := ScoreHypothesisConfidence(*in.Filtering)
		mo := ScoreMarketOpportunity(in, *in.Filtering)
		v.HypothesisConfidence = &hc
		v.MarketOpportunity = &mo
	}

	v.DataSufficiency, v.DataSufficiencyReason = DataSufficiency(avail, sample)

	// Without any dimension there is nothing to aggregate. Report missing
	// data rather than a zero score that reads as failure.
	if len(present) == 0 {
		v.Verdict = verdict.TierInsufficient
		v.RawVerdictLabel = RawLabel(v.Verdict)
		v.VerdictLabel = v.RawVerdictLabel
		v.VerdictDescription = Description(v.Verdict)
		v.Confidence = verdict.ConfidenceLow
		v.Recommendations = Recommendations(e.cfg, nil, nil, avail, sample)
		return v
	}

	weights := NormalizeWeights(present)
	for i, d := range present {
		v.Dimensions = append(v.Dimensions, verdict.DimensionScore{
			Name:       d.Name,
			Score:      d.Score,
			Weight:     weights[i],
			Status:     StatusFor(e.cfg.Status, d.Score),
			Confidence: d.Confidence,
			Summary:    summaries[i],
		})
	}

	v.RawScore = Aggregate(present, weights)
	v.CalibratedScore = e.calibrator.Calibrate(v.RawScore)

	state := RunRules(e.rules, RuleState{Score: v.CalibratedScore}, Snapshot{
		Pain:        in.Pain,
		Competition: in.Competition,
		Market:      in.Market,
	})
	v.OverallScore = round1(clampScore(state.Score))
	v.RedFlags = state.RedFlags
	v.Adjustments = state.Adjustments

	v.Verdict = e.classifier.Classify(v.OverallScore, state.ForcedTier)
	v.RawVerdictLabel = RawLabel(v.Verdict)
	v.VerdictLabel = CalibratedLabel(v.Verdict, sample)
	v.VerdictDescription = Description(v.Verdict)
	if sample != nil {
		v.ScoreRange = ScoreRangeFor(e.cfg.SampleSize, v.OverallScore, sample.Label)
	}

	v.WeakestDimension = WeakestDimension(v.Dimensions)
	v.Confidence = OverallConfidence(v.Dimensions, sample)
	v.Dealbreakers = Dealbreakers(v.Dimensions, state.Adjustments)
	v.Recommendations = Recommendations(e.cfg, v.Dimensions, state.RedFlags, avail, sample)

	return v
}

// collect lists present dimensions in canonical order with their base
// weights and summaries
func (e *Engine) collect(in verdict.Input, table WeightTable, marketAdj *verdict.MarketAdjustment) ([]PresentDimension, []string) {
	var (
		present   []PresentDimension
		summaries []string
	)
	add := func(name verdict.DimensionName, score float64, conf verdict.Confidence, summary string) {
		present = append(present, PresentDimension{
			Name:       name,
			BaseWeight: table.For(name),
			Score:      clampScore(score),
			Confidence: conf,
		})
		summaries = append(summaries, summary)
	}

	if in.Pain != nil {
		add(verdict.DimensionPain, in.Pain.OverallScore, in.Pain.Confidence, painSummary(in.Pain))
	}
	if in.Competition != nil {
		add(verdict.DimensionCompetition, in.Competition.Score, in.Competition.Confidence, competitionSummary(in.Competition))
	}
	if in.Market != nil {
		add(verdict.DimensionMarket, marketAdj.AdjustedScore, in.Market.Confidence, marketSummary(in.Market, marketAdj))
	}
	if in.Timing != nil {
		add(verdict.DimensionTiming, in.Timing.Score, in.Timing.Confidence, timingSummary(in.Timing))
	}

	return present, summaries
}

// sampleSize prefers the filtering metrics' post count over the pain input's
func (e *Engine) sampleSize(in verdict.Input) *verdict.SampleSize {
	switch {
	case in.Filtering != nil:
		s := EstimateSampleSize(e.cfg.SampleSize, in.Filtering.PostsAnalyzed, in.Filtering.TotalSignals())
		return &s
	case in.Pain != nil && in.Pain.PostsAnalyzed != nil:
		s := EstimateSampleSize(e.cfg.SampleSize, *in.Pain.PostsAnalyzed, in.Pain.TotalSignals)
		return &s
	default:
		return nil
	}
}
