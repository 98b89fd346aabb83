package verdict

// Tier is the overall recommendation band of a viability verdict
type Tier string

const (
	TierStrong       Tier = "strong"
	TierMixed        Tier = "mixed"
	TierWeak         Tier = "weak"
	TierNone         Tier = "none"
	TierInsufficient Tier = "insufficient_data"
)

// DimensionName identifies one research axis
type DimensionName string

const (
	DimensionPain        DimensionName = "pain"
	DimensionCompetition DimensionName = "competition"
	DimensionMarket      DimensionName = "market"
	DimensionTiming      DimensionName = "timing"
)

// CanonicalOrder is the order dimensions are collected in. Ties for the
// weakest dimension resolve to the earliest entry.
var CanonicalOrder = []DimensionName{
	DimensionPain,
	DimensionCompetition,
	DimensionMarket,
	DimensionTiming,
}

// DimensionStatus grades a single dimension score
type DimensionStatus string

const (
	StatusStrong    DimensionStatus = "strong"
	StatusAdequate  DimensionStatus = "adequate"
	StatusNeedsWork DimensionStatus = "needs_work"
	StatusCritical  DimensionStatus = "critical"
)

// Confidence is the qualitative trust level reported by an upstream analysis
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Rank maps a confidence level onto 1..3. Unknown values rank as low.
func (c Confidence) Rank() float64 {
	switch c {
	case ConfidenceHigh:
		return 3
	case ConfidenceMedium:
		return 2
	default:
		return 1
	}
}

// Severity of a red flag
type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
	SeverityLow    Severity = "LOW"
)

// RedFlag is a severity-tagged explanation attached to a verdict
type RedFlag struct {
	Severity Severity `json:"severity"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
}

// SampleLabel buckets the amount of source material behind a verdict
type SampleLabel string

const (
	SampleHighConfidence     SampleLabel = "high_confidence"
	SampleModerateConfidence SampleLabel = "moderate_confidence"
	SampleLowConfidence      SampleLabel = "low_confidence"
	SampleVeryLimited        SampleLabel = "very_limited"
)

// SampleSize describes how much data the verdict rests on
type SampleSize struct {
	PostsAnalyzed int         `json:"posts_analyzed"`
	SignalsFound  int         `json:"signals_found"`
	Label         SampleLabel `json:"label"`
	Description   string      `json:"description"`
}

// ScoreRange is the ± interval reported for small samples
type ScoreRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Sufficiency rates how far the verdict should be trusted given data volume
type Sufficiency string

const (
	SufficiencySufficient   Sufficiency = "sufficient"
	SufficiencyPartial      Sufficiency = "partial"
	SufficiencyLimited      Sufficiency = "limited"
	SufficiencyInsufficient Sufficiency = "insufficient"
)

// DimensionScore is one scored research axis after weight normalization
type DimensionScore struct {
	Name       DimensionName   `json:"name"`
	Score      float64         `json:"score"`
	Weight     float64         `json:"weight"`
	Status     DimensionStatus `json:"status"`
	Confidence Confidence      `json:"confidence"`
	Summary    string          `json:"summary"`
}

// Availability records which dimensions were supplied
type Availability struct {
	Pain        bool `json:"pain"`
	Competition bool `json:"competition"`
	Market      bool `json:"market"`
	Timing      bool `json:"timing"`
}

// Count returns the number of supplied dimensions
func (a Availability) Count() int {
	n := 0
	for _, ok := range []bool{a.Pain, a.Competition, a.Market, a.Timing} {
		if ok {
			n++
		}
	}
	return n
}

// HypothesisLevel answers "did we find the user's specific idea?"
type HypothesisLevel string

const (
	HypothesisHigh    HypothesisLevel = "high"
	HypothesisPartial HypothesisLevel = "partial"
	HypothesisLow     HypothesisLevel = "low"
)

// HypothesisConfidence is the first axis of two-axis scoring
type HypothesisConfidence struct {
	Score                   float64         `json:"score"`
	Level                   HypothesisLevel `json:"level"`
	DirectSignalPercent     float64         `json:"direct_signal_percent"`
	SignalVolume            int             `json:"signal_volume"`
	MultiSourceConfirmation bool            `json:"multi_source_confirmation"`
	Factors                 []string        `json:"factors"`
}

// OpportunityLevel answers "is there a market at all?"
type OpportunityLevel string

const (
	OpportunityStrong   OpportunityLevel = "strong"
	OpportunityModerate OpportunityLevel = "moderate"
	OpportunityWeak     OpportunityLevel = "weak"
)

// MarketOpportunity is the second axis of two-axis scoring
type MarketOpportunity struct {
	Score              float64          `json:"score"`
	Level              OpportunityLevel `json:"level"`
	MarketSizeScore    float64          `json:"market_size_score"`
	TimingScore        float64          `json:"timing_score"`
	ActivityScore      float64          `json:"activity_score"`
	CompetitorPresence float64          `json:"competitor_presence"`
	Factors            []string         `json:"factors"`
}

// MarketAdjustment explains how the market dimension was discounted before aggregation
type MarketAdjustment struct {
	RawScore              float64  `json:"raw_score"`
	AdjustedScore         float64  `json:"adjusted_score"`
	WTPFactor             float64  `json:"wtp_factor"`
	SeverityFactor        float64  `json:"severity_factor"`
	FreeAlternativeFactor float64  `json:"free_alternative_factor"`
	Reasons               []string `json:"reasons,omitempty"`
}

// Adjustment traces a single rule that changed the score or verdict
type Adjustment struct {
	Rule   string  `json:"rule"`
	Before float64 `json:"before"`
	After  float64 `json:"after"`
	Forced Tier    `json:"forced,omitempty"`
	Reason string  `json:"reason"`
}

// ViabilityVerdict is the sole output of the engine
type ViabilityVerdict struct {
	RawScore              float64               `json:"raw_score"`
	CalibratedScore       float64               `json:"calibrated_score"`
	OverallScore          float64               `json:"overall_score"`
	Verdict               Tier                  `json:"verdict"`
	RawVerdictLabel       string                `json:"raw_verdict_label"`
	VerdictLabel          string                `json:"verdict_label"`
	VerdictDescription    string                `json:"verdict_description"`
	ScoreRange            *ScoreRange           `json:"score_range,omitempty"`
	Dimensions            []DimensionScore      `json:"dimensions"`
	WeakestDimension      *DimensionScore       `json:"weakest_dimension,omitempty"`
	Dealbreakers          []string              `json:"dealbreakers"`
	Recommendations       []string              `json:"recommendations"`
	Confidence            Confidence            `json:"confidence"`
	Availability          Availability          `json:"availability"`
	IsComplete            bool                  `json:"is_complete"`
	DataSufficiency       Sufficiency           `json:"data_sufficiency"`
	DataSufficiencyReason string                `json:"data_sufficiency_reason"`
	SampleSize            *SampleSize           `json:"sample_size,omitempty"`
	RedFlags              []RedFlag             `json:"red_flags,omitempty"`
	HypothesisConfidence  *HypothesisConfidence `json:"hypothesis_confidence,omitempty"`
	MarketOpportunity     *MarketOpportunity    `json:"market_opportunity,omitempty"`
	MarketAdjustment      *MarketAdjustment     `json:"market_adjustment,omitempty"`
	Adjustments           []Adjustment          `json:"adjustments,omitempty"`
}

// HasRedFlag reports whether a flag with the given title is attached
func (v *ViabilityVerdict) HasRedFlag(title string) bool {
	for _, f := range v.RedFlags {
		if f.Title == title {
			return true
		}
	}
	return false
}
