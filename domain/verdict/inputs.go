package verdict

// MarketMaturity as reported by competitor analysis
type MarketMaturity string

const (
	MaturityEmerging  MarketMaturity = "emerging"
	MaturityGrowing   MarketMaturity = "growing"
	MaturityMature    MarketMaturity = "mature"
	MaturitySaturated MarketMaturity = "saturated"
)

// Achievability of the market penetration a business plan requires
type Achievability string

const (
	AchievabilityRealistic   Achievability = "realistic"
	AchievabilityChallenging Achievability = "challenging"
	AchievabilityDifficult   Achievability = "difficult"
	AchievabilityUnlikely    Achievability = "unlikely"
)

// Trend direction reported by timing analysis
type Trend string

const (
	TrendRising  Trend = "rising"
	TrendStable  Trend = "stable"
	TrendFalling Trend = "falling"
)

// PainScoreInput is produced by community-signal mining
type PainScoreInput struct {
	OverallScore          float64    `json:"overall_score"`
	Confidence            Confidence `json:"confidence"`
	TotalSignals          int        `json:"total_signals"`
	WillingnessToPayCount int        `json:"willingness_to_pay_count"`
	PostsAnalyzed         *int       `json:"posts_analyzed,omitempty"`
	AverageIntensity      *float64   `json:"average_intensity,omitempty"`
}

// CompetitionScoreInput is produced by competitor analysis
type CompetitionScoreInput struct {
	Score               float64        `json:"score"`
	Confidence          Confidence     `json:"confidence"`
	CompetitorCount     int            `json:"competitor_count"`
	Threats             []string       `json:"threats,omitempty"`
	HasFreeAlternatives bool           `json:"has_free_alternatives,omitempty"`
	MarketMaturity      MarketMaturity `json:"market_maturity,omitempty"`
}

// MarketScoreInput is produced by Fermi market sizing
type MarketScoreInput struct {
	Score               float64       `json:"score"`
	Confidence          Confidence    `json:"confidence"`
	PenetrationRequired float64       `json:"penetration_required"`
	Achievability       Achievability `json:"achievability"`
}

// TimingScoreInput is produced by trend lookups
type TimingScoreInput struct {
	Score          float64    `json:"score"`
	Confidence     Confidence `json:"confidence"`
	Trend          Trend      `json:"trend"`
	TailwindsCount int        `json:"tailwinds_count"`
	HeadwindsCount int        `json:"headwinds_count"`
	TimingWindow   string     `json:"timing_window"`
}

// FilteringMetrics summarise relevance filtering of the collected signals
type FilteringMetrics struct {
	CoreSignals    int      `json:"core_signals"`
	RelatedSignals int      `json:"related_signals"`
	PostsAnalyzed  int      `json:"posts_analyzed"`
	Sources        []string `json:"sources"`
}

// TotalSignals is core plus related signals
func (m FilteringMetrics) TotalSignals() int {
	return m.CoreSignals + m.RelatedSignals
}

// SignalTier is the relevance tier a classifier assigned to a signal
type SignalTier string

const (
	SignalCore    SignalTier = "core"
	SignalRelated SignalTier = "related"
	SignalNoise   SignalTier = "noise"
)

// TieredSignal is one classified signal with its origin
type TieredSignal struct {
	Tier   SignalTier `json:"tier"`
	Source string     `json:"source"`
}

// Input bundles every optional dimension the engine can fuse
type Input struct {
	Pain        *PainScoreInput        `json:"pain,omitempty"`
	Competition *CompetitionScoreInput `json:"competition,omitempty"`
	Market      *MarketScoreInput      `json:"market,omitempty"`
	Timing      *TimingScoreInput      `json:"timing,omitempty"`
	Filtering   *FilteringMetrics      `json:"filtering,omitempty"`
}

// Availability reports which dimensions are present
func (in Input) Availability() Availability {
	return Availability{
		Pain:        in.Pain != nil,
		Competition: in.Competition != nil,
		Market:      in.Market != nil,
		Timing:      in.Timing != nil,
	}
}
