package excel

// Column names understood by the batch reader. Headers are matched
// case-insensitively after trimming. A dimension is read only when its score
// column has a value.
const (
	ColJobID = "job_id"
	ColMode  = "mode"

	ColPainScore        = "pain_score"
	ColPainConfidence   = "pain_confidence"
	ColPainSignals      = "pain_signals"
	ColPainWTPCount     = "pain_wtp_count"
	ColPainPosts        = "pain_posts_analyzed"
	ColPainAvgIntensity = "pain_avg_intensity"

	ColCompetitionScore      = "competition_score"
	ColCompetitionConfidence = "competition_confidence"
	ColCompetitorCount       = "competitor_count"
	ColCompetitionThreats    = "competition_threats"
	ColFreeAlternatives      = "has_free_alternatives"
	ColMarketMaturity        = "market_maturity"

	ColMarketScore         = "market_score"
	ColMarketConfidence    = "market_confidence"
	ColPenetrationRequired = "penetration_required"
	ColAchievability       = "achievability"

	ColTimingScore      = "timing_score"
	ColTimingConfidence = "timing_confidence"
	ColTimingTrend      = "timing_trend"
	ColTailwinds        = "tailwinds_count"
	ColHeadwinds        = "headwinds_count"
	ColTimingWindow     = "timing_window"

	ColCoreSignals    = "core_signals"
	ColRelatedSignals = "related_signals"
	ColPostsAnalyzed  = "posts_analyzed"
	ColSources        = "sources"
)

// listSeparator splits multi-valued cells such as threats and sources
const listSeparator = ";"

// BatchFileConfig holds configuration for a batch input file
type BatchFileConfig struct {
	FilePath string `json:"file_path"`
	// SheetName selects the worksheet; empty means the first sheet
	SheetName string `json:"sheet_name"`
}
