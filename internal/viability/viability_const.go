package viability

// viability_const.go
//
// Thresholds that decide where an idea lands. Every value here is part of
// the published scoring contract; changing one changes verdicts for past
// research jobs when they are re-scored.

import (
	"fmt"
	"math"

	"goverdict/domain/verdict"
	"goverdict/internal/errors"

	"github.com/go-playground/validator/v10"
)

// ============================================================================
// Weights
// ============================================================================

// WeightTable holds the base weight of each dimension before normalization
type WeightTable struct {
	Pain        float64 `yaml:"pain" json:"pain" validate:"gte=0,lte=1"`
	Competition float64 `yaml:"competition" json:"competition" validate:"gte=0,lte=1"`
	Market      float64 `yaml:"market" json:"market" validate:"gte=0,lte=1"`
	Timing      float64 `yaml:"timing" json:"timing" validate:"gte=0,lte=1"`
}

// For returns the base weight of a dimension
func (w WeightTable) For(name verdict.DimensionName) float64 {
	switch name {
	case verdict.DimensionPain:
		return w.Pain
	case verdict.DimensionCompetition:
		return w.Competition
	case verdict.DimensionMarket:
		return w.Market
	case verdict.DimensionTiming:
		return w.Timing
	default:
		return 0
	}
}

// Sum returns the total of all base weights
func (w WeightTable) Sum() float64 {
	return w.Pain + w.Competition + w.Market + w.Timing
}

// ============================================================================
// Rule and classifier thresholds
// ============================================================================

// CalibrationConfig parameterises the center-biased stretch
type CalibrationConfig struct {
	Center           float64 `yaml:"center" json:"center" validate:"gt=0,lt=10"`
	MaxAmplification float64 `yaml:"max_amplification" json:"max_amplification" validate:"gte=1"`
	Decay            float64 `yaml:"decay" json:"decay" validate:"gte=0"`
	HalfRange        float64 `yaml:"half_range" json:"half_range" validate:"gt=0"`
}

// TierThresholds are lower bounds on the final score for each tier
type TierThresholds struct {
	Strong float64 `yaml:"strong" json:"strong" validate:"gte=0,lte=10"`
	Mixed  float64 `yaml:"mixed" json:"mixed" validate:"gte=0,lte=10"`
	Weak   float64 `yaml:"weak" json:"weak" validate:"gte=0,lte=10"`
}

// StatusThresholds grade individual dimension scores
type StatusThresholds struct {
	Strong    float64 `yaml:"strong" json:"strong" validate:"gte=0,lte=10"`
	Adequate  float64 `yaml:"adequate" json:"adequate" validate:"gte=0,lte=10"`
	NeedsWork float64 `yaml:"needs_work" json:"needs_work" validate:"gte=0,lte=10"`
}

// WTPConfig drives the willingness-to-pay kill switch
type WTPConfig struct {
	HardCap            float64 `yaml:"hard_cap" json:"hard_cap" validate:"gte=0,lte=10"`
	SoftCap            float64 `yaml:"soft_cap" json:"soft_cap" validate:"gte=0,lte=10"`
	TrustedSignalCount int     `yaml:"trusted_signal_count" json:"trusted_signal_count" validate:"gte=1"`
}

// SaturationConfig drives the competition saturation cap
type SaturationConfig struct {
	CompetitorThreshold int     `yaml:"competitor_threshold" json:"competitor_threshold" validate:"gte=1"`
	SaturatedCap        float64 `yaml:"saturated_cap" json:"saturated_cap" validate:"gte=0,lte=10"`
	CompetitiveCap      float64 `yaml:"competitive_cap" json:"competitive_cap" validate:"gte=0,lte=10"`
}

// MarketRealityConfig holds penetration warning thresholds in percent
type MarketRealityConfig struct {
	HighPenetration   float64 `yaml:"high_penetration" json:"high_penetration" validate:"gte=0,lte=100"`
	MediumPenetration float64 `yaml:"medium_penetration" json:"medium_penetration" validate:"gte=0,lte=100"`
}

// MarketAdjustmentConfig discounts raw market size by purchase evidence
type MarketAdjustmentConfig struct {
	ZeroWTPFactor       float64 `yaml:"zero_wtp_factor" json:"zero_wtp_factor" validate:"gte=0,lte=1"`
	LowWTPFactor        float64 `yaml:"low_wtp_factor" json:"low_wtp_factor" validate:"gte=0,lte=1"`
	LowWTPMax           int     `yaml:"low_wtp_max" json:"low_wtp_max" validate:"gte=0"`
	MildIntensity       float64 `yaml:"mild_intensity" json:"mild_intensity" validate:"gte=0,lte=1"`
	MildFactor          float64 `yaml:"mild_factor" json:"mild_factor" validate:"gte=0,lte=1"`
	ModerateIntensity   float64 `yaml:"moderate_intensity" json:"moderate_intensity" validate:"gte=0,lte=1"`
	ModerateFactor      float64 `yaml:"moderate_factor" json:"moderate_factor" validate:"gte=0,lte=1"`
	FreeAlternativeRate float64 `yaml:"free_alternative_factor" json:"free_alternative_factor" validate:"gte=0,lte=1"`
	Floor               float64 `yaml:"floor" json:"floor" validate:"gte=0,lte=10"`
}

// SampleSizeConfig buckets postsAnalyzed and sets interval margins
type SampleSizeConfig struct {
	High              int     `yaml:"high" json:"high" validate:"gte=1"`
	Moderate          int     `yaml:"moderate" json:"moderate" validate:"gte=1"`
	Low               int     `yaml:"low" json:"low" validate:"gte=1"`
	LowMargin         float64 `yaml:"low_margin" json:"low_margin" validate:"gte=0"`
	VeryLimitedMargin float64 `yaml:"very_limited_margin" json:"very_limited_margin" validate:"gte=0"`
}

// Config is the immutable threshold set an Engine is built with
type Config struct {
	Weights            WeightTable            `yaml:"weights" json:"weights"`
	MVPWeights         WeightTable            `yaml:"mvp_weights" json:"mvp_weights"`
	Calibration        CalibrationConfig      `yaml:"calibration" json:"calibration"`
	Tiers              TierThresholds         `yaml:"tiers" json:"tiers"`
	Status             StatusThresholds       `yaml:"status" json:"status"`
	WTP                WTPConfig              `yaml:"wtp" json:"wtp"`
	Saturation         SaturationConfig       `yaml:"saturation" json:"saturation"`
	MarketReality      MarketRealityConfig    `yaml:"market_reality" json:"market_reality"`
	MarketAdjustment   MarketAdjustmentConfig `yaml:"market_adjustment" json:"market_adjustment"`
	SampleSize         SampleSizeConfig       `yaml:"sample_size" json:"sample_size"`
	MaxRecommendations int                    `yaml:"max_recommendations" json:"max_recommendations" validate:"gte=1"`
}

// DefaultConfig returns the production threshold set
func DefaultConfig() Config {
	return Config{
		Weights: WeightTable{
			Pain:        0.35,
			Market:      0.25,
			Competition: 0.25,
			Timing:      0.15,
		},
		// Legacy two-dimension mode (pain + competition only).
		MVPWeights: WeightTable{
			Pain:        0.58,
			Competition: 0.42,
		},
		Calibration: CalibrationConfig{
			Center:           5.5,
			MaxAmplification: 1.4,
			Decay:            0.4,
			HalfRange:        4.5,
		},
		// Weak starts at 4.0, not 2.5: near-failing ideas get DO NOT PURSUE.
		Tiers: TierThresholds{
			Strong: 7.5,
			Mixed:  5.0,
			Weak:   4.0,
		},
		Status: StatusThresholds{
			Strong:    7.0,
			Adequate:  5.0,
			NeedsWork: 3.0,
		},
		WTP: WTPConfig{
			HardCap:            5.0,
			SoftCap:            6.0,
			TrustedSignalCount: 20,
		},
		Saturation: SaturationConfig{
			CompetitorThreshold: 5,
			SaturatedCap:        5.0,
			CompetitiveCap:      6.5,
		},
		MarketReality: MarketRealityConfig{
			HighPenetration:   50,
			MediumPenetration: 25,
		},
		MarketAdjustment: MarketAdjustmentConfig{
			ZeroWTPFactor:       0.3,
			LowWTPFactor:        0.6,
			LowWTPMax:           3,
			MildIntensity:       0.4,
			MildFactor:          0.5,
			ModerateIntensity:   0.7,
			ModerateFactor:      0.8,
			FreeAlternativeRate: 0.5,
			Floor:               1.0,
		},
		SampleSize: SampleSizeConfig{
			High:              100,
			Moderate:          50,
			Low:               20,
			LowMargin:         1.5,
			VeryLimitedMargin: 2.0,
		},
		MaxRecommendations: 5,
	}
}

var configValidate = validator.New()

// Validate checks field ranges and the ordering constraints between thresholds
func (c Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return errors.WithCode(errors.CodeConfigInvalid, errors.Wrap(err, "invalid viability config"))
	}
	if math.Abs(c.Weights.Sum()-1.0) > 0.001 {
		return errors.ConfigInvalid(fmt.Sprintf("weights sum to %.4f, must sum to 1.0", c.Weights.Sum()))
	}
	if c.MVPWeights.Pain+c.MVPWeights.Competition <= 0 {
		return errors.ConfigInvalid("mvp weights must give pain or competition a positive weight")
	}
	if !(c.Tiers.Strong > c.Tiers.Mixed && c.Tiers.Mixed > c.Tiers.Weak) {
		return errors.ConfigInvalid(fmt.Sprintf("tier thresholds must be strictly descending: %.2f > %.2f > %.2f",
			c.Tiers.Strong, c.Tiers.Mixed, c.Tiers.Weak))
	}
	if !(c.Status.Strong > c.Status.Adequate && c.Status.Adequate > c.Status.NeedsWork) {
		return errors.ConfigInvalid("status thresholds must be strictly descending")
	}
	if !(c.SampleSize.High > c.SampleSize.Moderate && c.SampleSize.Moderate > c.SampleSize.Low) {
		return errors.ConfigInvalid("sample size buckets must be strictly descending")
	}
	if c.MarketReality.HighPenetration <= c.MarketReality.MediumPenetration {
		return errors.ConfigInvalid("high penetration threshold must exceed medium threshold")
	}
	return nil
}
