package viability

import (
	"fmt"
	"math"

	"goverdict/domain/verdict"
)

// AdjustMarketScore discounts raw market size by the evidence that people
// will actually pay. A large TAM with no purchase intent is not a business.
//
// The three factors are independent and multiplicative. The result is
// floored at cfg.Floor but never raised above the raw score.
func AdjustMarketScore(cfg MarketAdjustmentConfig, market *verdict.MarketScoreInput, pain *verdict.PainScoreInput, competition *verdict.CompetitionScoreInput) verdict.MarketAdjustment {
	adj := verdict.MarketAdjustment{
		RawScore:              market.Score,
		WTPFactor:             1.0,
		SeverityFactor:        1.0,
		FreeAlternativeFactor: 1.0,
	}

	if pain != nil {
		switch {
		case pain.WillingnessToPayCount == 0:
			adj.WTPFactor = cfg.ZeroWTPFactor
			adj.Reasons = append(adj.Reasons, "No willingness-to-pay signals found")
		case pain.WillingnessToPayCount <= cfg.LowWTPMax:
			adj.WTPFactor = cfg.LowWTPFactor
			adj.Reasons = append(adj.Reasons,
				fmt.Sprintf("Only %d willingness-to-pay signals found", pain.WillingnessToPayCount))
		}

		if pain.AverageIntensity != nil {
			intensity := *pain.AverageIntensity
			switch {
			case intensity < cfg.MildIntensity:
				adj.SeverityFactor = cfg.MildFactor
				adj.Reasons = append(adj.Reasons,
					fmt.Sprintf("Pain intensity is mild (%.2f)", intensity))
			case intensity < cfg.ModerateIntensity:
				adj.SeverityFactor = cfg.ModerateFactor
				adj.Reasons = append(adj.Reasons,
					fmt.Sprintf("Pain intensity is moderate (%.2f)", intensity))
			}
		}
	}

	if competition != nil && competition.HasFreeAlternatives {
		adj.FreeAlternativeFactor = cfg.FreeAlternativeRate
		adj.Reasons = append(adj.Reasons, "Free alternatives already exist")
	}

	adjusted := market.Score * adj.WTPFactor * adj.SeverityFactor * adj.FreeAlternativeFactor
	if adjusted < cfg.Floor {
		adjusted = math.Min(market.Score, cfg.Floor)
	}
	adj.AdjustedScore = round1(clampScore(adjusted))

	return adj
}
