package viability

import (
	"math"

	"goverdict/domain/verdict"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
)

// PresentDimension is a dimension that was actually supplied, ready for weighting
type PresentDimension struct {
	Name       verdict.DimensionName
	BaseWeight float64
	Score      float64
	Confidence verdict.Confidence
}

// WeightTableFor picks the base table for a set of present dimensions.
// Exactly pain + competition is the legacy two-dimension mode.
func (c Config) WeightTableFor(avail verdict.Availability) WeightTable {
	if avail.Pain && avail.Competition && !avail.Market && !avail.Timing {
		return c.MVPWeights
	}
	return c.Weights
}

// NormalizeWeights rescales base weights so that they sum to 1.
// An empty list yields nil; a list whose base weights are all zero is
// weighted evenly.
func NormalizeWeights(dims []PresentDimension) []float64 {
	if len(dims) == 0 {
		return nil
	}

	weights := make([]float64, len(dims))
	for i, d := range dims {
		weights[i] = d.BaseWeight
	}

	total := floats.Sum(weights)
	if total <= 0 {
		for i := range weights {
			weights[i] = 1.0 / float64(len(weights))
		}
		return weights
	}

	floats.Scale(1.0/total, weights)
	return weights
}

// Aggregate computes the weighted raw score on the 0-10 scale, rounded to one decimal
func Aggregate(dims []PresentDimension, weights []float64) float64 {
	if len(dims) == 0 || len(dims) != len(weights) {
		return 0
	}

	scores := make([]float64, len(dims))
	for i, d := range dims {
		scores[i] = d.Score
	}

	return clampScore(round1(floats.Dot(weights, scores)))
}

func round1(x float64) float64 {
	rounded, err := stats.Round(x, 1)
	if err != nil {
		return 0
	}
	return rounded
}

func clampScore(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return math.Max(0, math.Min(10, x))
}
