package viability

import "math"

// Calibrator stretches scores away from the center of the scale. Upstream
// analyses tend to cluster around 5-6, which hides the difference between
// a promising idea and a mediocre one.
type Calibrator struct {
	cfg CalibrationConfig
}

// NewCalibrator creates a calibrator with the given parameters
func NewCalibrator(cfg CalibrationConfig) *Calibrator {
	return &Calibrator{cfg: cfg}
}

// Calibrate applies the stretch. Zero means "no data" and is returned as is.
func (c *Calibrator) Calibrate(score float64) float64 {
	if score == 0 {
		return 0
	}

	distance := math.Abs(score - c.cfg.Center)
	amplification := c.cfg.MaxAmplification - c.cfg.Decay*(distance/c.cfg.HalfRange)
	calibrated := c.cfg.Center + (score-c.cfg.Center)*amplification

	return round1(clampScore(calibrated))
}
