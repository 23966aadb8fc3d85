package config

import "math"

// DifficultyManager calculates dynamic game parameters from the loop count.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the difficulty level (0.0 to 1.0) after the given number of
// completed loops. It saturates at 1.
func (d *DifficultyManager) Level(loops int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}
	return math.Min(float64(loops)*d.cfg.Progression.PerLoop+d.initialLevel, 1.0)
}

// GapScale returns the multiplier applied to the base hazard gap.
// Gaps shrink as the level rises.
func (d *DifficultyManager) GapScale(loops int) float64 {
	return d.cfg.Scaling.GapFactor - d.Level(loops)*d.cfg.Scaling.GapReduction
}

// DoubleSpikes reports whether floor spikes may come in pairs.
func (d *DifficultyManager) DoubleSpikes(loops int) bool {
	return d.Level(loops) > d.cfg.Scaling.DoubleSpikeAt
}

// PlatformSpikes reports whether platforms may be followed by a floor spike.
func (d *DifficultyManager) PlatformSpikes(loops int) bool {
	return d.Level(loops) > d.cfg.Scaling.PlatformSpikeAt
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
