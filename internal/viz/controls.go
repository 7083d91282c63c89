package viz

import (
	"fmt"
	"math"

	"github.com/san-kum/reflow/internal/config"
)

// Control is one adjustable parameter of the panel.
type Control struct {
	Key   string
	Label string
	Step  float64
	Min   float64
	Max   float64
	Int   bool
	// Wrap makes the value cycle through [Min, Max) instead of clamping.
	Wrap bool

	get func(*config.Config) float64
	set func(*config.Config, float64)
}

// Value reads the control's current value from cfg.
func (c Control) Value(cfg *config.Config) float64 { return c.get(cfg) }

// Adjust moves the value by steps increments and writes it back to cfg.
func (c Control) Adjust(cfg *config.Config, steps int) {
	v := c.get(cfg) + float64(steps)*c.Step
	switch {
	case c.Wrap:
		span := c.Max - c.Min
		v = c.Min + math.Mod(math.Mod(v-c.Min, span)+span, span)
	default:
		v = min(max(v, c.Min), c.Max)
	}
	if c.Int {
		v = math.Round(v)
	}
	c.set(cfg, v)
}

// Format renders the value the way the panel shows it.
func (c Control) Format(cfg *config.Config) string {
	if c.Int {
		return fmt.Sprintf("%d", int(c.get(cfg)))
	}
	return fmt.Sprintf("%.2f", c.get(cfg))
}

// Fraction is the value's position within [Min, Max].
func (c Control) Fraction(cfg *config.Config) float64 {
	if c.Max <= c.Min {
		return 0
	}
	return min(max((c.get(cfg)-c.Min)/(c.Max-c.Min), 0), 1)
}

// Controls returns the panel's parameters in display order.
func Controls() []Control {
	return []Control{
		{
			Key: "num_initial_curves", Label: "curves", Step: 1, Min: 1, Max: 30, Int: true,
			get: func(c *config.Config) float64 { return float64(c.NumInitialCurves) },
			set: func(c *config.Config, v float64) { c.NumInitialCurves = int(v) },
		},
		{
			Key: "segment_length", Label: "segment", Step: 1, Min: 2, Max: 60, Int: true,
			get: func(c *config.Config) float64 { return c.SegmentLength },
			set: func(c *config.Config, v float64) { c.SegmentLength = v },
		},
		{
			Key: "repulsion_radius", Label: "radius", Step: 5, Min: 10, Max: 250, Int: true,
			get: func(c *config.Config) float64 { return c.RepulsionRadius },
			set: func(c *config.Config, v float64) { c.RepulsionRadius = v },
		},
		{
			Key: "repulsion_strength", Label: "repulsion", Step: 0.01, Min: 0, Max: 1,
			get: func(c *config.Config) float64 { return c.RepulsionStrength },
			set: func(c *config.Config, v float64) { c.RepulsionStrength = v },
		},
		{
			Key: "randomness", Label: "randomness", Step: 0.05, Min: 0, Max: 1,
			get: func(c *config.Config) float64 { return c.Randomness },
			set: func(c *config.Config, v float64) { c.Randomness = v },
		},
		{
			Key: "growth_rate", Label: "growth", Step: 1, Min: 1, Max: 10, Int: true,
			get: func(c *config.Config) float64 { return float64(c.GrowthRate) },
			set: func(c *config.Config, v float64) { c.GrowthRate = int(v) },
		},
		{
			Key: "max_segments_per_curve", Label: "max length", Step: 25, Min: 25, Max: 2000, Int: true,
			get: func(c *config.Config) float64 { return float64(c.MaxSegmentsPerCurve) },
			set: func(c *config.Config, v float64) { c.MaxSegmentsPerCurve = int(v) },
		},
		{
			Key: "hue_shift", Label: "hue shift", Step: 10, Min: 0, Max: 360, Int: true, Wrap: true,
			get: func(c *config.Config) float64 { return c.HueShift },
			set: func(c *config.Config, v float64) { c.HueShift = v },
		},
	}
}
