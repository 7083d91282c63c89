package sim

import (
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/san-kum/reflow/internal/config"
	"github.com/san-kum/reflow/internal/growth"
)

// Controller holds the curve collection and the canvas it grows on.
type Controller struct {
	curves []*growth.Curve
	bounds growth.Bounds
	rng    growth.Rand
	logger *log.Logger
	frame  int
}

// New creates an empty controller. A nil logger discards output.
func New(rng growth.Rand, bounds growth.Bounds, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Controller{
		curves: make([]*growth.Curve, 0),
		bounds: bounds,
		rng:    rng,
		logger: logger,
	}
}

// SpawnCurve creates a curve at a uniform random position within bounds,
// with a uniform random heading in [0, 2π) and hue in [0, 360).
func SpawnCurve(rng growth.Rand, bounds growth.Bounds) *growth.Curve {
	start := growth.Vec{X: rng.Float64() * bounds.Width, Y: rng.Float64() * bounds.Height}
	angle := rng.Float64() * 2 * math.Pi
	hue := rng.Float64() * 360
	return growth.NewCurve(start, angle, hue)
}

// Reset discards every curve and spawns cfg.NumInitialCurves new ones. The
// collection is replaced wholesale, never edited in place.
func (c *Controller) Reset(cfg *config.Config) {
	curves := make([]*growth.Curve, 0, cfg.NumInitialCurves)
	for i := 0; i < cfg.NumInitialCurves; i++ {
		curves = append(curves, SpawnCurve(c.rng, c.bounds))
	}
	c.curves = curves
	c.frame = 0
	c.logger.Info("reset", "curves", len(curves), "width", c.bounds.Width, "height", c.bounds.Height)
}

// Tick advances the simulation by one frame. It is a no-op while
// cfg.Freeze is set.
func (c *Controller) Tick(cfg *config.Config) {
	if cfg.Freeze {
		return
	}
	c.frame++

	// Newest curves grow first.
	for i := len(c.curves) - 1; i >= 0; i-- {
		curve := c.curves[i]
		if !curve.Active {
			continue
		}
		for j := 0; j < cfg.GrowthRate; j++ {
			growth.Grow(curve, c.curves, cfg.GrowthParams(), c.bounds, c.rng)
			if !curve.Active {
				c.logger.Debug("curve stopped", "frame", c.frame, "curve", i, "reason", curve.Reason, "segments", curve.Len())
				break
			}
		}
	}

	if c.ActiveCount() < cfg.NumInitialCurves {
		c.curves = append(c.curves, SpawnCurve(c.rng, c.bounds))
		c.logger.Debug("spawned curve", "frame", c.frame, "curve", len(c.curves)-1)
	}
}

// Curves returns the live collection in creation order. Callers must not
// modify it and must not hold it across a Tick or Reset.
func (c *Controller) Curves() []*growth.Curve { return c.curves }

// Snapshot returns a deep copy of the collection that is safe to read while
// the controller keeps ticking.
func (c *Controller) Snapshot() []growth.Curve {
	out := make([]growth.Curve, len(c.curves))
	for i, curve := range c.curves {
		out[i] = curve.Clone()
	}
	return out
}

// ActiveCount returns the number of curves still growing.
func (c *Controller) ActiveCount() int {
	n := 0
	for _, curve := range c.curves {
		if curve.Active {
			n++
		}
	}
	return n
}

// Resize changes the canvas for later growth and spawns. Existing segments
// stay where they are.
func (c *Controller) Resize(b growth.Bounds) {
	if b == c.bounds {
		return
	}
	c.bounds = b
	c.logger.Debug("resize", "width", b.Width, "height", b.Height)
}

func (c *Controller) Bounds() growth.Bounds { return c.bounds }

// Frame returns the number of ticks since the last reset.
func (c *Controller) Frame() int { return c.frame }
