package growth

import "math"

const (
	// BoundaryMargin is the distance from an edge at which the tip starts
	// being pushed back toward the canvas.
	BoundaryMargin = 50.0
	// BoundaryStrength scales the edge push at full penetration.
	BoundaryStrength = 0.05
	// SafetyMargin is how far past an edge a new point may land before the
	// curve is considered to have left the canvas.
	SafetyMargin = 10.0

	outwardThreshold = 0.1
	forceFloor       = 1e-4
	selfGapFactor    = 0.5
)

// Params are the growth tunables. They are read fresh on every call to Grow.
type Params struct {
	SegmentLength     float64
	RepulsionRadius   float64
	RepulsionStrength float64
	Randomness        float64
	MaxSegments       int
}

// Rand is the random source used for heading jitter. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
}

// Grow appends at most one segment to c, or deactivates it. all is the full
// curve collection and may include c itself.
func Grow(c *Curve, all []*Curve, p Params, b Bounds, rng Rand) {
	if !c.Active || c.Len() >= p.MaxSegments {
		c.stop(MaxLength)
		return
	}

	tip := c.Tip()
	angle := tip.Angle + uniform(rng, -p.Randomness, p.Randomness)

	force := Repulsion(tip.Pos, c, all, p).Add(EdgeForce(tip.Pos, b))
	angle = Steer(angle, force)

	next := tip.Pos.Add(FromAngle(angle).Scale(p.SegmentLength))

	if !b.Contains(next, SafetyMargin) {
		c.stop(OutOfBounds)
		return
	}
	if c.crosses(next, p.SegmentLength) {
		c.stop(SelfIntersection)
		return
	}

	c.Segments = append(c.Segments, Segment{Pos: next, Angle: angle})
}

// Repulsion sums the tangent-normal push that every segment of every curve
// other than self exerts on tip. The normal is always the +90° rotation of
// the segment's tangent.
func Repulsion(tip Vec, self *Curve, all []*Curve, p Params) Vec {
	var total Vec
	r2 := p.RepulsionRadius * p.RepulsionRadius
	for _, other := range all {
		if other == self {
			continue
		}
		for _, s := range other.Segments {
			d2 := tip.Dist2(s.Pos)
			if d2 >= r2 {
				continue
			}
			d := math.Sqrt(d2)
			if d == 0 {
				continue
			}
			normal := FromAngle(s.Angle + math.Pi/2)
			outward := tip.Sub(s.Pos).Dot(normal)
			if outward <= outwardThreshold {
				continue
			}
			mag := p.RepulsionStrength * (1 - d/p.RepulsionRadius) * outward
			total = total.Add(normal.Scale(mag))
		}
	}
	return total
}

// EdgeForce pushes a point within BoundaryMargin of an edge back inward,
// linearly in how deep it sits inside the margin.
func EdgeForce(pos Vec, b Bounds) Vec {
	var f Vec
	if pos.X < BoundaryMargin {
		f.X += BoundaryStrength * (1 - pos.X/BoundaryMargin)
	}
	if pos.X > b.Width-BoundaryMargin {
		f.X -= BoundaryStrength * (1 - (b.Width-pos.X)/BoundaryMargin)
	}
	if pos.Y < BoundaryMargin {
		f.Y += BoundaryStrength * (1 - pos.Y/BoundaryMargin)
	}
	if pos.Y > b.Height-BoundaryMargin {
		f.Y -= BoundaryStrength * (1 - (b.Height-pos.Y)/BoundaryMargin)
	}
	return f
}

// Steer adds force to the unit heading vector of angle and returns the
// resulting heading. Forces below the noise floor leave angle untouched.
func Steer(angle float64, force Vec) float64 {
	if force.Len2() <= forceFloor {
		return angle
	}
	return math.Atan2(math.Sin(angle)+force.Y, math.Cos(angle)+force.X)
}

// crosses reports whether next lands too close to any segment other than
// the last two.
func (c *Curve) crosses(next Vec, segLen float64) bool {
	gap := selfGapFactor * segLen
	gap2 := gap * gap
	for i := 0; i < len(c.Segments)-2; i++ {
		if next.Dist2(c.Segments[i].Pos) < gap2 {
			return true
		}
	}
	return false
}

func uniform(rng Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}
