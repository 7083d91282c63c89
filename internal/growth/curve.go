package growth

// Segment is a point on a curve together with the tangent heading at that
// point. Segments are never modified after they are appended.
type Segment struct {
	Pos   Vec
	Angle float64
}

// StopReason records why a curve stopped growing.
type StopReason int

const (
	Growing StopReason = iota
	MaxLength
	OutOfBounds
	SelfIntersection
)

func (r StopReason) String() string {
	switch r {
	case Growing:
		return "growing"
	case MaxLength:
		return "max_length"
	case OutOfBounds:
		return "out_of_bounds"
	case SelfIntersection:
		return "self_intersection"
	default:
		return "unknown"
	}
}

// Curve is an ordered, append-only run of segments. Once Active is false it
// never becomes true again.
type Curve struct {
	Segments []Segment
	Active   bool
	Hue      float64
	Reason   StopReason
}

// NewCurve starts an active curve with a single segment.
func NewCurve(start Vec, angle, hue float64) *Curve {
	return &Curve{
		Segments: []Segment{{Pos: start, Angle: angle}},
		Active:   true,
		Hue:      hue,
	}
}

// Len returns the number of segments.
func (c *Curve) Len() int { return len(c.Segments) }

// Tip returns the most recently appended segment.
func (c *Curve) Tip() Segment { return c.Segments[len(c.Segments)-1] }

// Points returns the polyline of segment positions in path order.
func (c *Curve) Points() []Vec {
	pts := make([]Vec, len(c.Segments))
	for i, s := range c.Segments {
		pts[i] = s.Pos
	}
	return pts
}

// Clone returns a deep copy that shares no memory with c.
func (c *Curve) Clone() Curve {
	segs := make([]Segment, len(c.Segments))
	copy(segs, c.Segments)
	return Curve{Segments: segs, Active: c.Active, Hue: c.Hue, Reason: c.Reason}
}

func (c *Curve) stop(reason StopReason) {
	if c.Active {
		c.Reason = reason
	}
	c.Active = false
}

// Bounds is the drawable canvas, spanning [0, Width] x [0, Height].
type Bounds struct {
	Width, Height float64
}

// Contains reports whether p lies inside the canvas grown by margin on every
// side.
func (b Bounds) Contains(p Vec, margin float64) bool {
	return p.X >= -margin && p.X <= b.Width+margin && p.Y >= -margin && p.Y <= b.Height+margin
}
