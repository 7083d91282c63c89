package growth

import "math"

// Vec is a point or direction in canvas space.
type Vec struct {
	X, Y float64
}

// FromAngle returns the unit vector with the given heading in radians.
func FromAngle(angle float64) Vec {
	return Vec{X: math.Cos(angle), Y: math.Sin(angle)}
}

func (v Vec) Add(o Vec) Vec       { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec       { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Scale(f float64) Vec { return Vec{v.X * f, v.Y * f} }
func (v Vec) Dot(o Vec) float64   { return v.X*o.X + v.Y*o.Y }
func (v Vec) Len2() float64       { return v.Dot(v) }
func (v Vec) Dist2(o Vec) float64 { return v.Sub(o).Len2() }
