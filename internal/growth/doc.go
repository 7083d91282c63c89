// Package growth implements the segment-by-segment growth of organic curves.
//
// A [Curve] is an append-only list of [Segment] values. Each call to [Grow]
// extends one curve by a single segment whose heading combines:
//
//   - a uniform random jitter of at most Params.Randomness radians
//   - tangent repulsion from the segments of every other curve
//   - a push away from the four canvas edges
//
// Growth stops permanently once a curve records a [StopReason]. Stopping is
// not an error and is never reported as one.
//
// # Randomness
//
// All randomness is drawn from the [Rand] passed by the caller, so a seeded
// source reproduces identical geometry.
package growth
