// Package sim owns the curve collection and its frame-by-frame lifecycle.
//
// A [Controller] grows every active curve once per [Controller.Tick],
// spawning at most one replacement per tick while the active population is
// below the configured target. [Controller.Run] drives ticks headlessly and
// reports each frame to [Observer] implementations.
//
// # Thread Safety
//
// A Controller is NOT safe for concurrent use. Ticks, configuration edits
// and render reads must be serialized by the caller; use
// [Controller.Snapshot] to hand a stable copy to another goroutine.
package sim
