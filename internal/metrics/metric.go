// Package metrics summarizes a run from the per-tick population stats.
package metrics

import "github.com/san-kum/reflow/internal/sim"

type Metric interface {
	Name() string
	Observe(s sim.Stats)
	Value() float64
	Reset()
}

// Set fans each tick out to its metrics. It satisfies sim.Observer.
type Set []Metric

// Default returns the metrics recorded for every headless run.
func Default() Set {
	return Set{NewMeanActive(), NewSegmentRate(), NewTurnover(), NewPeriodicity()}
}

func (s Set) OnTick(st sim.Stats) {
	for _, m := range s {
		m.Observe(st)
	}
}

func (s Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s))
	for _, m := range s {
		out[m.Name()] = m.Value()
	}
	return out
}

func (s Set) Reset() {
	for _, m := range s {
		m.Reset()
	}
}
