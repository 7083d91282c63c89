package metrics

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/san-kum/reflow/internal/sim"
)

const minSpectrumSamples = 8

// Periodicity is the dominant period, in ticks, of the active-curve count.
// Replenishment makes the population oscillate as curves die and respawn;
// a flat or too short series reports 0.
type Periodicity struct {
	active []float64
}

func NewPeriodicity() *Periodicity { return &Periodicity{} }

func (p *Periodicity) Name() string { return "active_period" }

func (p *Periodicity) Observe(s sim.Stats) {
	p.active = append(p.active, float64(s.Active))
}

func (p *Periodicity) Value() float64 {
	n := len(p.active)
	if n < minSpectrumSamples {
		return 0
	}
	ps := PowerSpectrum(p.active)
	best, bestMag := 0, 1e-9
	for k := 1; k < len(ps); k++ {
		if ps[k] > bestMag {
			best, bestMag = k, ps[k]
		}
	}
	if best == 0 {
		return 0
	}
	return float64(n) / float64(best)
}

func (p *Periodicity) Reset() { p.active = p.active[:0] }

// PowerSpectrum returns the magnitude of the first n/2+1 frequency bins of
// data with its mean removed.
func PowerSpectrum(data []float64) []float64 {
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	centered := make([]float64, len(data))
	for i, v := range data {
		centered[i] = v - mean
	}

	spectrum := fft.FFTReal(centered)
	ps := make([]float64, len(spectrum)/2+1)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}
