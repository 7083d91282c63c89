package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/reflow/internal/sim"
)

func TestMeanActive(t *testing.T) {
	m := NewMeanActive()
	if m.Value() != 0 {
		t.Errorf("expected 0 before any sample, got %f", m.Value())
	}
	for _, a := range []int{1, 2, 3} {
		m.Observe(sim.Stats{Active: a})
	}
	if m.Value() != 2 {
		t.Errorf("expected mean 2, got %f", m.Value())
	}
	m.Reset()
	if m.Value() != 0 {
		t.Error("expected reset to clear samples")
	}
}

func TestSegmentRate(t *testing.T) {
	m := NewSegmentRate()
	for _, n := range []int{3, 6, 9, 12} {
		m.Observe(sim.Stats{Segments: n})
	}
	if m.Value() != 3 {
		t.Errorf("expected 3 segments per tick, got %f", m.Value())
	}
}

func TestSegmentRateSkipsReset(t *testing.T) {
	m := NewSegmentRate()
	for _, n := range []int{10, 14, 3, 5} {
		m.Observe(sim.Stats{Segments: n})
	}
	// 10->14 and 3->5; the drop to 3 only moves the baseline.
	if m.Value() != 3 {
		t.Errorf("expected 3, got %f", m.Value())
	}
}

func TestTurnover(t *testing.T) {
	m := NewTurnover()
	m.Observe(sim.Stats{})
	m.Observe(sim.Stats{MaxLength: 1})
	m.Observe(sim.Stats{MaxLength: 1, OutOfBounds: 1, SelfIntersection: 1})
	if m.Value() != 1.5 {
		t.Errorf("expected 1.5 stops per tick, got %f", m.Value())
	}
}

func TestPeriodicity(t *testing.T) {
	p := NewPeriodicity()
	for i := 0; i < 200; i++ {
		active := 3
		if (i/10)%2 == 0 {
			active = 5
		}
		p.Observe(sim.Stats{Active: active})
	}
	if got := p.Value(); math.Abs(got-20) > 1e-9 {
		t.Errorf("expected period 20, got %f", got)
	}
}

func TestPeriodicityFlat(t *testing.T) {
	p := NewPeriodicity()
	for i := 0; i < 64; i++ {
		p.Observe(sim.Stats{Active: 4})
	}
	if p.Value() != 0 {
		t.Errorf("expected 0 for flat series, got %f", p.Value())
	}

	short := NewPeriodicity()
	short.Observe(sim.Stats{Active: 1})
	if short.Value() != 0 {
		t.Error("expected 0 for short series")
	}
}

func TestSetIsObserver(t *testing.T) {
	var _ sim.Observer = Set{}

	s := Default()
	s.OnTick(sim.Stats{Active: 2, Segments: 2})
	s.OnTick(sim.Stats{Active: 4, Segments: 6})

	values := s.Values()
	if len(values) != 4 {
		t.Fatalf("expected 4 metrics, got %d", len(values))
	}
	if values["mean_active"] != 3 {
		t.Errorf("expected mean_active 3, got %f", values["mean_active"])
	}
	if values["segments_per_tick"] != 4 {
		t.Errorf("expected segments_per_tick 4, got %f", values["segments_per_tick"])
	}

	s.Reset()
	if s.Values()["mean_active"] != 0 {
		t.Error("expected reset to clear every metric")
	}
}
