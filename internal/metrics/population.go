package metrics

import "github.com/san-kum/reflow/internal/sim"

// MeanActive is the average number of growing curves per tick.
type MeanActive struct {
	sum     float64
	samples int
}

func NewMeanActive() *MeanActive { return &MeanActive{} }

func (m *MeanActive) Name() string { return "mean_active" }

func (m *MeanActive) Observe(s sim.Stats) {
	m.sum += float64(s.Active)
	m.samples++
}

func (m *MeanActive) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanActive) Reset() {
	m.sum = 0
	m.samples = 0
}

// counterRate averages the per-tick increase of a counter. A drop is read
// as a reset of the population and restarts the baseline.
type counterRate struct {
	last    int
	seen    bool
	total   int
	samples int
}

func (r *counterRate) observe(v int) {
	if r.seen && v >= r.last {
		r.total += v - r.last
		r.samples++
	}
	r.last, r.seen = v, true
}

func (r *counterRate) value() float64 {
	if r.samples == 0 {
		return 0
	}
	return float64(r.total) / float64(r.samples)
}

// SegmentRate is the mean number of segments added per tick.
type SegmentRate struct{ counterRate }

func NewSegmentRate() *SegmentRate { return &SegmentRate{} }

func (m *SegmentRate) Name() string { return "segments_per_tick" }
func (m *SegmentRate) Observe(s sim.Stats) { m.observe(s.Segments) }
func (m *SegmentRate) Value() float64 { return m.value() }
func (m *SegmentRate) Reset() { m.counterRate = counterRate{} }

// Turnover is the mean number of curves deactivated per tick.
type Turnover struct{ counterRate }

func NewTurnover() *Turnover { return &Turnover{} }

func (m *Turnover) Name() string { return "stops_per_tick" }

func (m *Turnover) Observe(s sim.Stats) {
	m.observe(s.MaxLength + s.OutOfBounds + s.SelfIntersection)
}

func (m *Turnover) Value() float64 { return m.value() }
func (m *Turnover) Reset() { m.counterRate = counterRate{} }
