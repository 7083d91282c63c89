package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/reflow/internal/config"
)

// Observer is notified after every tick of Run.
type Observer interface {
	OnTick(s Stats)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Stats)

func (f ObserverFunc) OnTick(s Stats) { f(s) }

// Run ticks the controller frames times, checking ctx between ticks. It
// does not reset first; call Reset to start from a fresh population.
func (c *Controller) Run(ctx context.Context, cfg *config.Config, frames int, observers ...Observer) error {
	if frames < 0 {
		return fmt.Errorf("frames must be >= 0, got %d", frames)
	}

	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		c.Tick(cfg)

		if len(observers) == 0 {
			continue
		}
		s := c.Stats()
		for _, obs := range observers {
			obs.OnTick(s)
		}
	}

	c.logger.Info("run finished", "frames", frames, "curves", len(c.curves), "active", c.ActiveCount())
	return nil
}

// PopulationRecorder keeps the Stats of every observed tick.
type PopulationRecorder struct {
	History []Stats
}

func NewPopulationRecorder(capacity int) *PopulationRecorder {
	return &PopulationRecorder{History: make([]Stats, 0, capacity)}
}

func (r *PopulationRecorder) OnTick(s Stats) { r.History = append(r.History, s) }

// Active returns the active-curve count per recorded tick.
func (r *PopulationRecorder) Active() []float64 {
	out := make([]float64, len(r.History))
	for i, s := range r.History {
		out[i] = float64(s.Active)
	}
	return out
}
