package sim

import (
	"context"
	"testing"

	"github.com/san-kum/reflow/internal/config"
	"github.com/san-kum/reflow/internal/growth"
)

type fixedRand struct{ v float64 }

func (r fixedRand) Float64() float64 { return r.v }

func TestSpawnCurve(t *testing.T) {
	b := growth.Bounds{Width: 400, Height: 200}
	tests := []struct {
		v                float64
		x, y, angle, hue float64
	}{
		{0, 0, 0, 0, 0},
		{0.5, 200, 100, 3.141592653589793, 180},
	}

	for _, tt := range tests {
		c := SpawnCurve(fixedRand{tt.v}, b)
		tip := c.Tip()
		if tip.Pos.X != tt.x || tip.Pos.Y != tt.y {
			t.Errorf("v=%g: expected start (%g, %g), got %v", tt.v, tt.x, tt.y, tip.Pos)
		}
		if tip.Angle != tt.angle || c.Hue != tt.hue {
			t.Errorf("v=%g: expected angle %g hue %g, got %g %g", tt.v, tt.angle, tt.hue, tip.Angle, c.Hue)
		}
		if !c.Active || c.Len() != 1 {
			t.Errorf("v=%g: spawned curve should be active with one segment", tt.v)
		}
	}
}

func TestStats(t *testing.T) {
	ctrl := New(fixedRand{0.5}, growth.Bounds{Width: 100, Height: 100}, nil)
	a := growth.NewCurve(growth.Vec{}, 0, 0)
	b := growth.NewCurve(growth.Vec{}, 0, 0)
	b.Segments = append(b.Segments, growth.Segment{})
	b.Active, b.Reason = false, growth.OutOfBounds
	c := growth.NewCurve(growth.Vec{}, 0, 0)
	c.Active, c.Reason = false, growth.SelfIntersection
	ctrl.curves = []*growth.Curve{a, b, c}

	s := ctrl.Stats()
	want := Stats{Curves: 3, Active: 1, Segments: 4, OutOfBounds: 1, SelfIntersection: 1}
	if s != want {
		t.Errorf("Stats() = %+v, want %+v", s, want)
	}
}

func TestTickGrowsNewestFirst(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Randomness = 0
	cfg.GrowthRate = 1
	cfg.NumInitialCurves = 0

	ctrl := New(fixedRand{0.5}, cfg.Bounds(), nil)
	older := growth.NewCurve(growth.Vec{X: 400, Y: 440}, 0, 0)
	newer := growth.NewCurve(growth.Vec{X: 400, Y: 400}, 0, 0)
	ctrl.curves = []*growth.Curve{older, newer}

	ctrl.Tick(cfg)

	if older.Len() != 2 || newer.Len() != 2 {
		t.Fatalf("expected both curves to grow once, got %d and %d", older.Len(), newer.Len())
	}
	// newer sits on the inward side of older and grows straight.
	if got := newer.Tip().Pos; got.X != 420 || got.Y != 400 {
		t.Errorf("expected newer tip at (420, 400), got %v", got)
	}
	// older must have felt both of newer's segments.
	force := growth.Repulsion(growth.Vec{X: 400, Y: 440}, older, []*growth.Curve{newer}, cfg.GrowthParams())
	if want := growth.Steer(0, force); older.Tip().Angle != want {
		t.Errorf("expected older heading %f, got %f", want, older.Tip().Angle)
	}
}

func TestResizeKeepsSegments(t *testing.T) {
	cfg := config.DefaultConfig()
	ctrl := New(NewRand(3), cfg.Bounds(), nil)
	ctrl.Reset(cfg)
	before := ctrl.Snapshot()

	ctrl.Resize(growth.Bounds{Width: 100, Height: 100})

	if ctrl.Bounds().Width != 100 {
		t.Errorf("expected new width 100, got %g", ctrl.Bounds().Width)
	}
	for i, c := range ctrl.Curves() {
		if c.Tip() != before[i].Segments[0] {
			t.Errorf("curve %d moved on resize", i)
		}
	}
}

func TestRunRecordsPopulation(t *testing.T) {
	cfg := config.DefaultConfig()
	ctrl := New(NewRand(11), cfg.Bounds(), nil)
	ctrl.Reset(cfg)

	rec := NewPopulationRecorder(50)
	if err := ctrl.Run(context.Background(), cfg, 50, rec); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(rec.History) != 50 {
		t.Fatalf("expected 50 samples, got %d", len(rec.History))
	}
	for i, s := range rec.History {
		if s.Frame != i+1 {
			t.Errorf("sample %d has frame %d", i, s.Frame)
		}
	}
	if got := rec.Active(); len(got) != 50 || got[49] != float64(rec.History[49].Active) {
		t.Errorf("Active() does not mirror history: %v", got)
	}
}

func TestRunRejectsNegativeFrames(t *testing.T) {
	cfg := config.DefaultConfig()
	ctrl := New(NewRand(1), cfg.Bounds(), nil)
	if err := ctrl.Run(context.Background(), cfg, -1); err == nil {
		t.Error("expected error for negative frame count")
	}
}
