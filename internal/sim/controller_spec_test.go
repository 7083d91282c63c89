package sim_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/reflow/internal/config"
	"github.com/san-kum/reflow/internal/growth"
	"github.com/san-kum/reflow/internal/sim"
)

var _ = Describe("Controller", func() {
	var (
		cfg  *config.Config
		ctrl *sim.Controller
	)

	BeforeEach(func() {
		cfg = config.DefaultConfig()
		ctrl = sim.New(sim.NewRand(42), cfg.Bounds(), nil)
	})

	Describe("Reset", func() {
		It("spawns exactly numInitialCurves single-segment curves inside the canvas", func() {
			cfg.NumInitialCurves = 7
			ctrl.Reset(cfg)

			curves := ctrl.Curves()
			Expect(curves).To(HaveLen(7))
			for _, c := range curves {
				Expect(c.Active).To(BeTrue())
				Expect(c.Segments).To(HaveLen(1))
				Expect(cfg.Bounds().Contains(c.Tip().Pos, 0)).To(BeTrue())
				Expect(c.Hue).To(BeNumerically(">=", 0))
				Expect(c.Hue).To(BeNumerically("<", 360))
			}
		})

		It("replaces the previous collection", func() {
			ctrl.Reset(cfg)
			for i := 0; i < 20; i++ {
				ctrl.Tick(cfg)
			}
			cfg.NumInitialCurves = 2
			ctrl.Reset(cfg)

			Expect(ctrl.Curves()).To(HaveLen(2))
			Expect(ctrl.Frame()).To(Equal(0))
		})
	})

	Describe("Tick", func() {
		BeforeEach(func() {
			ctrl.Reset(cfg)
		})

		It("does nothing while frozen", func() {
			for i := 0; i < 5; i++ {
				ctrl.Tick(cfg)
			}
			before := ctrl.Snapshot()
			frame := ctrl.Frame()

			cfg.Freeze = true
			for i := 0; i < 10; i++ {
				ctrl.Tick(cfg)
			}

			Expect(ctrl.Snapshot()).To(Equal(before))
			Expect(ctrl.Frame()).To(Equal(frame))
		})

		It("adds at most growthRate segments to a curve per tick", func() {
			before := ctrl.Snapshot()
			ctrl.Tick(cfg)
			after := ctrl.Curves()

			for i := range before {
				Expect(after[i].Len() - before[i].Len()).To(BeNumerically("<=", cfg.GrowthRate))
			}
		})

		It("never exceeds the segment cap and never revives a stopped curve", func() {
			cfg.MaxSegmentsPerCurve = 15
			stopped := map[*growth.Curve]int{}

			for tick := 0; tick < 150; tick++ {
				ctrl.Tick(cfg)
				for _, c := range ctrl.Curves() {
					Expect(c.Len()).To(BeNumerically("<=", cfg.MaxSegmentsPerCurve))
					if n, ok := stopped[c]; ok {
						Expect(c.Active).To(BeFalse())
						Expect(c.Len()).To(Equal(n))
					} else if !c.Active {
						stopped[c] = c.Len()
					}
				}
			}

			Expect(stopped).NotTo(BeEmpty())
		})

		It("replenishes the population by at most one curve per tick", func() {
			cfg.NumInitialCurves = 1
			cfg.Width, cfg.Height = 2000, 2000
			ctrl = sim.New(sim.NewRand(7), cfg.Bounds(), nil)
			ctrl.Reset(cfg)
			cfg.NumInitialCurves = 5

			peak := 0
			for tick := 0; tick < 300; tick++ {
				total := len(ctrl.Curves())
				ctrl.Tick(cfg)
				grown := len(ctrl.Curves()) - total
				active := ctrl.ActiveCount()

				Expect(grown).To(BeElementOf(0, 1))
				Expect(active).To(BeNumerically("<=", 5))
				if grown == 0 {
					Expect(active).To(Equal(5))
				}
				peak = max(peak, active)
			}

			Expect(peak).To(Equal(5))
		})
	})

	Describe("determinism", func() {
		run := func(seed int64) []growth.Curve {
			c := sim.New(sim.NewRand(seed), cfg.Bounds(), nil)
			c.Reset(cfg)
			Expect(c.Run(context.Background(), cfg, 120)).To(Succeed())
			return c.Snapshot()
		}

		It("reproduces identical geometry from the same seed", func() {
			Expect(run(1234)).To(Equal(run(1234)))
		})

		It("diverges for different seeds", func() {
			Expect(run(1234)).NotTo(Equal(run(4321)))
		})
	})

	Describe("Snapshot", func() {
		It("is unaffected by later ticks", func() {
			ctrl.Reset(cfg)
			snap := ctrl.Snapshot()
			lengths := make([]int, len(snap))
			for i, c := range snap {
				lengths[i] = len(c.Segments)
			}

			for i := 0; i < 10; i++ {
				ctrl.Tick(cfg)
			}

			for i, c := range snap {
				Expect(c.Segments).To(HaveLen(lengths[i]))
			}
		})
	})

	Describe("Run", func() {
		It("stops when the context is canceled", func() {
			ctrl.Reset(cfg)
			ctx, cancel := context.WithCancel(context.Background())
			ticks := 0
			obs := sim.ObserverFunc(func(s sim.Stats) {
				ticks++
				if ticks == 3 {
					cancel()
				}
			})

			err := ctrl.Run(ctx, cfg, 100, obs)

			Expect(err).To(MatchError(context.Canceled))
			Expect(ticks).To(Equal(3))
			Expect(ctrl.Frame()).To(Equal(3))
		})
	})
})
