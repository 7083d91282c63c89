package gui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/reflow/internal/render"
)

func toColor(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

// drawCurves clears to the background and strokes every curve with round
// joins and caps.
func (a *App) drawCurves() {
	frame, err := render.NewFrame(a.Ctrl.Snapshot(), a.Cfg, a.Ctrl.Bounds())
	if err != nil {
		a.logger.Warn("frame", "err", err)
		rl.ClearBackground(rl.Black)
		return
	}

	rl.ClearBackground(toColor(frame.Background))
	thick := float32(frame.Thickness)
	for _, p := range frame.Paths {
		stroke := toColor(p.Stroke)
		for i := 1; i < len(p.Points); i++ {
			from := rl.NewVector2(float32(p.Points[i-1].X), float32(p.Points[i-1].Y))
			to := rl.NewVector2(float32(p.Points[i].X), float32(p.Points[i].Y))
			rl.DrawLineEx(from, to, thick, stroke)
			if thick > 1 {
				rl.DrawCircleV(to, thick/2, stroke)
			}
		}
		if thick > 1 && len(p.Points) > 0 {
			rl.DrawCircleV(rl.NewVector2(float32(p.Points[0].X), float32(p.Points[0].Y)), thick/2, stroke)
		}
	}
}
