// Package gui is the desktop window for reflow: the curves drawn at canvas
// scale with a parameter overlay.
package gui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/reflow/internal/config"
	"github.com/san-kum/reflow/internal/growth"
	"github.com/san-kum/reflow/internal/sim"
	"github.com/san-kum/reflow/internal/viz"
)

const fontPath = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"

var (
	ColPanel   = rl.NewColor(10, 10, 10, 170)
	ColText    = rl.NewColor(220, 220, 220, 255)
	ColTextDim = rl.NewColor(140, 140, 140, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
)

type App struct {
	Ctrl      *sim.Controller
	Cfg       *config.Config
	Controls  []viz.Control
	Selected  int
	ShowPanel bool
	Font      rl.Font

	logger *log.Logger
}

// initWindow opens a resizable window sized to the canvas bounds.
func initWindow(b growth.Bounds, fps int) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(b.Width), int32(b.Height), "reflow")
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

// loadFont prefers Liberation Mono and falls back to raylib's built-in font.
func loadFont() rl.Font {
	font := rl.LoadFontEx(fontPath, 32, nil, 0)
	if font.Texture.ID == 0 {
		return rl.GetFontDefault()
	}
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func NewApp(ctrl *sim.Controller, cfg *config.Config, logger *log.Logger) *App {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &App{
		Ctrl:      ctrl,
		Cfg:       cfg,
		Controls:  viz.Controls(),
		ShowPanel: true,
		Font:      loadFont(),
		logger:    logger,
	}
}

// Run opens the window and blocks until it is closed. ctrl must already be
// reset with bounds matching cfg.
func Run(ctrl *sim.Controller, cfg *config.Config, fps int, logger *log.Logger) {
	if fps <= 0 {
		fps = 60
	}
	initWindow(ctrl.Bounds(), fps)
	defer rl.CloseWindow()
	app := NewApp(ctrl, cfg, logger)
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

// Update handles input, resize and one simulation tick. It returns false
// when the user asked to quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		return false
	}

	if rl.IsWindowResized() {
		b := growth.Bounds{Width: float64(rl.GetScreenWidth()), Height: float64(rl.GetScreenHeight())}
		a.Ctrl.Resize(b)
		a.logger.Debug("resize", "width", b.Width, "height", b.Height)
	}

	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		a.Cfg.Freeze = !a.Cfg.Freeze
	case rl.IsKeyPressed(rl.KeyR):
		a.Ctrl.Reset(a.Cfg)
	case rl.IsKeyPressed(rl.KeyC):
		a.Cfg.DynamicColor = !a.Cfg.DynamicColor
	case rl.IsKeyPressed(rl.KeyH):
		a.ShowPanel = !a.ShowPanel
	}

	if n := len(a.Controls); n > 0 {
		if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) || rl.IsKeyPressed(rl.KeyTab) {
			a.Selected = (a.Selected + 1) % n
		}
		if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
			a.Selected = (a.Selected + n - 1) % n
		}

		steps := 1
		if rl.IsKeyDown(rl.KeyLeftShift) {
			steps = 5
		}
		c := a.Controls[a.Selected]
		if rl.IsKeyPressed(rl.KeyRight) || rl.IsKeyPressed(rl.KeyL) {
			c.Adjust(a.Cfg, steps)
		}
		if rl.IsKeyPressed(rl.KeyLeft) {
			c.Adjust(a.Cfg, -steps)
		}
	}

	if !a.Cfg.Freeze {
		a.Ctrl.Tick(a.Cfg)
	}
	return true
}

func (a *App) Draw() {
	rl.BeginDrawing()
	a.drawCurves()
	if a.ShowPanel {
		a.DrawHUD()
	}
	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	st := a.Ctrl.Stats()
	rl.DrawRectangle(10, 10, 300, int32(150+22*len(a.Controls)), ColPanel)

	a.drawText("reflow", 20, 18, 24, ColSelect)
	status, col := "GROWING", ColSelect
	if a.Cfg.Freeze {
		status, col = "FROZEN", ColTextDim
	}
	a.drawText(status, 220, 22, 14, col)

	a.drawText(fmt.Sprintf("frame %d   %d FPS", st.Frame, rl.GetFPS()), 20, 52, 14, ColTextDim)
	a.drawText(fmt.Sprintf("curves %d (%d active)", st.Curves, st.Active), 20, 72, 14, ColText)
	a.drawText(fmt.Sprintf("segments %d", st.Segments), 20, 92, 14, ColText)
	a.drawText(fmt.Sprintf("stopped len %d edge %d self %d", st.MaxLength, st.OutOfBounds, st.SelfIntersection), 20, 112, 14, ColTextDim)

	y := 140
	for i, c := range a.Controls {
		line := fmt.Sprintf("  %-11s %s", c.Label, c.Format(a.Cfg))
		tint := ColText
		if i == a.Selected {
			line = fmt.Sprintf("> %-11s %s", c.Label, c.Format(a.Cfg))
			tint = ColSelect
		}
		a.drawText(line, 20, y, 16, tint)
		y += 22
	}

	h := int32(rl.GetScreenHeight())
	a.drawText("[SPACE] FREEZE  [R] RESET  [C] COLOR  [H] PANEL  [Q] QUIT", 20, int(h)-24, 14, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}
