package viz

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/reflow/internal/config"
	"github.com/san-kum/reflow/internal/growth"
	"github.com/san-kum/reflow/internal/render"
	"github.com/san-kum/reflow/internal/sim"
)

const (
	DefaultCols = 80
	DefaultRows = 30

	// UnitsPerDot is how many canvas units one Braille sub-pixel covers.
	UnitsPerDot = 4.0

	panelWidth      = 42
	historyCapacity = 600
	minCols         = 10
	minRows         = 5
)

// CanvasBounds returns the simulation bounds shown by a cols x rows canvas.
func CanvasBounds(cols, rows int) growth.Bounds {
	return growth.Bounds{Width: float64(cols*2) * UnitsPerDot, Height: float64(rows*4) * UnitsPerDot}
}

type TickMsg time.Time

// Model drives the controller from Bubble Tea ticks and edits cfg in place.
type Model struct {
	ctrl       *sim.Controller
	cfg        *config.Config
	logger     *log.Logger
	canvas     *Canvas
	controls   []Control
	selected   int
	population []float64
	theme      Theme
	styles     styles
	fps        int
	showHelp   bool
	quitting   bool
}

// NewModel wraps a controller that has already been reset. A nil logger
// discards output.
func NewModel(ctrl *sim.Controller, cfg *config.Config, fps int, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if fps <= 0 {
		fps = 30
	}
	return Model{
		ctrl:       ctrl,
		cfg:        cfg,
		logger:     logger,
		canvas:     NewCanvas(DefaultCols, DefaultRows),
		controls:   Controls(),
		population: make([]float64, 0, historyCapacity),
		theme:      ThemeMoss,
		styles:     newStyles(ThemeMoss),
		fps:        fps,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case " ":
			m.cfg.Freeze = !m.cfg.Freeze
			m.logger.Debug("freeze", "on", m.cfg.Freeze)
		case "r":
			m.ctrl.Reset(m.cfg)
			m.population = m.population[:0]
		case "c":
			m.cfg.DynamicColor = !m.cfg.DynamicColor
		case "tab":
			m.selected = (m.selected + 1) % len(m.controls)
		case "shift+tab":
			m.selected = (m.selected + len(m.controls) - 1) % len(m.controls)
		case "up", "k":
			m.controls[m.selected].Adjust(m.cfg, 1)
		case "down", "j":
			m.controls[m.selected].Adjust(m.cfg, -1)
		case "t":
			m.theme = NextTheme(m.theme)
			m.styles = newStyles(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		cols := max(msg.Width-panelWidth-6, minCols)
		rows := max(msg.Height-2, minRows)
		m.canvas = NewCanvas(cols, rows)
		m.ctrl.Resize(CanvasBounds(cols, rows))
	case TickMsg:
		if !m.cfg.Freeze {
			m.ctrl.Tick(m.cfg)
			m.population = append(m.population, float64(m.ctrl.ActiveCount()))
			if len(m.population) > historyCapacity {
				m.population = m.population[1:]
			}
		}
		return m, m.tick()
	}
	return m, nil
}

// draw rasterizes every curve onto the canvas and returns one style per
// curve.
func (m Model) draw() []lipgloss.Style {
	m.canvas.Clear()
	curves := m.ctrl.Curves()
	palette := make([]lipgloss.Style, len(curves))
	for i, c := range curves {
		stroke, err := render.ResolveStroke(c.Hue, m.cfg)
		if err != nil {
			stroke = render.HueColor(c.Hue)
		}
		palette[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(render.Hex(stroke)))

		px, py := project(c.Segments[0].Pos)
		if c.Len() == 1 {
			m.canvas.Set(px, py, i)
			continue
		}
		for _, s := range c.Segments[1:] {
			x, y := project(s.Pos)
			m.canvas.DrawLine(px, py, x, y, i)
			px, py = x, y
		}
	}
	return palette
}

func project(p growth.Vec) (int, int) {
	return int(math.Floor(p.X / UnitsPerDot)), int(math.Floor(p.Y / UnitsPerDot))
}

// View renders the TUI interface.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	palette := m.draw()
	canvasView := m.styles.canvas.Render(m.canvas.Render(palette))

	st := m.ctrl.Stats()
	var s strings.Builder
	s.WriteString(m.styles.header.Render("ORGANIC REFLOW") + "\n")
	if m.cfg.Freeze {
		s.WriteString(m.styles.frozen.Render("FROZEN") + "\n\n")
	} else {
		s.WriteString(m.styles.running.Render("GROWING") + "\n\n")
	}

	if len(m.population) > 1 {
		chart := asciigraph.Plot(m.population, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("active curves"))
		s.WriteString(m.styles.graph.Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(m.styles.label.Render(label) + m.styles.value.Render(value) + "\n")
	}
	row("Frame", fmt.Sprintf("%d", st.Frame))
	row("Curves", fmt.Sprintf("%d (%d active)", st.Curves, st.Active))
	row("Segments", fmt.Sprintf("%d", st.Segments))
	row("Stopped", fmt.Sprintf("len %d  edge %d  self %d", st.MaxLength, st.OutOfBounds, st.SelfIntersection))
	b := m.ctrl.Bounds()
	row("Canvas", fmt.Sprintf("%.0fx%.0f", b.Width, b.Height))

	swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(render.Hex(render.HueColor(m.cfg.HueShift)))).Render("██")
	if m.cfg.DynamicColor {
		row("Color", "dynamic "+swatch)
	} else {
		row("Color", "fixed "+string(m.cfg.LineColor))
	}

	s.WriteString("\nPARAMETERS\n")
	for i, c := range m.controls {
		line := fmt.Sprintf("%-10s %s %s", c.Label, slider(c.Fraction(m.cfg), 10), c.Format(m.cfg))
		if i == m.selected {
			s.WriteString(m.styles.active.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + m.styles.value.Render(line) + "\n")
		}
	}
	s.WriteString(m.styles.help.Render("SP:Freeze R:Reset Q:Quit\nTab:Select ↑↓:Tune C:Color\nT:Theme ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, m.styles.panel.Render(s.String()))
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Freeze/resume growth     ║
║  R        - Reset curves             ║
║  Q        - Quit                     ║
║  Tab      - Next parameter           ║
║  Up/K     - Increase parameter       ║
║  Down/J   - Decrease parameter       ║
║  C        - Toggle dynamic color     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`

// Run starts the live view on the alternate screen and blocks until quit.
func Run(ctrl *sim.Controller, cfg *config.Config, fps int, logger *log.Logger) error {
	p := tea.NewProgram(NewModel(ctrl, cfg, fps, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
