package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name   string
	Accent lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Border lipgloss.Color
	Frozen lipgloss.Color
}

var (
	ThemeMoss = Theme{
		Name:   "moss",
		Accent: lipgloss.Color("#a3c55b"),
		Text:   lipgloss.Color("#ede3df"),
		Muted:  lipgloss.Color("#7a7368"),
		Border: lipgloss.Color("#4c6121"),
		Frozen: lipgloss.Color("#ffaa00"),
	}

	ThemeInk = Theme{
		Name:   "ink",
		Accent: lipgloss.Color("#ffffff"),
		Text:   lipgloss.Color("#cccccc"),
		Muted:  lipgloss.Color("#666666"),
		Border: lipgloss.Color("#444444"),
		Frozen: lipgloss.Color("#ff4444"),
	}

	ThemeOcean = Theme{
		Name:   "ocean",
		Accent: lipgloss.Color("#00a8cc"),
		Text:   lipgloss.Color("#e0f0ff"),
		Muted:  lipgloss.Color("#4488aa"),
		Border: lipgloss.Color("#0077be"),
		Frozen: lipgloss.Color("#ffd700"),
	}

	Themes = []Theme{ThemeMoss, ThemeInk, ThemeOcean}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeMoss
}

// NextTheme returns the theme after t, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
