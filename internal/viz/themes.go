package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the colours used for cells and chrome.
type Theme struct {
	Name   string
	Alive  lipgloss.Color
	Heat   []lipgloss.Color // coolest to hottest
	Cursor lipgloss.Color
	Accent lipgloss.Color
	Muted  lipgloss.Color
}

var (
	ThemePhosphor = Theme{
		Name:   "phosphor",
		Alive:  lipgloss.Color("#00ff66"),
		Heat:   []lipgloss.Color{"#003311", "#006622", "#009933", "#00cc44", "#00ff66"},
		Cursor: lipgloss.Color("#ffff00"),
		Accent: lipgloss.Color("#88ff88"),
		Muted:  lipgloss.Color("#005500"),
	}

	ThemeInferno = Theme{
		Name:   "inferno",
		Alive:  lipgloss.Color("#fff5a0"),
		Heat:   []lipgloss.Color{"#2d0a3e", "#7a1f5c", "#c7364a", "#f56b22", "#fff5a0"},
		Cursor: lipgloss.Color("#00ffff"),
		Accent: lipgloss.Color("#ff9f43"),
		Muted:  lipgloss.Color("#8b6b8c"),
	}

	ThemeOcean = Theme{
		Name:   "ocean",
		Alive:  lipgloss.Color("#e0f0ff"),
		Heat:   []lipgloss.Color{"#001a33", "#004477", "#0077be", "#00a8cc", "#e0f0ff"},
		Cursor: lipgloss.Color("#ffd700"),
		Accent: lipgloss.Color("#00a8cc"),
		Muted:  lipgloss.Color("#4488aa"),
	}

	ThemeMinimal = Theme{
		Name:   "minimal",
		Alive:  lipgloss.Color("#ffffff"),
		Heat:   []lipgloss.Color{"#333333", "#666666", "#999999", "#cccccc", "#ffffff"},
		Cursor: lipgloss.Color("#0088ff"),
		Accent: lipgloss.Color("#0088ff"),
		Muted:  lipgloss.Color("#888888"),
	}

	Themes = []Theme{
		ThemePhosphor,
		ThemeInferno,
		ThemeOcean,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name, falling back to phosphor.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemePhosphor
}

// NextTheme returns the theme after t in Themes.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// HeatColor picks the ramp colour for a heat value in (0, 255].
func (t Theme) HeatColor(v uint8) lipgloss.Color {
	if v == 255 || len(t.Heat) == 0 {
		return t.Alive
	}
	idx := int(v) * len(t.Heat) / 256
	return t.Heat[idx]
}
