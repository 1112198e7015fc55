package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/heroviz/internal/scene"
)

// Theme defines the terminal color scheme. Tint decides how particle
// colors are shown.
type Theme struct {
	Name    string
	Title   lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Border  lipgloss.Color
	Running lipgloss.Color
	Paused  lipgloss.Color

	tint func(scene.RGB) scene.RGB
}

// Tint maps a scene color to the terminal color used for it.
func (t Theme) Tint(c scene.RGB) lipgloss.Color {
	if t.tint != nil {
		c = t.tint(c)
	}
	return lipgloss.Color(hexColor(int(c.R), int(c.G), int(c.B)))
}

func luma(c scene.RGB) float64 {
	return 0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)
}

// Available themes
var (
	ThemeHero = Theme{
		Name:    "hero",
		Title:   lipgloss.Color("#06b6d4"),
		Accent:  lipgloss.Color("#8b5cf6"),
		Text:    lipgloss.Color("#e2e8f0"),
		Muted:   lipgloss.Color("#64748b"),
		Border:  lipgloss.Color("#334155"),
		Running: lipgloss.Color("#22d3ee"),
		Paused:  lipgloss.Color("#f59e0b"),
	}

	ThemeMono = Theme{
		Name:    "mono",
		Title:   lipgloss.Color("#ffffff"),
		Accent:  lipgloss.Color("#cccccc"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Border:  lipgloss.Color("#444444"),
		Running: lipgloss.Color("#ffffff"),
		Paused:  lipgloss.Color("#888888"),
		tint: func(c scene.RGB) scene.RGB {
			v := uint8(80 + luma(c)*175/255)
			return scene.RGB{R: v, G: v, B: v}
		},
	}

	ThemeRetro = Theme{
		Name:    "retro",
		Title:   lipgloss.Color("#00ff00"),
		Accent:  lipgloss.Color("#88ff88"),
		Text:    lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
		Border:  lipgloss.Color("#003300"),
		Running: lipgloss.Color("#88ff88"),
		Paused:  lipgloss.Color("#ffff00"),
		tint: func(c scene.RGB) scene.RGB {
			return scene.RGB{G: uint8(96 + luma(c)*159/255)}
		},
	}

	ThemeOcean = Theme{
		Name:    "ocean",
		Title:   lipgloss.Color("#00a8cc"),
		Accent:  lipgloss.Color("#ffd700"),
		Text:    lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#4488aa"),
		Border:  lipgloss.Color("#0077be"),
		Running: lipgloss.Color("#00ff88"),
		Paused:  lipgloss.Color("#ffcc00"),
		tint: func(c scene.RGB) scene.RGB {
			return scene.RGB{R: c.R / 3, G: c.G, B: 255}
		},
	}

	ThemeSunset = Theme{
		Name:    "sunset",
		Title:   lipgloss.Color("#ff6b6b"),
		Accent:  lipgloss.Color("#ff9ff3"),
		Text:    lipgloss.Color("#fff5f5"),
		Muted:   lipgloss.Color("#8b6b8c"),
		Border:  lipgloss.Color("#5d3b5e"),
		Running: lipgloss.Color("#5fd068"),
		Paused:  lipgloss.Color("#ffc048"),
		tint: func(c scene.RGB) scene.RGB {
			return scene.RGB{R: 255 - c.R/4, G: c.B / 2, B: c.G / 2}
		},
	}

	// All available themes, the default first.
	Themes = []Theme{
		ThemeHero,
		ThemeMono,
		ThemeRetro,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to the default.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeHero
}

// NextTheme returns the theme after t, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return ThemeHero
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
