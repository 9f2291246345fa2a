package viz

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the scene colors and the HUD color scheme.
type Theme struct {
	Name string

	// Scene
	Background color.RGBA
	Highlight  color.RGBA // fill of the dragged body
	Guide      color.RGBA // slingshot line

	// HUD
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Warning lipgloss.Color
}

// Available themes
var (
	ThemeClassic = Theme{
		Name:       "classic",
		Background: rgb(0x00, 0x00, 0x00),
		Highlight:  rgb(0xff, 0xff, 0xff),
		Guide:      rgb(0x33, 0x33, 0xff),
		Primary:    lipgloss.Color("#00cccc"),
		Accent:     lipgloss.Color("#ff88ff"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666688"),
		Warning:    lipgloss.Color("#ffaa00"),
	}

	ThemeCyberpunk = Theme{
		Name:       "cyberpunk",
		Background: rgb(0x0a, 0x0a, 0x0a),
		Highlight:  rgb(0xff, 0xff, 0x00), // Yellow
		Guide:      rgb(0xff, 0x00, 0xff), // Magenta
		Primary:    lipgloss.Color("#ff00ff"),
		Accent:     lipgloss.Color("#00ffff"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666666"),
		Warning:    lipgloss.Color("#ff8800"),
	}

	ThemeRetroGreen = Theme{
		Name:       "retro",
		Background: rgb(0x00, 0x11, 0x00),
		Highlight:  rgb(0x88, 0xff, 0x88),
		Guide:      rgb(0x00, 0xcc, 0x00),
		Primary:    lipgloss.Color("#00ff00"), // Green phosphor
		Accent:     lipgloss.Color("#88ff88"),
		Text:       lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
		Warning:    lipgloss.Color("#ffff00"),
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		Background: rgb(0x00, 0x1a, 0x33),
		Highlight:  rgb(0xff, 0xd7, 0x00),
		Guide:      rgb(0x00, 0xa8, 0xcc),
		Primary:    lipgloss.Color("#0077be"), // Ocean blue
		Accent:     lipgloss.Color("#ffd700"),
		Text:       lipgloss.Color("#e0f0ff"),
		Muted:      lipgloss.Color("#4488aa"),
		Warning:    lipgloss.Color("#ffcc00"),
	}

	ThemeSunset = Theme{
		Name:       "sunset",
		Background: rgb(0x2d, 0x1b, 0x2e),
		Highlight:  rgb(0xff, 0xf5, 0xf5),
		Guide:      rgb(0xfe, 0xca, 0x57),
		Primary:    lipgloss.Color("#ff6b6b"), // Coral
		Accent:     lipgloss.Color("#ff9ff3"),
		Text:       lipgloss.Color("#fff5f5"),
		Muted:      lipgloss.Color("#8b6b8c"),
		Warning:    lipgloss.Color("#ffc048"),
	}

	// All available themes
	Themes = []Theme{
		ThemeClassic,
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to classic.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

// NextTheme returns the theme after the named one, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return ThemeClassic
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// Hex formats a color as #rrggbb.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func rgb(r, g, b uint8) color.RGBA { return color.RGBA{R: r, G: g, B: b, A: 255} }
