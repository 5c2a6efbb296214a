package viz

import "github.com/charmbracelet/lipgloss"

// Theme styles the chrome around the canvas. Body colors come from the
// engine's palette tags, not the theme.
type Theme struct {
	Name   string
	Header lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Accent lipgloss.Color
	Chart  lipgloss.Color
}

var (
	ThemeNebula = Theme{
		Name:   "nebula",
		Header: lipgloss.Color("86"),
		Text:   lipgloss.Color("252"),
		Muted:  lipgloss.Color("240"),
		Accent: lipgloss.Color("205"),
		Chart:  lipgloss.Color("49"),
	}

	ThemePhosphor = Theme{
		Name:   "phosphor",
		Header: lipgloss.Color("#00ff00"),
		Text:   lipgloss.Color("#88ff88"),
		Muted:  lipgloss.Color("#005500"),
		Accent: lipgloss.Color("#ffff00"),
		Chart:  lipgloss.Color("#00cc00"),
	}

	ThemePlain = Theme{
		Name:   "plain",
		Header: lipgloss.Color("#ffffff"),
		Text:   lipgloss.Color("#cccccc"),
		Muted:  lipgloss.Color("#888888"),
		Accent: lipgloss.Color("#0088ff"),
		Chart:  lipgloss.Color("#cccccc"),
	}

	Themes = []Theme{ThemeNebula, ThemePhosphor, ThemePlain}
)
