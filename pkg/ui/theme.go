package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme groups the adaptive colors and styles used by the playground.
type Theme struct {
	Primary   lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor
	Trail     lipgloss.AdaptiveColor

	Base       lipgloss.Style
	Title      lipgloss.Style
	StatusBar  lipgloss.Style
	KeyCap     lipgloss.Style
	KeyCursor  lipgloss.Style
	KeySwept   lipgloss.Style
	Suggestion lipgloss.Style
	TopPick    lipgloss.Style
	Committed  lipgloss.Style
	Preview    lipgloss.Style
}

// DefaultTheme returns the standard theme, adapting to the terminal's
// light or dark background.
func DefaultTheme() Theme {
	return buildTheme(Theme{
		Primary:   lipgloss.AdaptiveColor{Light: "#1a66cc", Dark: "#5ca0f2"},
		Subtext:   lipgloss.AdaptiveColor{Light: "#6c6c6c", Dark: "#9a9a9a"},
		Highlight: lipgloss.AdaptiveColor{Light: "#b8530a", Dark: "#f2a35c"},
		Border:    lipgloss.AdaptiveColor{Light: "#c8c8c8", Dark: "#444444"},
		Trail:     lipgloss.AdaptiveColor{Light: "#2e7d32", Dark: "#7bd88f"},
	})
}

// LightTheme pins the light palette regardless of the terminal
// background.
func LightTheme() Theme {
	base := DefaultTheme()
	pin := func(c lipgloss.AdaptiveColor) lipgloss.AdaptiveColor {
		c.Dark = c.Light
		return c
	}
	return buildTheme(Theme{
		Primary:   pin(base.Primary),
		Subtext:   pin(base.Subtext),
		Highlight: pin(base.Highlight),
		Border:    pin(base.Border),
		Trail:     pin(base.Trail),
	})
}

// NamedTheme resolves a configured theme name. Unknown or empty names
// fall back to the default.
func NamedTheme(name string) Theme {
	switch name {
	case "light":
		return LightTheme()
	default:
		return DefaultTheme()
	}
}

// buildTheme derives the styles from the palette colors.
func buildTheme(t Theme) Theme {
	t.Base = lipgloss.NewStyle()
	t.Title = lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
	t.StatusBar = lipgloss.NewStyle().Foreground(t.Subtext)
	t.KeyCap = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)
	t.KeyCursor = t.KeyCap.
		BorderForeground(t.Highlight).
		Foreground(t.Highlight).
		Bold(true)
	t.KeySwept = t.KeyCap.
		BorderForeground(t.Trail).
		Foreground(t.Trail)
	t.Suggestion = lipgloss.NewStyle().Padding(0, 1)
	t.TopPick = t.Suggestion.Bold(true).Foreground(t.Primary)
	t.Committed = lipgloss.NewStyle().Bold(true)
	t.Preview = lipgloss.NewStyle().Italic(true).Foreground(t.Subtext)

	return t
}
