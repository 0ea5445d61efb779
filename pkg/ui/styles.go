package ui

import "github.com/charmbracelet/lipgloss"

// Theme bundles the styles used by the thread browser.
type Theme struct {
	Title    lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Author   lipgloss.Style
	Badge    lipgloss.Style
	Dimmed   lipgloss.Style
	Status   lipgloss.Style
}

// DefaultTheme returns the dark theme.
func DefaultTheme() Theme {
	return Theme{
		Title:    lipgloss.NewStyle().Foreground(lipgloss.Color("#bd93f9")).Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("#6272a4")),
		Selected: lipgloss.NewStyle().Background(lipgloss.Color("#44475a")).Bold(true),
		Author:   lipgloss.NewStyle().Foreground(lipgloss.Color("#8be9fd")),
		Badge:    lipgloss.NewStyle().Foreground(lipgloss.Color("#ffb86c")).Bold(true),
		Dimmed:   lipgloss.NewStyle().Foreground(lipgloss.Color("#44475a")),
		Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("#f8f8f2")).Background(lipgloss.Color("#44475a")),
	}
}

// sentimentGlyph maps a sentiment label to a one-cell marker.
func sentimentGlyph(label string) string {
	switch label {
	case "positive":
		return "▲"
	case "negative":
		return "▼"
	case "mixed":
		return "◆"
	case "neutral":
		return "·"
	}
	return " "
}
