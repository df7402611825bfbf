package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorBorder   = lipgloss.Color("#2a3850")
	colorAccent   = lipgloss.Color("#8BC34A")
	colorMuted    = lipgloss.Color("#7b8794")
	colorSuccess  = lipgloss.Color("#8BC34A")
	colorWarning  = lipgloss.Color("#FFC107")
	colorError    = lipgloss.Color("#e53935")
	colorSelected = lipgloss.Color("#101F38")
)

type Styles struct {
	Column       lipgloss.Style
	ColumnTitle  lipgloss.Style
	Card         lipgloss.Style
	SelectedCard lipgloss.Style
	Muted        lipgloss.Style
	Help         lipgloss.Style
	Details      lipgloss.Style
	Success      lipgloss.Style
	Warning      lipgloss.Style
	Error        lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Column: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1),
		ColumnTitle: lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		Card:        lipgloss.NewStyle(),
		SelectedCard: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#f2f2f2")).
			Background(colorSelected),
		Muted: lipgloss.NewStyle().Foreground(colorMuted),
		Help:  lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1),
		Details: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorAccent).
			Padding(1, 2),
		Success: lipgloss.NewStyle().Foreground(colorSuccess),
		Warning: lipgloss.NewStyle().Foreground(colorWarning),
		Error:   lipgloss.NewStyle().Foreground(colorError).Bold(true),
	}
}
