package cli

import "github.com/charmbracelet/lipgloss"

var (
	accentColor    = lipgloss.Color("#5FAFAF")
	secondaryColor = lipgloss.Color("#666666")
	errorColor     = lipgloss.Color("#AF5F5F")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			MarginBottom(1)

	dayStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	timeStyle = lipgloss.NewStyle().
			Width(12).
			Foreground(secondaryColor)

	subtleStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(secondaryColor).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)
)
