package tui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#65AFFF"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	rangeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#cccccc"))

	activeRangeStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#222222")).
				Background(lipgloss.Color("#ff9800")).
				Padding(0, 1)

	inactiveRangeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#aaaaaa")).
				Background(lipgloss.Color("#333333")).
				Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#cf6679"))

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#eeeeee")).
			Background(lipgloss.Color("#2d2d2d"))

	// The tooltip box is copied into the cell grid glyph by glyph, so it
	// is rendered without any escape sequences.
	plainRenderer = lipgloss.NewRenderer(io.Discard)
	tooltipStyle  = plainRenderer.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
)
