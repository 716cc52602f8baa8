package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

var (
	colorText     lipgloss.Color = "#cdd6f4"
	colorMuted    lipgloss.Color = "#a6adc8"
	colorMantle   lipgloss.Color = "#181825"
	colorAccent   lipgloss.Color = "#89b4fa"
	colorSuccess  lipgloss.Color = "#a6e3a1"
	colorError    lipgloss.Color = "#f38ba8"
	colorSurface0 lipgloss.Color = "#313244"
)

var (
	bodyStyle    = lipgloss.NewStyle().Foreground(colorText)
	headingStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	edgeStyle    = lipgloss.NewStyle().Foreground(colorSurface0)

	headerStyle = lipgloss.NewStyle().
			Background(colorMantle).
			Foreground(colorAccent).
			Bold(true)
	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Background(colorSurface0)
	statusErrBarStyle = lipgloss.NewStyle().
				Foreground(colorError).
				Background(colorSurface0)
	footerStyle = lipgloss.NewStyle().
			Background(colorMantle)
)

// newHelp styles the footer help on the mantle bar.
func newHelp() help.Model {
	h := help.New()
	bar := lipgloss.NewStyle().Background(colorMantle)
	h.ShortSeparator = "  "
	h.Styles.ShortKey = bar.Foreground(colorAccent).Bold(true)
	h.Styles.ShortDesc = bar.Foreground(colorMuted)
	h.Styles.ShortSeparator = bar
	h.Styles.Ellipsis = bar.Foreground(colorMuted)
	return h
}
