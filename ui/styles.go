package ui

import "github.com/charmbracelet/lipgloss"

// Selenized-dark palette.
var (
	colorBg0     = lipgloss.Color("#103c48")
	colorBg1     = lipgloss.Color("#184956")
	colorBg2     = lipgloss.Color("#2d5b69")
	colorDim     = lipgloss.Color("#72898f")
	colorFg      = lipgloss.Color("#adbcbc")
	colorFgHi    = lipgloss.Color("#cad8d9")
	colorRed     = lipgloss.Color("#fa5750")
	colorGreen   = lipgloss.Color("#75b938")
	colorYellow  = lipgloss.Color("#dbb32d")
	colorMagenta = lipgloss.Color("#f275be")
	colorCyan    = lipgloss.Color("#4191a5")
	colorBlue    = lipgloss.Color("#58a3ff")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorFgHi).Background(colorBg1).Padding(0, 1)

	metricStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorCyan).
			Foreground(colorFgHi).
			Padding(0, 1)

	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorFgHi).Background(colorBg1)
	rowStyle      = lipgloss.NewStyle().Foreground(colorFg)
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorFgHi).Background(colorBg2)
	statusBar     = lipgloss.NewStyle().Foreground(colorFgHi).Background(colorBg1).Padding(0, 1)
	staleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	warnStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	filterLabel   = lipgloss.NewStyle().Foreground(colorMagenta)
	filterErrText = lipgloss.NewStyle().Foreground(colorRed)
	dimStyle      = lipgloss.NewStyle().Foreground(colorDim)

	detailTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorFgHi).Background(colorBg2).Padding(0, 2)
	detailSection = lipgloss.NewStyle().Bold(true).Foreground(colorFgHi).Background(colorBg2).Padding(0, 1).MarginTop(1)
	detailItem    = lipgloss.NewStyle().Foreground(colorFgHi).PaddingLeft(1)
	goneStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorRed).Padding(1, 2)
)

// statusStyle picks the accent color for a socket state.
func statusStyle(status string) lipgloss.Style {
	switch status {
	case "ESTABLISHED":
		return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	case "LISTEN":
		return lipgloss.NewStyle().Foreground(colorBlue).Bold(true)
	case "TIME_WAIT":
		return lipgloss.NewStyle().Foreground(colorYellow)
	case "CLOSE_WAIT":
		return lipgloss.NewStyle().Foreground(colorRed)
	default:
		return lipgloss.NewStyle().Foreground(colorFg)
	}
}
