package color

import "github.com/charmbracelet/lipgloss"

// Palette. AdaptiveColor picks Light or Dark from the detected background.
var (
	successColor = lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#66BB6A"}
	warnColor    = lipgloss.AdaptiveColor{Light: "#EF6C00", Dark: "#FFA726"}
	errorColor   = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#EF5350"}
	infoColor    = lipgloss.AdaptiveColor{Light: "#1565C0", Dark: "#42A5F5"}
	mutedColor   = lipgloss.AdaptiveColor{Light: "#757575", Dark: "#9E9E9E"}
)

var (
	Success = lipgloss.NewStyle().Foreground(successColor)
	Warn    = lipgloss.NewStyle().Foreground(warnColor)
	Error   = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	Info    = lipgloss.NewStyle().Foreground(infoColor)
	Muted   = lipgloss.NewStyle().Foreground(mutedColor)
	Header  = lipgloss.NewStyle().Bold(true)
)

// Initialize tells lipgloss which background to adapt to.
func Initialize(isDarkMode bool) {
	lipgloss.SetHasDarkBackground(isDarkMode)
}

// Mark returns a styled check or cross.
func Mark(ok bool) string {
	if ok {
		return Success.Render("✓")
	}
	return Error.Render("✗")
}
