// Package tui is the terminal front end: the query builder and the result
// viewer as a two-screen bubbletea program.
package tui

import "github.com/charmbracelet/lipgloss"

// Brand colors
var (
	Green = lipgloss.Color("#14532d")
	Blue  = lipgloss.Color("#1976d2")
	Red   = lipgloss.Color("#e53935")
	Muted = lipgloss.Color("#6b7280")
	White = lipgloss.Color("#ffffff")
)

// Styles holds the lipgloss styles used by both screens
type Styles struct {
	Header     lipgloss.Style
	Footer     lipgloss.Style
	Label      lipgloss.Style
	Focused    lipgloss.Style
	Selected   lipgloss.Style
	Error      lipgloss.Style
	Help       lipgloss.Style
	ActivePage lipgloss.Style
	Page       lipgloss.Style
}

// DefaultStyles returns the ZeroToOne palette
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Background(Green).
			Foreground(lipgloss.Color("#000000")).
			Padding(0, 2),
		Footer:     lipgloss.NewStyle().Foreground(Muted),
		Label:      lipgloss.NewStyle().Width(17),
		Focused:    lipgloss.NewStyle().Bold(true).Foreground(Blue),
		Selected:   lipgloss.NewStyle().Foreground(Green).Bold(true),
		Error:      lipgloss.NewStyle().Foreground(Red),
		Help:       lipgloss.NewStyle().Foreground(Muted),
		ActivePage: lipgloss.NewStyle().Background(Blue).Foreground(White).Padding(0, 1),
		Page:       lipgloss.NewStyle().Padding(0, 1),
	}
}
