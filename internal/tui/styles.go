package tui

import "github.com/charmbracelet/lipgloss"

// Colors defines the color palette for the dashboard.
var Colors = struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	Error     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Text      lipgloss.Color
}{
	Primary:   lipgloss.Color("#6C5CE7"), // Purple
	Secondary: lipgloss.Color("#A29BFE"), // Lavender
	Muted:     lipgloss.Color("#636E72"), // Gray
	Error:     lipgloss.Color("#D63031"), // Red
	Success:   lipgloss.Color("#00B894"), // Green
	Warning:   lipgloss.Color("#FDCB6E"), // Yellow
	Text:      lipgloss.Color("#DFE6E9"), // Light gray
}

// Styles contains all the lipgloss styles for the dashboard.
type Styles struct {
	App lipgloss.Style

	// Header
	Header     lipgloss.Style
	HeaderText lipgloss.Style
	HeaderMeta lipgloss.Style

	// Feed
	Bullet      lipgloss.Style
	Item        lipgloss.Style
	ItemError   lipgloss.Style
	ItemWarning lipgloss.Style
	Empty       lipgloss.Style

	// Footer
	Footer   lipgloss.Style
	ErrorMsg lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		App: lipgloss.NewStyle().
			Padding(1, 2),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary).
			MarginBottom(1),

		HeaderText: lipgloss.NewStyle().
			Bold(true),

		HeaderMeta: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		Bullet: lipgloss.NewStyle().
			Foreground(Colors.Secondary),

		Item: lipgloss.NewStyle().
			Foreground(Colors.Text),

		ItemError: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Error),

		ItemWarning: lipgloss.NewStyle().
			Foreground(Colors.Warning),

		Empty: lipgloss.NewStyle().
			Italic(true).
			Foreground(Colors.Success),

		Footer: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			MarginTop(1),

		ErrorMsg: lipgloss.NewStyle().
			Foreground(Colors.Error),
	}
}
