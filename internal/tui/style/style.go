// Package style defines lipgloss styles for the TUI.
package style

import "github.com/charmbracelet/lipgloss"

// Accent is the highlight colour shared by styles and range bars.
const Accent = lipgloss.Color("205")

// Styles are package-level values; lipgloss styles are value types and
// safe for concurrent use. Names omit a "Style" suffix since they are read
// as style.Title, style.Label and so on.
var (
	// Title is used for the document title.
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Accent)

	// Label is used for widget labels.
	Label = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("255"))

	// Focus marks the focused input.
	Focus = lipgloss.NewStyle().
		Bold(true).
		Foreground(Accent)

	// Display is used for a widget's display region.
	Display = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	// Error is used for listener failures.
	Error = lipgloss.NewStyle().
		Foreground(lipgloss.Color("196"))

	// Muted is used for de-emphasized text (bounds, empty values).
	Muted = lipgloss.NewStyle().
		Foreground(lipgloss.Color("245"))

	// Trace is used for value history.
	Trace = lipgloss.NewStyle().
		Foreground(lipgloss.Color("63"))

	// Widget frames one widget.
	Widget = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1)
)
