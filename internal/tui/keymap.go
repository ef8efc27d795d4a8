package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the document view.
type KeyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Increase key.Binding
	Decrease key.Binding
	Coarse   key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down", "j"),
			key.WithHelp("tab", "next input"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up", "k"),
			key.WithHelp("shift+tab", "previous input"),
		),
		Increase: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "step up"),
		),
		Decrease: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "step down"),
		),
		Coarse: key.NewBinding(
			key.WithKeys("pgup", "pgdown"),
			key.WithHelp("pgup/pgdn", "ten steps"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the short help bindings.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Decrease, k.Increase, k.Quit}
}

// FullHelp returns the full help bindings.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev},
		{k.Decrease, k.Increase, k.Coarse},
		{k.Quit},
	}
}
