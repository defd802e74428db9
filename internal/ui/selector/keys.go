package selector

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the trigger key bindings
type KeyMap struct {
	Open  key.Binding
	Close key.Binding
}

// DefaultKeyMap returns the default trigger key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Open: key.NewBinding(
			key.WithKeys("enter", " ", "down"),
			key.WithHelp("enter", "open"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
	}
}
