package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the form-level key bindings
type KeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default form key bindings. Printable keys are
// left to the inputs.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// shortHelp joins the bindings of the focused control with the form's own
type shortHelp []key.Binding

func (s shortHelp) ShortHelp() []key.Binding  { return s }
func (s shortHelp) FullHelp() [][]key.Binding { return [][]key.Binding{s} }
