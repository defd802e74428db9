package optionlist

import "github.com/charmbracelet/lipgloss"

// Indicator marks the row holding the current value
const Indicator = "✓"

// Styles contains the list style definitions
type Styles struct {
	Row       lipgloss.Style
	Cursor    lipgloss.Style
	Indicator lipgloss.Style
	Empty     lipgloss.Style
	Separator lipgloss.Style
	Scroll    lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Row:       lipgloss.NewStyle(),
		Cursor:    lipgloss.NewStyle().Background(lipgloss.Color("238")).Bold(true),
		Indicator: lipgloss.NewStyle().Foreground(lipgloss.Color("78")), // green
		Empty:     lipgloss.NewStyle().Faint(true).Italic(true),
		Separator: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Scroll:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	}
}
