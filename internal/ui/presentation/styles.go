package presentation

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains the style definitions shared by both strategies
type Styles struct {
	Trigger        lipgloss.Style
	TriggerFocused lipgloss.Style
	TriggerOpen    lipgloss.Style
	Placeholder    lipgloss.Style
	Glyph          lipgloss.Style
	Panel          lipgloss.Style
	Sheet          lipgloss.Style
	Handle         lipgloss.Style
	Backdrop       lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Trigger: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		TriggerFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		TriggerOpen: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(0, 1),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Glyph:       lipgloss.NewStyle().Faint(true),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")),
		Sheet: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		Handle:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Backdrop: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}
