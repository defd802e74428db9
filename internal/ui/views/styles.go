package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the form UI
type Styles struct {
	Title         lipgloss.Style
	Description   lipgloss.Style
	Main          lipgloss.Style
	Label         lipgloss.Style
	Input         lipgloss.Style
	InputFocused  lipgloss.Style
	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
	ButtonBusy    lipgloss.Style
	FieldError    lipgloss.Style
	Hint          lipgloss.Style
	Empty         lipgloss.Style
	Scroll        lipgloss.Style
	Help          lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	StatusSuccess lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Description: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginBottom(1),
		Main:  lipgloss.NewStyle().Padding(0, 2),
		Label: lipgloss.NewStyle().Bold(true),
		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		InputFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		Button: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Align(lipgloss.Center),
		ButtonFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Foreground(lipgloss.Color("99")).
			Bold(true).
			Align(lipgloss.Center),
		ButtonBusy: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Faint(true).
			Align(lipgloss.Center),
		FieldError:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Hint:          lipgloss.NewStyle().Foreground(lipgloss.Color("99")),
		Empty:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		Scroll:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Help:          lipgloss.NewStyle().Faint(true),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
	}
}
