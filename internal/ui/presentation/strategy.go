// Package presentation hosts the option list in one of two interchangeable
// overlays: a full-width sheet for compact screens and a floating panel
// anchored to the trigger otherwise.
package presentation

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Mode identifies an overlay strategy
type Mode int

const (
	ModePanel Mode = iota
	ModeSheet
)

func (m Mode) String() string {
	switch m {
	case ModeSheet:
		return "sheet"
	default:
		return "panel"
	}
}

// TriggerGlyph is drawn at the right edge of the panel trigger
const TriggerGlyph = "⇅"

// TriggerView describes what the trigger button shows
type TriggerView struct {
	Label       string
	Placeholder bool // Label is the placeholder text
	Open        bool
	Focused     bool
	Width       int
}

// Anchor is the screen position of the trigger's top-left cell
type Anchor struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Frame is the space an overlay may occupy
type Frame struct {
	ScreenWidth  int
	ScreenHeight int
	Anchor       Anchor
}

// Placement is a rendered overlay and where it goes on screen
type Placement struct {
	Content string
	X       int
	Y       int
	Dim     bool // dim everything behind the overlay
}

// Strategy renders the trigger and the overlay for one presentation mode
type Strategy interface {
	Mode() Mode
	// Trigger renders the button that opens the overlay
	Trigger(v TriggerView) string
	// ContentWidth is the width available to the hosted list
	ContentWidth(f Frame) int
	// MaxRows is the number of option rows the hosted list may show
	MaxRows(f Frame) int
	// Place wraps the hosted list and positions it on screen
	Place(body string, f Frame) Placement
}

// Adapter picks a strategy from the compact flag
type Adapter struct {
	sheet Strategy
	panel Strategy
}

// NewAdapter creates an adapter with the sheet and panel strategies
func NewAdapter(styles *Styles) *Adapter {
	if styles == nil {
		styles = NewStyles()
	}
	return &Adapter{
		sheet: NewSheet(styles),
		panel: NewPanel(styles),
	}
}

// For returns the sheet strategy when compact, the panel otherwise
func (a *Adapter) For(compact bool) Strategy {
	if compact {
		return a.sheet
	}
	return a.panel
}

// fitLabel truncates label to width cells
func fitLabel(label string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(label) <= width {
		return label
	}
	return ansi.Truncate(label, width, "…")
}

// triggerStyle picks the border style for the trigger state
func triggerStyle(s *Styles, v TriggerView) lipgloss.Style {
	switch {
	case v.Open:
		return s.TriggerOpen
	case v.Focused:
		return s.TriggerFocused
	default:
		return s.Trigger
	}
}

// triggerText renders the label, dimmed when it is the placeholder
func triggerText(s *Styles, v TriggerView, width int) string {
	text := fitLabel(v.Label, width)
	if v.Placeholder {
		return s.Placeholder.Render(text)
	}
	return text
}

// blockWidth converts a total width into the lipgloss Width of a bordered style
func blockWidth(style lipgloss.Style, total int) int {
	w := total - style.GetHorizontalBorderSize()
	if w < 1 {
		return 1
	}
	return w
}

// padRight pads s with spaces to width cells
func padRight(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
