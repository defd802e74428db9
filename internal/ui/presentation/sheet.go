package presentation

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// sheetHeightRatio bounds the sheet to a share of the screen height
const sheetHeightRatio = 0.6

// Sheet slides up from the bottom edge and spans the whole screen width.
// Its trigger is a full-width button.
type Sheet struct {
	styles *Styles
}

// NewSheet creates the compact strategy
func NewSheet(styles *Styles) *Sheet {
	return &Sheet{styles: styles}
}

// Mode returns ModeSheet
func (s *Sheet) Mode() Mode { return ModeSheet }

// Trigger renders a full-width button with the label left aligned
func (s *Sheet) Trigger(v TriggerView) string {
	style := triggerStyle(s.styles, v)
	inner := v.Width - style.GetHorizontalFrameSize()
	if inner < 1 {
		inner = 1
	}
	return style.Width(blockWidth(style, v.Width)).Render(triggerText(s.styles, v, inner))
}

// ContentWidth is the screen width minus the sheet padding
func (s *Sheet) ContentWidth(f Frame) int {
	w := f.ScreenWidth - s.styles.Sheet.GetHorizontalFrameSize()
	if w < 1 {
		return 1
	}
	return w
}

// MaxRows leaves room for the handle, the border and the search line
func (s *Sheet) MaxRows(f Frame) int {
	rows := int(float64(f.ScreenHeight)*sheetHeightRatio) - 5
	if rows < 1 {
		return 1
	}
	return rows
}

// Place pins the sheet to the bottom of the screen
func (s *Sheet) Place(body string, f Frame) Placement {
	width := f.ScreenWidth
	if width < 1 {
		width = 1
	}
	handle := lipgloss.PlaceHorizontal(width, lipgloss.Center, s.styles.Handle.Render(strings.Repeat("━", 6)))
	sheet := s.styles.Sheet.Width(blockWidth(s.styles.Sheet, width)).Render(body)
	content := lipgloss.JoinVertical(lipgloss.Left, handle, sheet)

	y := f.ScreenHeight - lipgloss.Height(content)
	if y < 0 {
		y = 0
	}
	return Placement{Content: content, X: 0, Y: y, Dim: true}
}
