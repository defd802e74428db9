package presentation

import (
	"github.com/charmbracelet/lipgloss"
)

// panelMaxRows caps the option rows shown in the floating panel
const panelMaxRows = 8

// Panel floats below the trigger and matches the trigger's width. It flips
// above the trigger when there is no room below.
type Panel struct {
	styles *Styles
}

// NewPanel creates the non-compact strategy
func NewPanel(styles *Styles) *Panel {
	return &Panel{styles: styles}
}

// Mode returns ModePanel
func (p *Panel) Mode() Mode { return ModePanel }

// Trigger renders the label with the direction glyph at the right edge
func (p *Panel) Trigger(v TriggerView) string {
	style := triggerStyle(p.styles, v)
	inner := v.Width - style.GetHorizontalFrameSize()
	glyph := p.styles.Glyph.Render(TriggerGlyph)
	glyphWidth := lipgloss.Width(glyph)
	labelWidth := inner - glyphWidth - 1
	if labelWidth < 1 {
		labelWidth = 1
	}
	line := padRight(triggerText(p.styles, v, labelWidth), labelWidth) + " " + glyph
	return style.Width(blockWidth(style, v.Width)).Render(line)
}

// ContentWidth is the trigger width minus the panel border
func (p *Panel) ContentWidth(f Frame) int {
	w := p.width(f) - p.styles.Panel.GetHorizontalFrameSize()
	if w < 1 {
		return 1
	}
	return w
}

// MaxRows fits the larger of the space below or above the trigger, up to panelMaxRows
func (p *Panel) MaxRows(f Frame) int {
	below := f.ScreenHeight - (f.Anchor.Y + f.Anchor.Height)
	above := f.Anchor.Y
	room := below
	if above > room {
		room = above
	}
	// border (2), search line and separator
	rows := room - 4
	if rows > panelMaxRows {
		rows = panelMaxRows
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

// Place anchors the panel under the trigger, or above it when it does not fit
func (p *Panel) Place(body string, f Frame) Placement {
	content := p.styles.Panel.Width(blockWidth(p.styles.Panel, p.width(f))).Render(body)
	height := lipgloss.Height(content)

	y := f.Anchor.Y + f.Anchor.Height
	if y+height > f.ScreenHeight && f.Anchor.Y-height >= 0 {
		y = f.Anchor.Y - height
	}
	x := f.Anchor.X
	if width := lipgloss.Width(content); f.ScreenWidth > 0 && x+width > f.ScreenWidth {
		x = f.ScreenWidth - width
	}
	if x < 0 {
		x = 0
	}
	return Placement{Content: content, X: x, Y: y}
}

// width is the trigger width, bounded by the screen
func (p *Panel) width(f Frame) int {
	w := f.Anchor.Width
	if f.ScreenWidth > 0 && w > f.ScreenWidth {
		w = f.ScreenWidth
	}
	if minWidth := p.styles.Panel.GetHorizontalFrameSize() + 1; w < minWidth {
		w = minWidth
	}
	return w
}
