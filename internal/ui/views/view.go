package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// columnGap separates the two columns of a wide layout
const columnGap = 2

// Block is one form field: a label, a control and the lines under it
type Block struct {
	Key           string
	Label         string
	Control       string // rendered by the caller once the layout is known
	ControlHeight int
	Message       string // validation error
	Hint          string
	Half          bool // may share a row with the next half block on wide screens
}

func (b Block) height() int {
	h := b.ControlHeight
	if b.Label != "" {
		h++
	}
	if b.Message != "" {
		h++
	}
	if b.Hint != "" {
		h++
	}
	return h
}

// Rect is a region in cells
type Rect struct {
	X, Y, Width, Height int
}

// Bottom is the first row below r
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// Layout is where each block goes, relative to the top-left of the form
type Layout struct {
	Width    int
	Blocks   map[string]Rect
	Controls map[string]Rect
	Height   int
	rows     [][]int
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Styles returns the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// ContentWidth is the width inside the main padding
func (r *Renderer) ContentWidth(screenWidth int) int {
	w := screenWidth - r.styles.Main.GetHorizontalFrameSize()
	if w < 10 {
		w = 10
	}
	return w
}

// Left is the column where content starts
func (r *Renderer) Left() int {
	return r.styles.Main.GetPaddingLeft()
}

// Layout places blocks in rows. On wide screens consecutive half blocks
// share a row; compact screens get one block per row.
func (r *Renderer) Layout(blocks []Block, width int, compact bool) Layout {
	l := Layout{
		Width:    width,
		Blocks:   make(map[string]Rect, len(blocks)),
		Controls: make(map[string]Rect, len(blocks)),
	}
	half := (width - columnGap) / 2

	for i := 0; i < len(blocks); i++ {
		row := []int{i}
		if !compact && blocks[i].Half && i+1 < len(blocks) && blocks[i+1].Half {
			row = append(row, i+1)
			i++
		}
		l.rows = append(l.rows, row)

		rowHeight := 0
		for col, idx := range row {
			b := blocks[idx]
			rect := Rect{X: 0, Y: l.Height, Width: width, Height: b.height()}
			if len(row) == 2 {
				rect.Width = half
				if col == 1 {
					rect.X = half + columnGap
					rect.Width = width - rect.X
				}
			}
			l.Blocks[b.Key] = rect

			ctrl := Rect{X: rect.X, Y: rect.Y, Width: rect.Width, Height: b.ControlHeight}
			if b.Label != "" {
				ctrl.Y++
			}
			l.Controls[b.Key] = ctrl

			if rect.Height > rowHeight {
				rowHeight = rect.Height
			}
		}
		// blank line between rows
		l.Height += rowHeight + 1
	}
	if l.Height > 0 {
		l.Height--
	}
	return l
}

// RenderBlocks draws blocks at the positions l gives them
func (r *Renderer) RenderBlocks(blocks []Block, l Layout) string {
	rows := make([]string, 0, len(l.rows))
	for _, row := range l.rows {
		cols := make([]string, 0, len(row)*2)
		for col, idx := range row {
			if col > 0 {
				cols = append(cols, strings.Repeat(" ", columnGap))
			}
			b := blocks[idx]
			cols = append(cols, r.renderBlock(b, l.Blocks[b.Key].Width))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	}
	return strings.Join(rows, "\n\n")
}

func (r *Renderer) renderBlock(b Block, width int) string {
	parts := make([]string, 0, 4)
	if b.Label != "" {
		parts = append(parts, r.styles.Label.Render(b.Label))
	}
	parts = append(parts, b.Control)
	if b.Message != "" {
		parts = append(parts, r.styles.FieldError.Render(b.Message))
	}
	if b.Hint != "" {
		parts = append(parts, r.styles.Hint.Render(b.Hint))
	}
	return lipgloss.NewStyle().Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// Header renders the form title and description
func (r *Renderer) Header(title, description string) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		r.styles.Title.Render(title),
		r.styles.Description.Render(description),
	)
}

// InputBox wraps a text input view in its border
func (r *Renderer) InputBox(view string, width int, focused bool) string {
	style := r.styles.Input
	if focused {
		style = r.styles.InputFocused
	}
	return style.Width(width - style.GetHorizontalBorderSize()).Render(view)
}

// InputInnerWidth is the text width available inside an input box
func (r *Renderer) InputInnerWidth(width int) int {
	w := width - r.styles.Input.GetHorizontalFrameSize()
	if w < 1 {
		return 1
	}
	return w
}

// Button renders the submit button
func (r *Renderer) Button(label string, width int, focused, busy bool) string {
	style := r.styles.Button
	switch {
	case busy:
		style = r.styles.ButtonBusy
	case focused:
		style = r.styles.ButtonFocused
	}
	return style.Width(width - style.GetHorizontalBorderSize()).Render(label)
}

// Empty renders the message shown when there is nothing to register against
func (r *Renderer) Empty(lines ...string) string {
	styled := make([]string, len(lines))
	for i, line := range lines {
		styled[i] = r.styles.Empty.Render(line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, styled...)
}

// StatusKind picks the status line color
type StatusKind int

const (
	StatusNone StatusKind = iota
	StatusLoading
	StatusSuccess
	StatusError
)

// Status renders the status line
func (r *Renderer) Status(text string, kind StatusKind) string {
	switch kind {
	case StatusLoading:
		return r.styles.StatusLoading.Render(text)
	case StatusSuccess:
		return r.styles.StatusSuccess.Render(text)
	case StatusError:
		return r.styles.StatusError.Render(text)
	default:
		return text
	}
}

// Main applies the outer padding
func (r *Renderer) Main(content string) string {
	return r.styles.Main.Render(content)
}

// ScrollHint renders the indicator shown when the form is taller than the screen
func (r *Renderer) ScrollHint(text string) string {
	return r.styles.Scroll.Render(text)
}

// Help renders the short help line
func (r *Renderer) Help(view string) string {
	return r.styles.Help.Render(view)
}
