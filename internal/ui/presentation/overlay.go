package presentation

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Compose draws the placement on top of base. Cells of base outside the
// overlay's bounding box are kept; when the placement asks for it they are
// dimmed.
func Compose(base string, p Placement, styles *Styles) string {
	if styles == nil {
		styles = NewStyles()
	}

	baseLines := strings.Split(base, "\n")
	overlayLines := strings.Split(p.Content, "\n")

	// Make room for overlays that reach past the end of base
	for len(baseLines) < p.Y+len(overlayLines) {
		baseLines = append(baseLines, "")
	}

	if p.Dim {
		for i, line := range baseLines {
			baseLines[i] = dim(line, styles)
		}
	}

	for i, ol := range overlayLines {
		row := p.Y + i
		if row < 0 {
			continue
		}
		baseLines[row] = spliceLine(baseLines[row], ol, p.X)
	}

	return strings.Join(baseLines, "\n")
}

// spliceLine replaces the cells of line starting at x with overlay
func spliceLine(line, overlay string, x int) string {
	width := ansi.StringWidth(overlay)

	left := ansi.Truncate(line, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}

	right := ""
	if ansi.StringWidth(line) > x+width {
		right = ansi.TruncateLeft(line, x+width, "")
	}

	// Reset styles so the overlay does not inherit colors from the left part
	return left + ansi.ResetStyle + overlay + ansi.ResetStyle + right
}

// dim strips styles from line and redraws it in the backdrop color
func dim(line string, styles *Styles) string {
	plain := ansi.Strip(line)
	if plain == "" {
		return plain
	}
	return styles.Backdrop.Render(plain)
}
