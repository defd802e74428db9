// Package optionlist renders the searchable list of options hosted by a
// selector overlay and turns row activation into selection changes.
package optionlist

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	"tutorselect/internal/domain"
	"tutorselect/internal/matcher"
)

// Props are the inputs supplied by the selector
type Props struct {
	Options           []domain.Option
	Value             string
	OnChange          func(value string)
	OnOpenChange      func(open bool) // optional, asked to close after a selection
	Filter            matcher.Func    // nil uses matcher.Default
	SearchPlaceholder string
	EmptyPlaceholder  string
}

// List is the filtered option list with its query input
type List struct {
	props    Props
	input    textinput.Model
	query    string
	filtered []domain.Option
	cursor   int
	offset   int
	width    int
	maxRows  int
	keys     KeyMap
	styles   *Styles

	zones      *zone.Manager
	zonePrefix string
}

// New creates a list showing every option
func New(p Props) *List {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = p.SearchPlaceholder

	l := &List{
		props:   p,
		input:   ti,
		width:   40,
		maxRows: 8,
		keys:    DefaultKeyMap(),
		styles:  NewStyles(),
	}
	l.refilter()
	return l
}

// SetZones enables mouse activation through the given zone manager.
// prefix keeps row ids unique when several lists share one manager.
func (l *List) SetZones(z *zone.Manager, prefix string) {
	l.zones = z
	l.zonePrefix = prefix
}

// SetOptions replaces the option sequence and recomputes the results
func (l *List) SetOptions(options []domain.Option) {
	l.props.Options = options
	l.refilter()
}

// SetValue sets the current selection used for the indicator and toggling
func (l *List) SetValue(value string) {
	l.props.Value = value
}

// Value returns the current selection
func (l *List) Value() string {
	return l.props.Value
}

// SetFilter replaces the scorer
func (l *List) SetFilter(fn matcher.Func) {
	l.props.Filter = fn
	l.refilter()
}

// SetOnChange replaces the change callback
func (l *List) SetOnChange(fn func(string)) {
	l.props.OnChange = fn
}

// SetOnOpenChange replaces the close callback
func (l *List) SetOnOpenChange(fn func(bool)) {
	l.props.OnOpenChange = fn
}

// SetPlaceholders sets the search and empty-result texts
func (l *List) SetPlaceholders(search, empty string) {
	l.props.SearchPlaceholder = search
	l.props.EmptyPlaceholder = empty
	l.input.Placeholder = search
}

// SetSize sets the content width and the number of visible rows
func (l *List) SetSize(width, rows int) {
	if width < 4 {
		width = 4
	}
	if rows < 1 {
		rows = 1
	}
	l.width = width
	l.maxRows = rows
	l.input.Width = width - ansi.StringWidth(l.input.Prompt) - 2
	l.ensureCursorVisible()
}

// Query returns the current search text
func (l *List) Query() string {
	return l.query
}

// SetQuery sets the search text and recomputes the results
func (l *List) SetQuery(q string) {
	if l.input.Value() != q {
		l.input.SetValue(q)
	}
	if q == l.query {
		return
	}
	l.query = q
	l.refilter()
	l.cursor = 0
	l.offset = 0
}

// Filtered returns the visible results in display order
func (l *List) Filtered() []domain.Option {
	return l.filtered
}

// Cursor returns the index of the highlighted result
func (l *List) Cursor() int {
	return l.cursor
}

// Highlighted returns the highlighted result, if any
func (l *List) Highlighted() (domain.Option, bool) {
	if l.cursor < 0 || l.cursor >= len(l.filtered) {
		return domain.Option{}, false
	}
	return l.filtered[l.cursor], true
}

// Reset discards the query and moves the cursor to the current value
func (l *List) Reset() {
	l.input.Reset()
	l.query = ""
	l.refilter()
	l.cursor = 0
	l.offset = 0
	for i, opt := range l.filtered {
		if opt.Value == l.props.Value && l.props.Value != domain.NoSelection {
			l.cursor = i
			break
		}
	}
	l.ensureCursorVisible()
}

// Focus focuses the query input
func (l *List) Focus() tea.Cmd {
	return l.input.Focus()
}

// Blur removes focus from the query input
func (l *List) Blur() {
	l.input.Blur()
}

// ActivateValue applies the toggle rule to the option with the given value.
// It returns false and changes nothing when no option has that value.
func (l *List) ActivateValue(value string) bool {
	opt, ok := domain.FindByValue(l.props.Options, value)
	if !ok {
		log.Printf("OptionList: activated value %q is not among the options, ignoring", value)
		return false
	}
	l.emit(opt.Value)
	return true
}

// ActivateLabel resolves label to the first option with that label, ignoring
// case, and applies the toggle rule. An unresolved label is ignored.
func (l *List) ActivateLabel(label string) bool {
	opt, ok := domain.FindByLabel(l.props.Options, label)
	if !ok {
		log.Printf("OptionList: activated label %q matches no option, ignoring", label)
		return false
	}
	l.emit(opt.Value)
	return true
}

// ActivateHighlighted activates the highlighted result. With no results it
// does nothing.
func (l *List) ActivateHighlighted() bool {
	opt, ok := l.Highlighted()
	if !ok {
		return false
	}
	return l.ActivateValue(opt.Value)
}

// emit reports the toggled value and asks the owner to close
func (l *List) emit(resolved string) {
	next := resolved
	if resolved == l.props.Value {
		next = domain.NoSelection
	}
	if l.props.OnChange != nil {
		l.props.OnChange(next)
	}
	if l.props.OnOpenChange != nil {
		l.props.OnOpenChange(false)
	}
}

// Update handles navigation, activation and query editing
func (l *List) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, l.keys.Up):
			l.move(-1)
			return nil
		case key.Matches(msg, l.keys.Down):
			l.move(1)
			return nil
		case key.Matches(msg, l.keys.PageUp):
			l.move(-l.maxRows)
			return nil
		case key.Matches(msg, l.keys.PageDown):
			l.move(l.maxRows)
			return nil
		case key.Matches(msg, l.keys.Home):
			l.move(-len(l.filtered))
			return nil
		case key.Matches(msg, l.keys.End):
			l.move(len(l.filtered))
			return nil
		case key.Matches(msg, l.keys.Activate):
			l.ActivateHighlighted()
			return nil
		}

		var cmd tea.Cmd
		l.input, cmd = l.input.Update(msg)
		l.SetQuery(l.input.Value())
		return cmd

	case tea.MouseMsg:
		l.handleMouse(msg)
		return nil
	}

	var cmd tea.Cmd
	l.input, cmd = l.input.Update(msg)
	return cmd
}

// handleMouse scrolls on the wheel and activates a clicked row
func (l *List) handleMouse(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		l.move(-1)
		return
	case tea.MouseButtonWheelDown:
		l.move(1)
		return
	}

	if l.zones == nil || msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return
	}
	for i := l.offset; i < l.visibleEnd(); i++ {
		if l.zones.Get(l.RowZoneID(i)).InBounds(msg) {
			l.cursor = i
			l.ActivateValue(l.filtered[i].Value)
			return
		}
	}
}

// RowZoneID is the bubblezone id of the i-th result row
func (l *List) RowZoneID(i int) string {
	return l.zonePrefix + "row:" + strconv.Itoa(i)
}

// View renders the query input, a separator and the visible rows
func (l *List) View() string {
	var b strings.Builder

	b.WriteString(l.input.View())
	b.WriteString("\n")
	b.WriteString(l.styles.Separator.Render(strings.Repeat("─", l.width)))

	if len(l.filtered) == 0 {
		b.WriteString("\n")
		b.WriteString(l.styles.Empty.Render(fitWidth(l.props.EmptyPlaceholder, l.width)))
		return b.String()
	}

	for i := l.offset; i < l.visibleEnd(); i++ {
		b.WriteString("\n")
		b.WriteString(l.renderRow(i))
	}

	if len(l.filtered) > l.maxRows {
		b.WriteString("\n")
		status := fmt.Sprintf("%d-%d of %d", l.offset+1, l.visibleEnd(), len(l.filtered))
		b.WriteString(l.styles.Scroll.Render(fitWidth(status, l.width)))
	}

	return b.String()
}

// renderRow renders one result. The indicator column is always reserved.
func (l *List) renderRow(i int) string {
	opt := l.filtered[i]

	indicator := " "
	if opt.Value == l.props.Value && l.props.Value != domain.NoSelection {
		indicator = l.styles.Indicator.Render(Indicator)
	}

	label := fitWidth(opt.Label, l.width-2)
	row := indicator + " " + label
	if w := ansi.StringWidth(row); w < l.width {
		row += strings.Repeat(" ", l.width-w)
	}

	if i == l.cursor {
		row = l.styles.Cursor.Render(row)
	} else {
		row = l.styles.Row.Render(row)
	}

	if l.zones != nil {
		row = l.zones.Mark(l.RowZoneID(i), row)
	}
	return row
}

// Height is the number of lines View produces
func (l *List) Height() int {
	return lipgloss.Height(l.View())
}

func (l *List) refilter() {
	l.filtered = matcher.Filter(l.props.Options, l.query, l.props.Filter)
	if l.cursor >= len(l.filtered) {
		l.cursor = len(l.filtered) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	l.ensureCursorVisible()
}

func (l *List) move(delta int) {
	if len(l.filtered) == 0 {
		return
	}
	l.cursor += delta
	if l.cursor < 0 {
		l.cursor = 0
	}
	if l.cursor >= len(l.filtered) {
		l.cursor = len(l.filtered) - 1
	}
	l.ensureCursorVisible()
}

func (l *List) ensureCursorVisible() {
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.maxRows {
		l.offset = l.cursor - l.maxRows + 1
	}
	if maxOffset := len(l.filtered) - l.maxRows; l.offset > maxOffset {
		l.offset = maxOffset
	}
	if l.offset < 0 {
		l.offset = 0
	}
}

func (l *List) visibleEnd() int {
	end := l.offset + l.maxRows
	if end > len(l.filtered) {
		end = len(l.filtered)
	}
	return end
}

func fitWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}
