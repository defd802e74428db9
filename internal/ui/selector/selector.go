// Package selector is a single-choice search control. The host controls the
// selected value and is told about changes through OnChange; the selector
// owns only whether its overlay is open and the query typed into it.
//
// The overlay is a full-width sheet when the viewport detector reports a
// compact screen and a panel anchored under the trigger otherwise. Both host
// the same option list.
package selector

import (
	"log"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"tutorselect/internal/domain"
	"tutorselect/internal/matcher"
	"tutorselect/internal/ui/optionlist"
	"tutorselect/internal/ui/presentation"
	"tutorselect/internal/viewport"
)

// Default texts, used when the host leaves a placeholder empty
const (
	DefaultPlaceholder       = "Select an option"
	DefaultSearchPlaceholder = "Search..."
	DefaultEmptyPlaceholder  = "No options found."
)

// Props is the selector's boundary. Options, Value and OnChange are required.
type Props struct {
	ID                string // distinguishes zones when several selectors share a screen
	Options           []domain.Option
	Value             string
	OnChange          func(value string)
	Placeholder       string
	SearchPlaceholder string
	EmptyPlaceholder  string
	Filter            matcher.Func    // nil uses matcher.Default
	OnOpenChange      func(open bool) // optional observer of the open flag
}

func (p Props) withDefaults() Props {
	if p.Placeholder == "" {
		p.Placeholder = DefaultPlaceholder
	}
	if p.SearchPlaceholder == "" {
		p.SearchPlaceholder = DefaultSearchPlaceholder
	}
	if p.EmptyPlaceholder == "" {
		p.EmptyPlaceholder = DefaultEmptyPlaceholder
	}
	return p
}

// rect is a screen region in cells
type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// Model is the selector component
type Model struct {
	props   Props
	open    bool
	focused bool
	compact bool

	list    *optionlist.List
	adapter *presentation.Adapter
	styles  *presentation.Styles
	keys    KeyMap

	detector    *viewport.Detector
	unsubscribe func()

	zones   *zone.Manager
	anchor  presentation.Anchor
	screenW int
	screenH int
	overlay rect // last rendered overlay bounds
}

// New creates a closed selector. When detector is not nil the selector
// follows its compact flag until Teardown is called.
func New(p Props, detector *viewport.Detector) *Model {
	p = p.withDefaults()
	styles := presentation.NewStyles()

	m := &Model{
		props:    p,
		adapter:  presentation.NewAdapter(styles),
		styles:   styles,
		keys:     DefaultKeyMap(),
		detector: detector,
		anchor:   presentation.Anchor{Width: 40},
	}
	m.list = optionlist.New(optionlist.Props{
		Options:           p.Options,
		Value:             p.Value,
		OnChange:          p.OnChange,
		OnOpenChange:      m.SetOpen,
		Filter:            p.Filter,
		SearchPlaceholder: p.SearchPlaceholder,
		EmptyPlaceholder:  p.EmptyPlaceholder,
	})

	if detector != nil {
		m.compact = detector.IsCompact()
		m.unsubscribe = detector.Subscribe(m.onCompactChange)
	}
	return m
}

// SetZones enables mouse interaction through z
func (m *Model) SetZones(z *zone.Manager) {
	m.zones = z
	m.list.SetZones(z, m.zonePrefix())
}

// Teardown releases the viewport subscription and closes the overlay.
// It is safe to call more than once.
func (m *Model) Teardown() {
	m.Close()
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// ID returns the selector id
func (m *Model) ID() string {
	return m.props.ID
}

// Value returns the controlled value last supplied by the host
func (m *Model) Value() string {
	return m.props.Value
}

// SetValue supplies the controlled value
func (m *Model) SetValue(value string) {
	m.props.Value = value
	m.list.SetValue(value)
}

// Options returns the option sequence
func (m *Model) Options() []domain.Option {
	return m.props.Options
}

// SetOptions replaces the option sequence
func (m *Model) SetOptions(options []domain.Option) {
	m.props.Options = options
	m.list.SetOptions(options)
}

// SetOnChange replaces the change callback
func (m *Model) SetOnChange(fn func(string)) {
	m.props.OnChange = fn
	m.list.SetOnChange(fn)
}

// List exposes the hosted option list
func (m *Model) List() *optionlist.List {
	return m.list
}

// TriggerLabel returns the text on the trigger and whether it is the
// placeholder. A value that matches no option shows the placeholder.
func (m *Model) TriggerLabel() (string, bool) {
	if opt, ok := domain.FindByValue(m.props.Options, m.props.Value); ok {
		return opt.Label, false
	}
	return m.props.Placeholder, true
}

// IsOpen reports whether the overlay is showing
func (m *Model) IsOpen() bool {
	return m.open
}

// IsCompact reports the last compact flag seen
func (m *Model) IsCompact() bool {
	return m.compact
}

// Mode returns the presentation currently in use
func (m *Model) Mode() presentation.Mode {
	return m.strategy().Mode()
}

// Focused reports whether the selector receives keys
func (m *Model) Focused() bool {
	return m.focused
}

// Focus gives the selector keyboard focus
func (m *Model) Focus() {
	m.focused = true
}

// Blur removes keyboard focus and closes the overlay
func (m *Model) Blur() {
	m.focused = false
	m.Close()
}

// Open shows the overlay with an empty query
func (m *Model) Open() tea.Cmd {
	if m.open {
		return nil
	}
	m.open = true
	m.list.Reset()
	m.layoutList()
	cmd := m.list.Focus()
	m.notifyOpen(true)
	return cmd
}

// Close hides the overlay and discards the query
func (m *Model) Close() {
	if !m.open {
		return
	}
	m.open = false
	m.overlay = rect{}
	m.list.Blur()
	m.list.Reset()
	m.notifyOpen(false)
}

// SetOpen opens or closes the overlay
func (m *Model) SetOpen(open bool) {
	if open {
		m.Open()
		return
	}
	m.Close()
}

// Toggle flips the overlay
func (m *Model) Toggle() tea.Cmd {
	if m.open {
		m.Close()
		return nil
	}
	return m.Open()
}

// SetScreen records the screen size the overlay is placed in
func (m *Model) SetScreen(width, height int) {
	m.screenW = width
	m.screenH = height
	if m.open {
		m.layoutList()
	}
}

// SetAnchor records where the host drew the trigger and how wide it is
func (m *Model) SetAnchor(x, y, width int) {
	m.anchor.X = x
	m.anchor.Y = y
	if width > 0 {
		m.anchor.Width = width
	}
	if m.open {
		m.layoutList()
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles keys for the trigger and forwards the rest to the list while open
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.focused {
			return nil
		}
		if !m.open {
			if key.Matches(msg, m.keys.Open) {
				return m.Open()
			}
			return nil
		}
		if key.Matches(msg, m.keys.Close) {
			m.Close()
			return nil
		}
		return m.list.Update(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	if m.open {
		return m.list.Update(msg)
	}
	return nil
}

// handleMouse toggles on trigger clicks and closes on clicks outside the overlay
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	click := msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft

	if click && m.zones != nil && m.zones.Get(m.zonePrefix()+"trigger").InBounds(msg) {
		m.focused = true
		return m.Toggle()
	}
	if !m.open {
		return nil
	}
	if click && !m.overlay.contains(msg.X, msg.Y) {
		m.Close()
		return nil
	}
	return m.list.Update(msg)
}

// View renders the trigger
func (m *Model) View() string {
	label, placeholder := m.TriggerLabel()
	trigger := m.strategy().Trigger(presentation.TriggerView{
		Label:       label,
		Placeholder: placeholder,
		Open:        m.open,
		Focused:     m.focused,
		Width:       m.anchor.Width,
	})
	m.anchor.Height = lipgloss.Height(trigger)
	if m.zones != nil {
		trigger = m.zones.Mark(m.zonePrefix()+"trigger", trigger)
	}
	return trigger
}

// Overlay renders the open overlay and its position. It reports false when closed.
func (m *Model) Overlay() (presentation.Placement, bool) {
	if !m.open {
		return presentation.Placement{}, false
	}
	m.layoutList()
	p := m.strategy().Place(m.list.View(), m.frame())
	m.overlay = rect{x: p.X, y: p.Y, w: lipgloss.Width(p.Content), h: lipgloss.Height(p.Content)}
	return p, true
}

// Compose draws the open overlay over base, the host's full screen
func (m *Model) Compose(base string) string {
	p, ok := m.Overlay()
	if !ok {
		return base
	}
	return presentation.Compose(base, p, m.styles)
}

// ShortHelp returns the bindings relevant to the current state
func (m *Model) ShortHelp() []key.Binding {
	if m.open {
		return append(optionlist.DefaultKeyMap().ShortHelp(), m.keys.Close)
	}
	return []key.Binding{m.keys.Open}
}

func (m *Model) strategy() presentation.Strategy {
	return m.adapter.For(m.compact)
}

func (m *Model) frame() presentation.Frame {
	if m.anchor.Height == 0 {
		m.anchor.Height = lipgloss.Height(m.View())
	}
	return presentation.Frame{
		ScreenWidth:  m.screenW,
		ScreenHeight: m.screenH,
		Anchor:       m.anchor,
	}
}

func (m *Model) layoutList() {
	f := m.frame()
	s := m.strategy()
	m.list.SetSize(s.ContentWidth(f), s.MaxRows(f))
}

// onCompactChange switches presentation, closing an open overlay
func (m *Model) onCompactChange(compact bool) {
	if compact == m.compact {
		return
	}
	m.compact = compact
	if m.open {
		log.Printf("Selector %s: presentation switched to %s, closing overlay", m.props.ID, m.strategy().Mode())
		m.Close()
	}
}

func (m *Model) notifyOpen(open bool) {
	if m.props.OnOpenChange != nil {
		m.props.OnOpenChange(open)
	}
}

func (m *Model) zonePrefix() string {
	return "selector:" + m.props.ID + ":"
}
