package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"tutorselect/internal/config"
	"tutorselect/internal/domain"
	"tutorselect/internal/eventbus"
	"tutorselect/internal/form"
	"tutorselect/internal/matcher"
	"tutorselect/internal/roster"
	"tutorselect/internal/ui/selector"
	"tutorselect/internal/ui/views"
	"tutorselect/internal/viewport"
)

// Texts shown by the form
const (
	TitleText       = "Dados do Animal"
	DescriptionText = "Registre as informações do pet"
	SubmitText      = "Salvar Animal"
	SavingText      = "Salvando..."
	SuccessText     = "Sucesso! Animal cadastrado com sucesso."
	FailureText     = "Erro ao salvar animal. Tente novamente."
	InvalidText     = "Corrija os campos destacados."
	MoreBelowText   = "↓ mais campos abaixo"
	NoTutorsText    = "Você precisa cadastrar um tutor primeiro para registrar um animal."
)

// ReadySignal is printed once the first frame is drawn when the host asks for it
const ReadySignal = "__READY__"

// statusTimeout is how long a status message stays up
const statusTimeout = 4 * time.Second

// submitKey is the field key of the submit button
const submitKey = "submit"

type fieldKind int

const (
	kindSelect fieldKind = iota
	kindText
	kindButton
)

// field is one focusable control of the form
type field struct {
	key   string
	label string
	kind  fieldKind
	half  bool
	sel   *selector.Model
	input textinput.Model
}

// Model represents the UI state
type Model struct {
	ctx      context.Context
	bus      eventbus.EventBus
	config   *config.Config
	service  *form.Service
	detector *viewport.Detector
	zones    *zone.Manager
	renderer *views.Renderer
	help     help.Model
	helpOps  *HelpOps
	keys     KeyMap
	now      func() time.Time

	tutors []domain.Tutor
	fields []*field
	focus  int

	errs      form.ValidationErrors
	submitted bool // validate on every edit after the first submit
	saving    bool
	saved     int

	status     string
	statusKind views.StatusKind
	statusSeq  int

	width       int
	height      int
	offset      int  // first visible body line
	inPagerMode bool // tracks if we're currently in pager mode
	readySignal bool
	sized       bool
}

// NewModel creates a new UI model
func NewModel(ctx context.Context, bus eventbus.EventBus, cfg *config.Config, svc *form.Service, tutors []domain.Tutor, detector *viewport.Detector) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if detector == nil {
		detector = viewport.NewDetector(cfg.UISettings.CompactBreakpoint)
	}

	m := &Model{
		ctx:      ctx,
		bus:      bus,
		config:   cfg,
		service:  svc,
		detector: detector,
		renderer: views.NewRenderer(),
		help:     help.New(),
		helpOps:  NewHelpOps(),
		keys:     DefaultKeyMap(),
		now:      time.Now,
		tutors:   tutors,
		width:    80,
		height:   24,
	}
	if cfg.UISettings.Mouse {
		m.zones = zone.New()
	}

	ui := cfg.UISettings
	m.addSelect(form.FieldTutor, "Tutor Responsável *", false, selector.Props{
		Options:           roster.Options(tutors, ui.PhoneDelimiter),
		Placeholder:       ui.Placeholder,
		SearchPlaceholder: ui.SearchPlaceholder,
		EmptyPlaceholder:  ui.EmptyPlaceholder,
		Filter:            matcher.PhoneAware(ui.PhoneDelimiter),
	})
	m.addText(form.FieldName, "Nome do Animal *", "Ex: Rex, Mimi...", true)
	m.addSelect(form.FieldSpecies, "Espécie *", true, selector.Props{
		Options:           choices(form.Species),
		Placeholder:       "Selecione a espécie",
		SearchPlaceholder: "Buscar espécie...",
		EmptyPlaceholder:  "Nenhuma espécie encontrada.",
	})
	m.addText(form.FieldBreed, "Raça *", "Ex: Labrador, Persa...", true)
	m.addText(form.FieldBirthDate, "Data de Nascimento *", "AAAA-MM-DD", true)
	m.addSelect(form.FieldSex, "Sexo *", false, selector.Props{
		Options:           choices(form.Sexes),
		Placeholder:       "Selecione o sexo",
		SearchPlaceholder: "Buscar...",
		EmptyPlaceholder:  "Nenhuma opção encontrada.",
	})
	m.addText(form.FieldColor, "Cor *", "Ex: Marrom, Branco...", true)
	m.addText(form.FieldWeight, "Peso (kg) *", "0.0", true)
	m.fields = append(m.fields, &field{key: submitKey, kind: kindButton})

	m.field(form.FieldBirthDate).input.CharLimit = len(form.DateLayout)
	m.field(form.FieldWeight).input.CharLimit = 8

	m.focusField(0)
	return m
}

func choices(values []string) []domain.Option {
	opts := make([]domain.Option, len(values))
	for i, v := range values {
		opts[i] = domain.Option{Label: v, Value: v}
	}
	return opts
}

func (m *Model) addSelect(key, label string, half bool, p selector.Props) {
	f := &field{key: key, label: label, kind: kindSelect, half: half}
	p.ID = key
	p.OnChange = m.onSelect(f)
	f.sel = selector.New(p, m.detector)
	if m.zones != nil {
		f.sel.SetZones(m.zones)
	}
	m.fields = append(m.fields, f)
}

func (m *Model) addText(key, label, placeholder string, half bool) {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	m.fields = append(m.fields, &field{key: key, label: label, kind: kindText, half: half, input: in})
}

// onSelect is the controlled-value callback of a selector: the form stores
// the reported value and hands it back.
func (m *Model) onSelect(f *field) func(string) {
	return func(value string) {
		prev := f.sel.Value()
		f.sel.SetValue(value)
		log.Printf("UI: %s changed %q -> %q", f.key, prev, value)
		m.publish(eventbus.SelectionChangedEvent{Field: f.key, Previous: prev, Current: value})
		m.revalidate()
	}
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.helpOps.SetProgram(p)
}

// SetReadySignal makes the view print ReadySignal once sized
func (m *Model) SetReadySignal(on bool) {
	m.readySignal = on
}

// Teardown releases the selectors' viewport subscriptions
func (m *Model) Teardown() {
	for _, f := range m.fields {
		if f.sel != nil {
			f.sel.Teardown()
		}
	}
}

// Selector returns the selector for a field key
func (m *Model) Selector(key string) *selector.Model {
	if f := m.field(key); f != nil {
		return f.sel
	}
	return nil
}

// Animal returns the record the form currently describes
func (m *Model) Animal() domain.Animal {
	weight, _ := form.ParseWeight(m.field(form.FieldWeight).input.Value())
	return domain.Animal{
		TutorID:   m.field(form.FieldTutor).sel.Value(),
		Name:      strings.TrimSpace(m.field(form.FieldName).input.Value()),
		Species:   m.field(form.FieldSpecies).sel.Value(),
		Breed:     strings.TrimSpace(m.field(form.FieldBreed).input.Value()),
		BirthDate: strings.TrimSpace(m.field(form.FieldBirthDate).input.Value()),
		Sex:       m.field(form.FieldSex).sel.Value(),
		Color:     strings.TrimSpace(m.field(form.FieldColor).input.Value()),
		Weight:    weight,
	}
}

// Errors returns the field errors currently shown
func (m *Model) Errors() form.ValidationErrors {
	return m.errs
}

// Status returns the status line text
func (m *Model) Status() string {
	return m.status
}

// FocusedKey returns the key of the focused field
func (m *Model) FocusedKey() string {
	return m.fields[m.focus].key
}

func (m *Model) field(key string) *field {
	for _, f := range m.fields {
		if f.key == key {
			return f
		}
	}
	return nil
}

func (m *Model) openSelector() *selector.Model {
	for _, f := range m.fields {
		if f.sel != nil && f.sel.IsOpen() {
			return f.sel
		}
	}
	return nil
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.sized = true
		// Observe before SetScreen so a mode flip closes the overlay first
		m.detector.Observe(msg.Width)
		for _, f := range m.fields {
			if f.sel != nil {
				f.sel.SetScreen(msg.Width, msg.Height)
			}
		}
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case saveResultMsg:
		return m, m.handleSaveResult(msg)

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusKind = views.StatusNone
		}
		return m, nil

	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case helpPagerMsg:
		if msg.err != nil {
			// Pager failed: log only; do not surface in status bar
			log.Printf("Help pager failed: %v", msg.err)
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil
	}

	// Cursor blinks and similar go to whatever is focused
	if open := m.openSelector(); open != nil {
		return m, open.Update(msg)
	}
	if f := m.fields[m.focus]; f.kind == kindText {
		var cmd tea.Cmd
		f.input, cmd = f.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) {
		m.Teardown()
		return tea.Quit
	}
	if key.Matches(msg, m.keys.Help) {
		return m.showHelp()
	}
	if len(m.tutors) == 0 {
		return nil
	}

	// An open overlay owns the keyboard
	if open := m.openSelector(); open != nil {
		return open.Update(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.Next):
		return m.focusField(m.focus + 1)
	case key.Matches(msg, m.keys.Prev):
		return m.focusField(m.focus - 1)
	}

	f := m.fields[m.focus]
	switch f.kind {
	case kindSelect:
		return f.sel.Update(msg)
	case kindText:
		if msg.Type == tea.KeyEnter {
			return m.focusField(m.focus + 1)
		}
		var cmd tea.Cmd
		f.input, cmd = f.input.Update(msg)
		m.revalidate()
		return cmd
	case kindButton:
		if msg.Type == tea.KeyEnter || msg.Type == tea.KeySpace {
			return m.submit()
		}
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.zones == nil || len(m.tutors) == 0 {
		return nil
	}
	if open := m.openSelector(); open != nil {
		return open.Update(msg)
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scroll(-1)
		return nil
	case tea.MouseButtonWheelDown:
		m.scroll(1)
		return nil
	}

	for i, f := range m.fields {
		if f.sel == nil {
			continue
		}
		if cmd := f.sel.Update(msg); f.sel.IsOpen() {
			return tea.Batch(m.focusField(i), cmd)
		}
	}

	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	for i, f := range m.fields {
		if f.kind == kindSelect || !m.zones.Get(fieldZoneID(f.key)).InBounds(msg) {
			continue
		}
		cmd := m.focusField(i)
		if f.kind == kindButton {
			return tea.Batch(cmd, m.submit())
		}
		return cmd
	}
	return nil
}

func fieldZoneID(key string) string {
	return "field:" + key
}

// focusField moves focus to index i, wrapping around
func (m *Model) focusField(i int) tea.Cmd {
	n := len(m.fields)
	i = ((i % n) + n) % n

	if i != m.focus {
		switch prev := m.fields[m.focus]; prev.kind {
		case kindSelect:
			prev.sel.Blur()
		case kindText:
			prev.input.Blur()
		}
	}
	m.focus = i

	switch f := m.fields[i]; f.kind {
	case kindSelect:
		f.sel.Focus()
	case kindText:
		return f.input.Focus()
	}
	return nil
}

func (m *Model) scroll(delta int) {
	m.offset += delta
	if m.offset < 0 {
		m.offset = 0
	}
}

// revalidate refreshes field errors once a submit has been attempted
func (m *Model) revalidate() {
	if !m.submitted {
		return
	}
	m.errs = m.validate()
}

func (m *Model) validate() form.ValidationErrors {
	errs := form.ValidationErrors{}
	var verrs form.ValidationErrors
	if err := form.Validate(m.Animal()); errors.As(err, &verrs) {
		errs = verrs
	}
	if _, err := form.ParseWeight(m.field(form.FieldWeight).input.Value()); err != nil {
		errs[form.FieldWeight] = "Peso inválido"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// submit validates the form and saves it in the background
func (m *Model) submit() tea.Cmd {
	if m.saving || m.service == nil {
		return nil
	}
	m.submitted = true
	m.errs = m.validate()
	if len(m.errs) > 0 {
		log.Printf("UI: submit blocked: %v", m.errs)
		for i, f := range m.fields {
			if _, bad := m.errs[f.key]; bad {
				return tea.Batch(m.focusField(i), m.setStatus(InvalidText, views.StatusError))
			}
		}
		return m.setStatus(InvalidText, views.StatusError)
	}

	m.saving = true
	m.status = SavingText
	m.statusKind = views.StatusLoading

	ctx, svc, animal := m.ctx, m.service, m.Animal()
	if ctx == nil {
		ctx = context.Background()
	}
	return func() tea.Msg {
		id, err := svc.Submit(ctx, animal)
		return saveResultMsg{id: id, err: err}
	}
}

func (m *Model) handleSaveResult(msg saveResultMsg) tea.Cmd {
	m.saving = false

	var verrs form.ValidationErrors
	switch {
	case errors.As(msg.err, &verrs):
		m.errs = verrs
		return m.setStatus(InvalidText, views.StatusError)
	case msg.err != nil:
		log.Printf("UI: save failed: %v", msg.err)
		return m.setStatus(FailureText, views.StatusError)
	}

	m.saved++
	m.reset()
	return tea.Batch(m.focusField(0), m.setStatus(SuccessText, views.StatusSuccess))
}

// reset clears every field, as after a successful save
func (m *Model) reset() {
	for _, f := range m.fields {
		switch f.kind {
		case kindSelect:
			f.sel.Close()
			f.sel.SetValue(domain.NoSelection)
		case kindText:
			f.input.Reset()
		}
	}
	m.errs = nil
	m.submitted = false
	m.offset = 0
}

func (m *Model) handleEvent(e eventbus.DomainEvent) tea.Cmd {
	switch ev := e.(type) {
	case eventbus.ErrorEvent:
		return m.setStatus(fmt.Sprintf("Erro: %s", ev.Message), views.StatusError)
	case eventbus.RosterLoadedEvent:
		log.Printf("UI: roster %s has %d tutors", ev.Source, ev.Count)
	}
	return nil
}

func (m *Model) setStatus(text string, kind views.StatusKind) tea.Cmd {
	m.statusSeq++
	m.status = text
	m.statusKind = kind
	seq := m.statusSeq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

func (m *Model) publish(e eventbus.DomainEvent) {
	if m.bus != nil {
		m.bus.Publish(e)
	}
}

// showHelp returns a command that shows help using ov pager
func (m *Model) showHelp() tea.Cmd {
	content := NewHelpRenderer(m.keys).RenderHelpContent()
	program := m.helpOps.program
	return func() tea.Msg {
		if program == nil {
			return helpPagerMsg{err: fmt.Errorf("program not set")}
		}
		// Send pause message to stop rendering
		program.Send(pauseRenderingMsg{})

		err := m.helpOps.ShowHelpInPager(content)

		// Send resume message to restart rendering
		program.Send(resumeRenderingMsg{})

		return helpPagerMsg{err: err}
	}
}

// View renders the form and draws any open overlay on top
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}

	footer := m.footer()
	bodyHeight := m.height - lipgloss.Height(footer)
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	var body string
	if len(m.tutors) == 0 {
		body = m.renderer.Main(lipgloss.JoinVertical(lipgloss.Left,
			m.header(),
			m.renderer.Empty(NoTutorsText, fmt.Sprintf("Cadastre tutores em %s e abra o formulário novamente.", m.config.RosterPath)),
		))
	} else {
		body = m.renderForm(bodyHeight)
	}

	lines := strings.Split(body, "\n")
	if m.offset > len(lines)-1 {
		m.offset = len(lines) - 1
	}
	lines = lines[m.offset:]
	if len(lines) > bodyHeight {
		lines = lines[:bodyHeight]
		if bodyHeight > 1 {
			lines[bodyHeight-1] = strings.Repeat(" ", m.renderer.Left()) + m.renderer.ScrollHint(MoreBelowText)
		}
	}
	for len(lines) < bodyHeight {
		lines = append(lines, "")
	}

	screen := strings.Join(lines, "\n") + "\n" + footer
	if open := m.openSelector(); open != nil {
		screen = open.Compose(screen)
	}
	if m.zones != nil {
		return m.zones.Scan(screen)
	}
	return screen
}

func (m *Model) header() string {
	desc := DescriptionText
	if m.saved > 0 {
		desc = fmt.Sprintf("%s · %d cadastrado(s) nesta sessão", desc, m.saved)
	}
	return m.renderer.Header(TitleText, desc)
}

// renderForm lays the fields out, scrolls the focused one into view and
// tells each selector where its trigger ended up
func (m *Model) renderForm(bodyHeight int) string {
	header := m.header()
	top := lipgloss.Height(header)
	width := m.renderer.ContentWidth(m.width)
	left := m.renderer.Left()

	blocks := m.blocks()
	layout := m.renderer.Layout(blocks, width, m.detector.IsCompact())

	// Keep the focused block on screen
	if r, ok := layout.Blocks[m.fields[m.focus].key]; ok {
		if y := top + r.Y; y < m.offset {
			m.offset = y
		} else if bottom := top + r.Bottom(); bottom > m.offset+bodyHeight {
			m.offset = bottom - bodyHeight
		}
	}
	if m.focus == 0 {
		m.offset = 0
	}

	for i := range blocks {
		f := m.fields[i]
		ctrl := layout.Controls[f.key]
		focused := i == m.focus
		switch f.kind {
		case kindSelect:
			f.sel.SetAnchor(left+ctrl.X, top+ctrl.Y-m.offset, ctrl.Width)
			blocks[i].Control = f.sel.View()
		case kindText:
			f.input.Width = m.renderer.InputInnerWidth(ctrl.Width) - 1
			blocks[i].Control = m.markField(f.key, m.renderer.InputBox(f.input.View(), ctrl.Width, focused))
		case kindButton:
			label := SubmitText
			if m.saving {
				label = SavingText
			}
			blocks[i].Control = m.markField(f.key, m.renderer.Button(label, ctrl.Width, focused, m.saving))
		}
	}

	return m.renderer.Main(header + "\n" + m.renderer.RenderBlocks(blocks, layout))
}

func (m *Model) markField(key, s string) string {
	if m.zones == nil {
		return s
	}
	return m.zones.Mark(fieldZoneID(key), s)
}

// blocks describes every field for the layout, controls still empty
func (m *Model) blocks() []views.Block {
	blocks := make([]views.Block, len(m.fields))
	for i, f := range m.fields {
		b := views.Block{
			Key:           f.key,
			Label:         f.label,
			ControlHeight: 3,
			Half:          f.half,
			Message:       m.errs[f.key],
		}
		if f.key == form.FieldBirthDate {
			if age := form.Age(strings.TrimSpace(f.input.Value()), m.now()); age != "" {
				b.Hint = "Idade: " + age
			}
		}
		blocks[i] = b
	}
	return blocks
}

func (m *Model) footer() string {
	var bindings []key.Binding
	if f := m.fields[m.focus]; f.sel != nil && len(m.tutors) > 0 {
		bindings = append(bindings, f.sel.ShortHelp()...)
	}
	bindings = append(bindings, m.keys.Next, m.keys.Submit, m.keys.Help, m.keys.Quit)

	helpLine := m.renderer.Help(m.help.View(shortHelp(bindings)))
	if m.readySignal && m.sized {
		helpLine += "  " + ReadySignal
	}
	status := m.renderer.Status(m.status, m.statusKind)
	return m.renderer.Main(status + "\n" + helpLine)
}
