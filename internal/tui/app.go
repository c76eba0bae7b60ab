// ABOUTME: Main bubbletea model: input panel on the left, generated prompt on the right.
// ABOUTME: Edits write through to the workspace; derivation runs after the debounce window settles.
package tui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/2389-research/mailprompt/internal/debounce"
	"github.com/2389-research/mailprompt/internal/prompt"
	"github.com/2389-research/mailprompt/internal/workspace"
)

// DefaultCopiedFor is how long the copied confirmation stays visible.
const DefaultCopiedFor = 2 * time.Second

// clipboardWriteAll is swapped out in tests.
var clipboardWriteAll = clipboard.WriteAll

type focusArea int

const (
	focusHistory focusArea = iota
	focusPresets
	focusIntent
	focusCount
)

// inputSettledMsg carries a derivation input that survived the debounce window.
type inputSettledMsg struct {
	input prompt.Input
}

// copyResultMsg carries the outcome of a clipboard write.
type copyResultMsg struct {
	err error
}

// copiedResetMsg clears the copied flag if seq still matches the latest copy.
type copiedResetMsg struct {
	seq int
}

// programRef shares the running program's Send across bubbletea model copies.
// The debounce gate fires on its own goroutine and needs a way back onto the
// event loop.
type programRef struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

func (r *programRef) set(send func(tea.Msg)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.send = send
}

func (r *programRef) deliver(msg tea.Msg) {
	r.mu.Lock()
	send := r.send
	r.mu.Unlock()
	if send != nil {
		send(msg)
	}
}

type options struct {
	debounce  time.Duration
	copiedFor time.Duration
	clock     clockwork.Clock
}

// Option configures an App.
type Option func(*options)

// WithDebounce sets the derivation quiescence window.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.debounce = d
		}
	}
}

// WithCopiedFor sets how long the copied confirmation stays visible.
func WithCopiedFor(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.copiedFor = d
		}
	}
}

// WithClock sets the clock driving the debounce gate.
func WithClock(c clockwork.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// App is the bubbletea model for the interactive form.
type App struct {
	ws        *workspace.Workspace
	logger    *zap.Logger
	gate      *debounce.Gate[prompt.Input]
	program   *programRef
	keys      keyMap
	help      help.Model
	copiedFor time.Duration

	history  textarea.Model
	intent   textarea.Model
	output   viewport.Model
	form     PresetFormModel
	formOpen bool

	focus         focusArea
	pendingDelete string
	prompt        string
	copied        bool
	copySeq       int
	width         int
}

// NewApp builds the form over ws. The initial prompt is derived immediately.
func NewApp(ws *workspace.Workspace, logger *zap.Logger, opts ...Option) App {
	if logger == nil {
		logger = zap.NewNop()
	}
	o := options{
		debounce:  debounce.DefaultWindow,
		copiedFor: DefaultCopiedFor,
		clock:     clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	ref := &programRef{}
	gate := debounce.New(o.debounce, func(in prompt.Input) {
		ref.deliver(inputSettledMsg{input: in})
	}, debounce.WithClock(o.clock))

	sess := ws.Session()
	history := newTextarea(8)
	history.SetValue(sess.History)
	history.Focus()
	intent := newTextarea(4)
	intent.SetValue(sess.Intent)

	m := App{
		ws:        ws,
		logger:    logger,
		gate:      gate,
		program:   ref,
		keys:      defaultKeyMap(),
		help:      help.New(),
		copiedFor: o.copiedFor,
		history:   history,
		intent:    intent,
		output:    viewport.New(60, 20),
		focus:     focusHistory,
	}
	m.applyLabels()
	m.setPrompt(ws.Derive())
	return m
}

func newTextarea(height int) textarea.Model {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(60)
	ta.SetHeight(height)
	return ta
}

// SetProgram connects the debounce gate to a running program.
func (m App) SetProgram(p *tea.Program) {
	m.program.set(p.Send)
}

// Close drops any pending derivation.
func (m App) Close() {
	m.gate.Cancel()
}

// Init implements tea.Model.
func (m App) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case inputSettledMsg:
		m.setPrompt(m.ws.DeriveInput(msg.input))
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			m.logger.Warn("clipboard write failed", zap.Error(msg.err))
			return m, nil
		}
		m.copied = true
		m.copySeq++
		seq := m.copySeq
		return m, tea.Tick(m.copiedFor, func(time.Time) tea.Msg {
			return copiedResetMsg{seq: seq}
		})

	case copiedResetMsg:
		if msg.seq == m.copySeq {
			m.copied = false
		}
		return m, nil

	case presetFormSubmittedMsg:
		m.formOpen = false
		p, err := m.ws.AddPreset(msg.name, msg.instruction)
		if err != nil {
			m.logger.Warn("preset not added", zap.Error(err))
			return m, nil
		}
		m.logger.Debug("preset created from form", zap.String("id", p.ID))
		m.inputChanged()
		return m, nil

	case presetFormCancelledMsg:
		m.formOpen = false
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	if m.formOpen {
		updated, cmd := m.form.Update(msg)
		m.form = updated.(PresetFormModel)
		return m, cmd
	}
	return m.updateFocused(msg)
}

func (m App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.formOpen {
		updated, cmd := m.form.Update(msg)
		m.form = updated.(PresetFormModel)
		return m, cmd
	}

	if msg.Type == tea.KeyCtrlC {
		m.gate.Cancel()
		return m, tea.Quit
	}

	if m.pendingDelete != "" {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			if m.ws.RemovePreset(m.pendingDelete) {
				m.inputChanged()
			}
			m.pendingDelete = ""
		case key.Matches(msg, m.keys.Deny):
			m.pendingDelete = ""
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.gate.Cancel()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		return m, m.setFocus((m.focus + 1) % focusCount)
	case key.Matches(msg, m.keys.Prev):
		return m, m.setFocus((m.focus + focusCount - 1) % focusCount)
	case key.Matches(msg, m.keys.Locale):
		m.ws.ToggleLocale()
		m.applyLabels()
		m.syncInputs()
		m.inputChanged()
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		return m, m.copyCmd()
	}

	if m.focus == focusPresets {
		return m.updatePicker(msg)
	}
	return m.updateFocused(msg)
}

func (m App) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	list := m.ws.Presets()
	selected := m.ws.Session().SelectedPresetID
	idx := 0
	for i, p := range list {
		if p.ID == selected {
			idx = i
			break
		}
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if idx > 0 {
			m.selectPreset(list[idx-1].ID)
		}
	case key.Matches(msg, m.keys.Down):
		if idx < len(list)-1 {
			m.selectPreset(list[idx+1].ID)
		}
	case key.Matches(msg, m.keys.NewPreset):
		m.form = NewPresetFormModel(m.labels())
		m.formOpen = true
		return m, m.form.Init()
	case key.Matches(msg, m.keys.Delete):
		if len(list) > 0 && list[idx].IsUserDefined() {
			m.pendingDelete = list[idx].ID
		}
	}
	return m, nil
}

func (m App) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusHistory:
		m.history, cmd = m.history.Update(msg)
		if v := m.history.Value(); v != m.ws.Session().History {
			m.ws.SetHistory(v)
			m.inputChanged()
		}
	case focusIntent:
		m.intent, cmd = m.intent.Update(msg)
		if v := m.intent.Value(); v != m.ws.Session().Intent {
			m.ws.SetIntent(v)
			m.inputChanged()
		}
	}
	return m, cmd
}

func (m *App) selectPreset(id string) {
	if err := m.ws.Select(id); err != nil {
		m.logger.Warn("preset not selected", zap.String("id", id), zap.Error(err))
		return
	}
	m.inputChanged()
}

// inputChanged hands the current derivation input to the debounce gate.
func (m *App) inputChanged() {
	m.gate.Submit(m.ws.Input())
}

func (m *App) setFocus(f focusArea) tea.Cmd {
	m.history.Blur()
	m.intent.Blur()
	m.focus = f
	switch f {
	case focusHistory:
		return m.history.Focus()
	case focusIntent:
		return m.intent.Focus()
	}
	return nil
}

func (m *App) copyCmd() tea.Cmd {
	if m.prompt == "" {
		return nil
	}
	text := m.prompt
	return func() tea.Msg {
		return copyResultMsg{err: clipboardWriteAll(text)}
	}
}

func (m *App) setPrompt(p string) {
	m.prompt = p
	m.output.SetContent(p)
	m.output.GotoTop()
}

func (m *App) resize(width, height int) {
	m.width = width
	col := max(width/2-4, 20)
	m.history.SetWidth(col)
	m.intent.SetWidth(col)
	m.output.Width = col
	m.output.Height = max(height-8, 5)
	m.help.Width = width
}

func (m *App) applyLabels() {
	l := m.labels()
	m.history.Placeholder = l.HistoryPlaceholder
	m.intent.Placeholder = l.IntentPlaceholder
}

// syncInputs reloads the textareas after the workspace reloaded its session.
func (m *App) syncInputs() {
	sess := m.ws.Session()
	if m.history.Value() != sess.History {
		m.history.SetValue(sess.History)
	}
	if m.intent.Value() != sess.Intent {
		m.intent.SetValue(sess.Intent)
	}
}

func (m App) labels() Labels {
	return LabelsFor(m.ws.Locale())
}

// View implements tea.Model.
func (m App) View() string {
	l := m.labels()

	var left strings.Builder
	left.WriteString(brandStyle.Render(l.AppTitle))
	left.WriteString(stepStyle.Render(fmt.Sprintf("  [%s]", m.ws.Locale())))
	left.WriteString("\n")
	left.WriteString(m.section(focusHistory, l.HistoryLabel, m.history.View()))
	left.WriteString("\n")
	if m.formOpen {
		left.WriteString(focusedPanelStyle.Render(m.form.View()))
	} else {
		left.WriteString(m.section(focusPresets, l.StyleLabel, m.presetList(l)))
	}
	left.WriteString("\n")
	left.WriteString(m.section(focusIntent, l.IntentLabel, m.intent.View()))
	left.WriteString("\n")
	left.WriteString(promptStyle.Render(l.AutoSave))

	var right strings.Builder
	right.WriteString(labelStyle.Render(l.GeneratedLabel))
	if m.prompt != "" {
		right.WriteString(stepStyle.Render(fmt.Sprintf("  ~%d %s", prompt.EstimateTokens(m.prompt), l.Tokens)))
	}
	right.WriteString("  ")
	switch {
	case m.copied:
		right.WriteString(successStyle.Render("✓ " + l.Copied))
	case m.prompt == "":
		right.WriteString(promptStyle.Render("[ctrl+y] " + l.Copy))
	default:
		right.WriteString(titleStyle.Render("[ctrl+y] " + l.Copy))
	}
	right.WriteString("\n")
	if m.prompt == "" {
		right.WriteString(titleStyle.Render(l.ReadyTitle))
		right.WriteString("\n")
		right.WriteString(promptStyle.Render(l.ReadyDesc))
	} else {
		right.WriteString(m.output.View())
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(left.String()),
		panelStyle.Render(right.String()),
	)
	return body + "\n" + m.help.View(m.keys)
}

func (m App) section(area focusArea, label, content string) string {
	style := panelStyle
	if m.focus == area {
		style = focusedPanelStyle
	}
	return style.Render(labelStyle.Render(label) + "\n" + content)
}

func (m App) presetList(l Labels) string {
	var b strings.Builder
	selected := m.ws.SelectedPreset()
	for _, p := range m.ws.Presets() {
		line := "  " + p.Name
		style := plainItem
		if p.ID == selected.ID {
			line = "› " + p.Name
			style = selectedItem
		}
		if p.IsUserDefined() {
			line += fmt.Sprintf(" (%s)", l.Custom)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	if selected.PromptInstruction != "" {
		b.WriteString(stepStyle.Render(selected.PromptInstruction))
		b.WriteString("\n")
	}
	if m.pendingDelete != "" {
		b.WriteString(errorStyle.Render(fmt.Sprintf("%s? %s", l.DeleteStyle, l.Confirm)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// Run starts the interactive form and blocks until the user quits.
func Run(ws *workspace.Workspace, logger *zap.Logger, opts ...Option) error {
	m := NewApp(ws, logger, opts...)
	p := tea.NewProgram(m, tea.WithAltScreen())
	m.SetProgram(p)
	defer m.Close()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
