// ABOUTME: Unit tests for the main form bubbletea model.
// ABOUTME: Drives the model with synthetic messages and a fake debounce clock.
package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"

	"github.com/2389-research/mailprompt/internal/kvstore"
	"github.com/2389-research/mailprompt/internal/models"
	"github.com/2389-research/mailprompt/internal/session"
	"github.com/2389-research/mailprompt/internal/workspace"
)

type testHarness struct {
	app   App
	ws    *workspace.Workspace
	kv    *kvstore.MemoryStore
	clock *clockwork.FakeClock
	sent  chan tea.Msg
}

func newHarness(t *testing.T, seed map[string]string) *testHarness {
	t.Helper()
	kv := kvstore.NewMemoryStore()
	for k, v := range seed {
		if err := kv.Set(k, v); err != nil {
			t.Fatalf("seed %s: %v", k, err)
		}
	}
	ws := workspace.Open(session.NewStore(kv, nil), nil)
	clock := clockwork.NewFakeClock()
	app := NewApp(ws, nil, WithClock(clock))

	sent := make(chan tea.Msg, 8)
	app.program.set(func(msg tea.Msg) { sent <- msg })
	t.Cleanup(app.Close)

	return &testHarness{app: app, ws: ws, kv: kv, clock: clock, sent: sent}
}

func (h *testHarness) update(msg tea.Msg) tea.Cmd {
	updated, cmd := h.app.Update(msg)
	h.app = updated.(App)
	return cmd
}

func (h *testHarness) key(k tea.KeyType) tea.Cmd {
	return h.update(tea.KeyMsg{Type: k})
}

func (h *testHarness) runes(s string) tea.Cmd {
	return h.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

// settle advances past the debounce window and feeds the emitted message back.
func (h *testHarness) settle(t *testing.T) {
	t.Helper()
	h.clock.Advance(500 * time.Millisecond)
	select {
	case msg := <-h.sent:
		h.update(msg)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for settled input")
	}
}

func stubClipboard(t *testing.T, err error) *string {
	t.Helper()
	var got string
	orig := clipboardWriteAll
	clipboardWriteAll = func(text string) error {
		got = text
		return err
	}
	t.Cleanup(func() { clipboardWriteAll = orig })
	return &got
}

func TestNewApp_RestoresSession(t *testing.T) {
	h := newHarness(t, map[string]string{
		session.KeyState: `{"history":"Hi Bob","intent":"decline politely","styleId":"concise"}`,
	})

	if h.app.history.Value() != "Hi Bob" {
		t.Errorf("expected history restored, got %q", h.app.history.Value())
	}
	if h.app.intent.Value() != "decline politely" {
		t.Errorf("expected intent restored, got %q", h.app.intent.Value())
	}
	if !strings.Contains(h.app.prompt, "Direct & Concise") {
		t.Error("expected initial prompt derived from restored session")
	}
}

func TestNewApp_EmptyShowsReady(t *testing.T) {
	h := newHarness(t, nil)

	if h.app.prompt != "" {
		t.Errorf("expected empty prompt, got %q", h.app.prompt)
	}
	view := h.app.View()
	if !strings.Contains(view, "Ready to generate") {
		t.Error("expected ready placeholder in view")
	}
	if !strings.Contains(view, "Inputs auto-save to local storage") {
		t.Error("expected auto-save footer in view")
	}
}

func TestApp_TypingIsDebounced(t *testing.T) {
	h := newHarness(t, nil)

	h.runes("Hello")
	if got := h.ws.Session().History; got != "Hello" {
		t.Errorf("expected raw history persisted immediately, got %q", got)
	}
	if h.app.prompt != "" {
		t.Error("prompt should not update before the window elapses")
	}

	h.clock.Advance(200 * time.Millisecond)
	h.runes(" there")
	h.clock.Advance(200 * time.Millisecond)
	select {
	case msg := <-h.sent:
		t.Fatalf("unexpected early emission %#v", msg)
	case <-time.After(50 * time.Millisecond):
	}

	h.settle(t)
	if !strings.Contains(h.app.prompt, "Hello there") {
		t.Errorf("expected settled prompt to contain history, got %q", h.app.prompt)
	}
	select {
	case msg := <-h.sent:
		t.Fatalf("expected a single emission, got extra %#v", msg)
	default:
	}
}

func TestApp_TabCyclesFocus(t *testing.T) {
	h := newHarness(t, nil)

	h.key(tea.KeyTab)
	if h.app.focus != focusPresets {
		t.Errorf("expected presets focus, got %d", h.app.focus)
	}
	h.key(tea.KeyTab)
	if h.app.focus != focusIntent || !h.app.intent.Focused() {
		t.Errorf("expected intent focus, got %d", h.app.focus)
	}
	h.key(tea.KeyTab)
	if h.app.focus != focusHistory {
		t.Errorf("expected focus to wrap to history, got %d", h.app.focus)
	}
	h.key(tea.KeyShiftTab)
	if h.app.focus != focusIntent {
		t.Errorf("expected shift+tab to go back to intent, got %d", h.app.focus)
	}
}

func TestApp_PickerSelects(t *testing.T) {
	h := newHarness(t, nil)
	h.key(tea.KeyTab)

	h.key(tea.KeyDown)
	if got := h.ws.Session().SelectedPresetID; got != "friendly" {
		t.Errorf("expected friendly, got %q", got)
	}
	h.key(tea.KeyUp)
	h.key(tea.KeyUp)
	if got := h.ws.Session().SelectedPresetID; got != "formal" {
		t.Errorf("expected up to stop at formal, got %q", got)
	}
}

func TestApp_NewPresetFlow(t *testing.T) {
	h := newHarness(t, nil)
	h.key(tea.KeyTab)

	h.runes("n")
	if !h.app.formOpen {
		t.Fatal("expected form to open on n")
	}
	h.runes("Pirate")
	h.key(tea.KeyEnter)
	h.runes("Talk like a pirate.")
	cmd := h.key(tea.KeyEnter)
	if cmd == nil {
		t.Fatal("expected submit cmd")
	}
	h.update(cmd())

	if h.app.formOpen {
		t.Error("expected form to close after submit")
	}
	sel, _ := models.FindPreset(h.ws.Presets(), h.ws.Session().SelectedPresetID)
	if sel.Name != "Pirate" || !sel.IsUserDefined() {
		t.Errorf("expected new preset selected, got %+v", sel)
	}
}

func TestApp_NewPresetCancel(t *testing.T) {
	h := newHarness(t, nil)
	h.key(tea.KeyTab)
	h.runes("n")

	cmd := h.key(tea.KeyEscape)
	h.update(cmd())
	if h.app.formOpen {
		t.Error("expected form to close on escape")
	}
	if len(h.ws.Presets()) != 5 {
		t.Errorf("expected no preset added, got %d presets", len(h.ws.Presets()))
	}
}

func TestApp_DeleteRequiresConfirmation(t *testing.T) {
	h := newHarness(t, map[string]string{
		session.KeyUserPresets: `[{"id":"42","name":"Mine","promptInstruction":"Be mine."}]`,
		session.KeyState:       `{"history":"","intent":"","styleId":"42"}`,
	})
	h.key(tea.KeyTab)

	h.runes("d")
	if h.app.pendingDelete != "42" {
		t.Fatalf("expected pending delete of 42, got %q", h.app.pendingDelete)
	}
	if !strings.Contains(h.app.View(), "Delete custom style? (y/n)") {
		t.Error("expected confirmation prompt in view")
	}

	h.runes("n")
	if h.app.pendingDelete != "" {
		t.Error("expected n to cancel")
	}
	if _, ok := models.FindPreset(h.ws.Presets(), "42"); !ok {
		t.Error("preset should survive a cancelled delete")
	}

	h.runes("d")
	h.runes("y")
	if _, ok := models.FindPreset(h.ws.Presets(), "42"); ok {
		t.Error("expected preset to be deleted")
	}
	if got := h.ws.Session().SelectedPresetID; got != "formal" {
		t.Errorf("expected formal after deletion, got %q", got)
	}
}

func TestApp_DeleteNotOfferedForBuiltins(t *testing.T) {
	h := newHarness(t, nil)
	h.key(tea.KeyTab)

	h.runes("d")
	if h.app.pendingDelete != "" {
		t.Errorf("built-ins must not be deletable, got pending %q", h.app.pendingDelete)
	}
}

func TestApp_ToggleLocale(t *testing.T) {
	h := newHarness(t, map[string]string{
		session.KeyState: `{"history":"","intent":"say hi","styleId":"friendly"}`,
	})

	h.key(tea.KeyCtrlL)
	if h.ws.Locale() != models.LocaleChinese {
		t.Fatalf("expected zh, got %q", h.ws.Locale())
	}
	if !strings.Contains(h.app.View(), "邮件提示词工匠") {
		t.Error("expected zh title in view")
	}
	if h.app.intent.Value() != "say hi" {
		t.Errorf("expected intent kept across locales, got %q", h.app.intent.Value())
	}

	h.settle(t)
	if !strings.Contains(h.app.prompt, "友好随和") {
		t.Errorf("expected zh preset name in prompt, got %q", h.app.prompt)
	}
}

func TestApp_CopySuccess(t *testing.T) {
	got := stubClipboard(t, nil)
	h := newHarness(t, map[string]string{
		session.KeyState: `{"history":"","intent":"say hi","styleId":"formal"}`,
	})

	cmd := h.key(tea.KeyCtrlY)
	if cmd == nil {
		t.Fatal("expected copy cmd")
	}
	tick := h.update(cmd())
	if *got != h.app.prompt {
		t.Error("expected clipboard to receive the prompt")
	}
	if !h.app.copied {
		t.Error("expected copied flag after success")
	}
	if tick == nil {
		t.Error("expected reset tick")
	}
	if !strings.Contains(h.app.View(), "Copied!") {
		t.Error("expected Copied! in view")
	}

	h.update(copiedResetMsg{seq: h.app.copySeq})
	if h.app.copied {
		t.Error("expected copied flag to reset")
	}
}

func TestApp_CopyResetIgnoresStaleTick(t *testing.T) {
	stubClipboard(t, nil)
	h := newHarness(t, map[string]string{
		session.KeyState: `{"history":"","intent":"say hi","styleId":"formal"}`,
	})

	h.update(copyResultMsg{})
	stale := h.app.copySeq
	h.update(copyResultMsg{})

	h.update(copiedResetMsg{seq: stale})
	if !h.app.copied {
		t.Error("stale reset must not clear a newer copy")
	}
}

func TestApp_CopyFailureLeavesFlag(t *testing.T) {
	stubClipboard(t, errors.New("no clipboard"))
	h := newHarness(t, map[string]string{
		session.KeyState: `{"history":"","intent":"say hi","styleId":"formal"}`,
	})

	cmd := h.key(tea.KeyCtrlY)
	if tick := h.update(cmd()); tick != nil {
		t.Error("expected no tick after failure")
	}
	if h.app.copied {
		t.Error("copied flag must stay false after failure")
	}
}

func TestApp_CopyDisabledWhenEmpty(t *testing.T) {
	h := newHarness(t, nil)
	if cmd := h.key(tea.KeyCtrlY); cmd != nil {
		t.Error("expected no copy cmd for empty prompt")
	}
}

func TestApp_QuitOnEsc(t *testing.T) {
	h := newHarness(t, nil)
	h.runes("x")

	cmd := h.key(tea.KeyEscape)
	if cmd == nil {
		t.Fatal("expected quit cmd")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if h.app.gate.Pending() {
		t.Error("expected pending derivation to be dropped on quit")
	}
}

func TestApp_FullFlowWithTeaProgram(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	ws := workspace.Open(session.NewStore(kv, nil), nil)
	m := NewApp(ws, nil, WithDebounce(10*time.Millisecond))

	p := tea.NewProgram(m, tea.WithInput(nil), tea.WithoutRenderer())
	m.SetProgram(p)

	go func() {
		p.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Quarterly numbers attached")})
		time.Sleep(100 * time.Millisecond)
		p.Send(tea.KeyMsg{Type: tea.KeyEscape})
	}()

	result, err := p.Run()
	if err != nil {
		t.Fatalf("tea.Program error: %v", err)
	}
	final := result.(App)
	if !strings.Contains(final.prompt, "Quarterly numbers attached") {
		t.Errorf("expected settled prompt in final model, got %q", final.prompt)
	}

	reopened := workspace.Open(session.NewStore(kv, nil), nil)
	if reopened.Session().History != "Quarterly numbers attached" {
		t.Errorf("expected history persisted, got %q", reopened.Session().History)
	}
}

func TestApp_FormReceivesCursorBlink(t *testing.T) {
	h := newHarness(t, nil)
	h.key(tea.KeyTab)
	h.runes("n")
	if !h.app.formOpen {
		t.Fatal("expected form to open on n")
	}

	blink := h.app.form.inputs[0].Focus()
	if blink == nil {
		t.Fatal("expected blink cmd from focused name input")
	}
	before := h.app.form.inputs[0].Cursor.Blink

	cmd := h.update(blink())
	if cmd == nil {
		t.Error("expected the form input to schedule the next blink")
	}
	if h.app.form.inputs[0].Cursor.Blink == before {
		t.Error("expected the form cursor to toggle on a blink message")
	}
}
