// ABOUTME: Workspace owns the live form state and writes every change through to storage.
// ABOUTME: Coordinates locale activation, preset CRUD with reselection, and prompt derivation.
package workspace

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/2389-research/mailprompt/internal/models"
	"github.com/2389-research/mailprompt/internal/presets"
	"github.com/2389-research/mailprompt/internal/prompt"
	"github.com/2389-research/mailprompt/internal/session"
)

// ErrUnknownPreset is returned by Select for ids outside the active preset list.
var ErrUnknownPreset = errors.New("unknown preset")

// Phase is the lifecycle of a locale activation.
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseLoading
	PhaseReady
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	default:
		return "uninitialized"
	}
}

// Workspace is the single owner of locale, preset list, and session state.
type Workspace struct {
	mu       sync.Mutex
	sessions *session.Store
	presets  *presets.Store
	logger   *zap.Logger

	phase  Phase
	locale models.Locale
	list   []models.Preset
	state  models.Session
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithPresetOptions passes options to the underlying preset store.
func WithPresetOptions(opts ...presets.Option) Option {
	return func(w *Workspace) {
		w.presets = presets.NewStore(w.presets.User(), opts...)
	}
}

// Open loads the persisted locale and user presets, then activates the locale.
// Opening reads only; the reconciled session is written on the first change.
func Open(sessions *session.Store, logger *zap.Logger, opts ...Option) *Workspace {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &Workspace{
		sessions: sessions,
		presets:  presets.NewStore(sessions.LoadUserPresets()),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(w)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.activateLocked(sessions.LoadLocale(), false)
	return w
}

// Activate switches to locale, rebuilding the preset list and reloading the
// session reconciled against it.
func (w *Workspace) Activate(locale models.Locale) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.activateLocked(locale, true)
}

// SetLocale activates locale. Invalid locales activate the default.
func (w *Workspace) SetLocale(locale models.Locale) {
	w.Activate(locale)
}

// ToggleLocale switches between the two supported locales.
func (w *Workspace) ToggleLocale() models.Locale {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.activateLocked(w.locale.Toggle(), true)
	return w.locale
}

// State returns the lifecycle phase of the current locale activation.
func (w *Workspace) State() Phase {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.phase
}

// Locale returns the active locale.
func (w *Workspace) Locale() models.Locale {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.locale
}

// Presets returns a copy of the active preset list.
func (w *Workspace) Presets() []models.Preset {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]models.Preset, len(w.list))
	copy(out, w.list)
	return out
}

// Session returns the current session state.
func (w *Workspace) Session() models.Session {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// SelectedPreset returns the currently selected preset.
func (w *Workspace) SelectedPreset() models.Preset {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, _ := models.FindPreset(w.list, w.state.SelectedPresetID)
	return p
}

// SetHistory replaces the email history text.
func (w *Workspace) SetHistory(history string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state.History == history {
		return
	}
	w.state.History = history
	w.saveLocked()
}

// SetIntent replaces the intent text.
func (w *Workspace) SetIntent(intent string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state.Intent == intent {
		return
	}
	w.state.Intent = intent
	w.saveLocked()
}

// Select makes id the selected preset.
func (w *Workspace) Select(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := models.FindPreset(w.list, id); !ok {
		return ErrUnknownPreset
	}
	w.state.SelectedPresetID = id
	w.saveLocked()
	return nil
}

// AddPreset creates a user preset and selects it.
func (w *Workspace) AddPreset(name, instruction string) (models.Preset, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	p, err := w.presets.Add(name, instruction)
	if err != nil {
		return models.Preset{}, err
	}
	w.list = w.presets.ListForLocale(w.locale)
	w.state.SelectedPresetID = p.ID
	w.logger.Info("preset added", zap.String("id", p.ID), zap.String("name", p.Name))
	w.saveLocked()
	return p, nil
}

// RemovePreset deletes a user preset. If it was selected, the first preset of
// the post-removal list becomes selected. Built-in and unknown ids are no-ops.
func (w *Workspace) RemovePreset(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.presets.Remove(id) {
		return false
	}
	w.list = w.presets.ListForLocale(w.locale)
	w.state.SelectedPresetID = session.Reconcile(w.state.SelectedPresetID, w.list)
	w.logger.Info("preset removed", zap.String("id", id))
	w.saveLocked()
	return true
}

// Input returns the derivation input for the current state.
func (w *Workspace) Input() prompt.Input {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.inputLocked()
}

// Derive builds the prompt from the current state.
func (w *Workspace) Derive() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return prompt.Derive(w.inputLocked(), w.list)
}

// DeriveInput builds the prompt for a snapshot taken earlier, such as a
// debounced Input, against the current preset list.
func (w *Workspace) DeriveInput(in prompt.Input) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	list := w.list
	if in.Locale != w.locale {
		list = w.presets.ListForLocale(in.Locale)
	}
	return prompt.Derive(in, list)
}

// PresetsForLocale returns the preset list locale would show, without activating it.
func (w *Workspace) PresetsForLocale(locale models.Locale) []models.Preset {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.presets.ListForLocale(locale)
}

func (w *Workspace) activateLocked(locale models.Locale, persist bool) {
	if !locale.Valid() {
		locale = models.DefaultLocale
	}
	w.phase = PhaseLoading
	w.locale = locale
	w.list = w.presets.ListForLocale(locale)
	w.state = w.sessions.LoadForLocale(locale, w.list)
	w.phase = PhaseReady
	w.logger.Debug("locale activated",
		zap.String("locale", string(locale)),
		zap.Int("presets", len(w.list)),
		zap.String("selected", w.state.SelectedPresetID))
	if persist {
		w.saveLocked()
	}
}

func (w *Workspace) inputLocked() prompt.Input {
	return prompt.Input{
		History:  w.state.History,
		Intent:   w.state.Intent,
		PresetID: w.state.SelectedPresetID,
		Locale:   w.locale,
	}
}

// saveLocked writes the current state through. Save logs its own failures and
// the workspace keeps running on the in-memory state.
func (w *Workspace) saveLocked() {
	_ = w.sessions.Save(w.locale, w.list, w.state)
}
