// ABOUTME: Session persistence and reconciliation against the active preset list.
// ABOUTME: Reads and writes locale, user presets, and form state as JSON records in a kv store.
package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/2389-research/mailprompt/internal/kvstore"
	"github.com/2389-research/mailprompt/internal/models"
	"github.com/2389-research/mailprompt/internal/presets"
)

// Storage keys. They match the records written by earlier releases.
const (
	KeyLocale      = "mailprompt_language"
	KeyState       = "mailprompt_state"
	KeyUserPresets = "mailprompt_styles_custom"
)

// stateRecord is the serialized form of a models.Session.
type stateRecord struct {
	History string `json:"history"`
	Intent  string `json:"intent"`
	StyleID string `json:"styleId"`
}

// presetRecord is the serialized form of a user-defined preset.
type presetRecord struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	PromptInstruction string `json:"promptInstruction"`
}

// Store persists session state. Read failures never escape; they are logged
// and replaced by defaults.
type Store struct {
	kv     kvstore.Store
	logger *zap.Logger
}

// NewStore creates a session store over kv. A nil logger discards log output.
func NewStore(kv kvstore.Store, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{kv: kv, logger: logger}
}

// LoadLocale returns the persisted locale, or the default if absent or invalid.
func (s *Store) LoadLocale() models.Locale {
	raw, ok := s.read(KeyLocale)
	if !ok {
		return models.DefaultLocale
	}
	locale := models.Locale(raw)
	if !locale.Valid() {
		s.logger.Warn("ignoring invalid persisted locale", zap.String("locale", raw))
		return models.DefaultLocale
	}
	return locale
}

// LoadUserPresets returns the persisted user-defined presets in creation order.
// Entries with a blank id or an id that shadows a built-in are dropped.
func (s *Store) LoadUserPresets() []models.Preset {
	raw, ok := s.read(KeyUserPresets)
	if !ok {
		return nil
	}

	var records []presetRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		s.logger.Warn("failed to parse custom presets", zap.Error(err))
		return nil
	}

	out := make([]models.Preset, 0, len(records))
	for _, r := range records {
		if r.ID == "" || presets.IsBuiltinID(r.ID) {
			s.logger.Warn("dropping persisted preset with unusable id", zap.String("id", r.ID))
			continue
		}
		out = append(out, models.Preset{
			ID:                r.ID,
			Name:              r.Name,
			PromptInstruction: r.PromptInstruction,
			Kind:              models.KindUserDefined,
		})
	}
	return out
}

// LoadForLocale returns the persisted session reconciled against presetList.
// A missing or unknown selected preset id falls back to the first preset.
func (s *Store) LoadForLocale(locale models.Locale, presetList []models.Preset) models.Session {
	var sess models.Session

	if raw, ok := s.read(KeyState); ok {
		var rec stateRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			s.logger.Warn("failed to parse last state", zap.String("locale", string(locale)), zap.Error(err))
		} else {
			sess = models.Session{
				History:          rec.History,
				Intent:           rec.Intent,
				SelectedPresetID: rec.StyleID,
			}
		}
	}

	sess.SelectedPresetID = Reconcile(sess.SelectedPresetID, presetList)
	return sess
}

// Save writes locale, the user-defined subset of presetList, and sess.
// When presetList has no user-defined presets the stored record is removed
// so deleted presets cannot reappear.
func (s *Store) Save(locale models.Locale, presetList []models.Preset, sess models.Session) error {
	var errs []error

	if err := s.kv.Set(KeyLocale, string(locale)); err != nil {
		errs = append(errs, fmt.Errorf("failed to save locale: %w", err))
	}

	var custom []presetRecord
	for _, p := range presetList {
		if p.IsUserDefined() {
			custom = append(custom, presetRecord{ID: p.ID, Name: p.Name, PromptInstruction: p.PromptInstruction})
		}
	}
	if len(custom) > 0 {
		if err := s.writeJSON(KeyUserPresets, custom); err != nil {
			errs = append(errs, err)
		}
	} else if err := s.kv.Delete(KeyUserPresets); err != nil {
		errs = append(errs, fmt.Errorf("failed to clear custom presets: %w", err))
	}

	rec := stateRecord{History: sess.History, Intent: sess.Intent, StyleID: sess.SelectedPresetID}
	if err := s.writeJSON(KeyState, rec); err != nil {
		errs = append(errs, err)
	}

	err := errors.Join(errs...)
	if err != nil {
		s.logger.Warn("failed to persist session", zap.Error(err))
	}
	return err
}

// Reconcile returns id if it names a preset in presetList, otherwise the first
// preset's id. An empty list yields an empty id.
func Reconcile(id string, presetList []models.Preset) string {
	if _, ok := models.FindPreset(presetList, id); ok {
		return id
	}
	if len(presetList) == 0 {
		return ""
	}
	return presetList[0].ID
}

func (s *Store) read(key string) (string, bool) {
	raw, err := s.kv.Get(key)
	if errors.Is(err, kvstore.ErrNotFound) {
		return "", false
	}
	if err != nil {
		s.logger.Warn("failed to read persisted record", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return raw, true
}

func (s *Store) writeJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.kv.Set(key, string(data)); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}
