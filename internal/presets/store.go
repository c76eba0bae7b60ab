// ABOUTME: In-memory preset store merging built-ins with user-defined presets.
// ABOUTME: User presets are locale-independent and appended to every locale's list.
package presets

import (
	"errors"
	"strconv"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/2389-research/mailprompt/internal/models"
)

// ErrBlankField is returned by Add when the name or instruction is blank.
var ErrBlankField = errors.New("preset name and instruction are required")

// Store holds user-defined presets in creation order.
type Store struct {
	user  []models.Preset
	clock clockwork.Clock
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used to generate preset ids.
func WithClock(c clockwork.Clock) Option {
	return func(s *Store) {
		s.clock = c
	}
}

// NewStore creates a store seeded with previously persisted user presets.
func NewStore(user []models.Preset, opts ...Option) *Store {
	s := &Store{clock: clockwork.NewRealClock()}
	for _, opt := range opts {
		opt(s)
	}
	for _, p := range user {
		p.Kind = models.KindUserDefined
		s.user = append(s.user, p)
	}
	return s
}

// ListForLocale returns the built-ins for locale followed by every user preset.
func (s *Store) ListForLocale(locale models.Locale) []models.Preset {
	list := Builtins(locale)
	return append(list, s.user...)
}

// User returns a copy of the user-defined presets.
func (s *Store) User() []models.Preset {
	out := make([]models.Preset, len(s.user))
	copy(out, s.user)
	return out
}

// Add creates a user-defined preset with a millisecond timestamp id.
// Blank (after trimming) name or instruction is refused with ErrBlankField.
func (s *Store) Add(name, instruction string) (models.Preset, error) {
	name = strings.TrimSpace(name)
	instruction = strings.TrimSpace(instruction)
	if name == "" || instruction == "" {
		return models.Preset{}, ErrBlankField
	}

	p := models.Preset{
		ID:                s.nextID(),
		Name:              name,
		PromptInstruction: instruction,
		Kind:              models.KindUserDefined,
	}
	s.user = append(s.user, p)
	return p, nil
}

// Remove deletes the user preset with id. It reports whether anything was removed;
// built-in and unknown ids are left alone.
func (s *Store) Remove(id string) bool {
	for i, p := range s.user {
		if p.ID == id {
			s.user = append(s.user[:i:i], s.user[i+1:]...)
			return true
		}
	}
	return false
}

// nextID returns the current time in milliseconds, bumped past any id already in use.
func (s *Store) nextID() string {
	ms := s.clock.Now().UnixMilli()
	for {
		id := strconv.FormatInt(ms, 10)
		if _, taken := models.FindPreset(s.user, id); !taken {
			return id
		}
		ms++
	}
}
