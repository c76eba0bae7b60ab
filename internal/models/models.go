// ABOUTME: Core data models for locales, tone presets, and the editing session.
// ABOUTME: Provides locale parsing, preset kind tagging, and session defaults.
package models

import "strings"

// Locale selects the built-in preset set, UI labels, and prompt template.
type Locale string

const (
	LocaleEnglish Locale = "en"
	LocaleChinese Locale = "zh"
)

// DefaultLocale is used when no valid locale has been persisted.
const DefaultLocale = LocaleEnglish

// Locales lists the supported locales in display order.
func Locales() []Locale {
	return []Locale{LocaleEnglish, LocaleChinese}
}

// Valid returns true if l is one of the supported locales.
func (l Locale) Valid() bool {
	for _, known := range Locales() {
		if l == known {
			return true
		}
	}
	return false
}

// Toggle returns the other supported locale.
func (l Locale) Toggle() Locale {
	if l == LocaleEnglish {
		return LocaleChinese
	}
	return LocaleEnglish
}

// ParseLocale converts a user-supplied string into a Locale.
// The second return value is false if the string is not a supported locale.
func ParseLocale(s string) (Locale, bool) {
	l := Locale(strings.ToLower(strings.TrimSpace(s)))
	if !l.Valid() {
		return DefaultLocale, false
	}
	return l, true
}

// PresetKind distinguishes shipped presets from ones the user created.
type PresetKind int

const (
	KindBuiltin PresetKind = iota
	KindUserDefined
)

// String returns a short human-readable label for the kind.
func (k PresetKind) String() string {
	if k == KindUserDefined {
		return "custom"
	}
	return "builtin"
}

// Preset is a named tone/style instruction bundle.
type Preset struct {
	ID                string
	Name              string
	PromptInstruction string
	Kind              PresetKind
}

// IsUserDefined returns true if the user created this preset and may delete it.
func (p Preset) IsUserDefined() bool {
	return p.Kind == KindUserDefined
}

// Session is the persisted editing state of the form.
type Session struct {
	History          string
	Intent           string
	SelectedPresetID string
}

// FindPreset returns the preset with the given id and whether it was found.
func FindPreset(presets []Preset, id string) (Preset, bool) {
	for _, p := range presets {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}
