// ABOUTME: Tests for locale parsing and preset helpers.
// ABOUTME: Covers toggling, validation, and preset lookup.
package models

import "testing"

func TestParseLocale(t *testing.T) {
	tests := []struct {
		input  string
		want   Locale
		wantOK bool
	}{
		{"en", LocaleEnglish, true},
		{"zh", LocaleChinese, true},
		{" ZH ", LocaleChinese, true},
		{"", DefaultLocale, false},
		{"fr", DefaultLocale, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseLocale(tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseLocale(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestLocaleToggle(t *testing.T) {
	if LocaleEnglish.Toggle() != LocaleChinese {
		t.Errorf("expected en to toggle to zh")
	}
	if LocaleChinese.Toggle() != LocaleEnglish {
		t.Errorf("expected zh to toggle to en")
	}
}

func TestFindPreset(t *testing.T) {
	presets := []Preset{
		{ID: "formal", Name: "Formal"},
		{ID: "42", Name: "Mine", Kind: KindUserDefined},
	}

	p, ok := FindPreset(presets, "42")
	if !ok {
		t.Fatal("expected to find preset 42")
	}
	if !p.IsUserDefined() {
		t.Error("expected preset 42 to be user-defined")
	}

	if _, ok := FindPreset(presets, "ghost"); ok {
		t.Error("expected ghost to be missing")
	}
}
