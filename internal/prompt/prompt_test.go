// ABOUTME: Tests for prompt derivation and token estimation.
// ABOUTME: Covers empty input, preset fallback, locale templates, and determinism.
package prompt

import (
	"strings"
	"testing"

	"github.com/2389-research/mailprompt/internal/models"
	"github.com/2389-research/mailprompt/internal/presets"
)

func TestDeriveScenario(t *testing.T) {
	list := presets.Builtins(models.LocaleEnglish)
	got := Derive(Input{
		History:  "  Client asked for a discount.\n",
		Intent:   "Decline politely.",
		PresetID: "concise",
		Locale:   models.LocaleEnglish,
	}, list)

	for _, want := range []string{
		"Client asked for a discount.",
		"Decline politely.",
		"Direct & Concise",
		"Be extremely direct and brief.",
		"# Context (Previous Email History)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected derived prompt to contain %q, got:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Here is the email draft") {
		t.Errorf("expected no draft preamble, got:\n%s", got)
	}
	if !strings.HasPrefix(got, "# Role") {
		t.Errorf("expected prompt to start with the role heading, got:\n%s", got)
	}
	if got != strings.TrimSpace(got) {
		t.Error("expected derived prompt to be trimmed")
	}
}

func TestDeriveEmptyInput(t *testing.T) {
	list := presets.Builtins(models.LocaleEnglish)
	for _, locale := range models.Locales() {
		for _, id := range []string{"formal", "ghost", ""} {
			in := Input{History: " \n", Intent: "\t", PresetID: id, Locale: locale}
			if got := Derive(in, list); got != "" {
				t.Errorf("%s/%q: expected empty prompt, got %q", locale, id, got)
			}
			if got := Derive(Input{PresetID: id, Locale: locale}, list); got != "" {
				t.Errorf("%s/%q: expected empty prompt for zero input, got %q", locale, id, got)
			}
		}
	}
}

func TestDeriveFallsBackToFirstPreset(t *testing.T) {
	list := presets.Builtins(models.LocaleEnglish)
	in := Input{Intent: "Say thanks.", Locale: models.LocaleEnglish}

	in.PresetID = "ghost"
	ghost := Derive(in, list)
	in.PresetID = list[0].ID
	first := Derive(in, list)

	if ghost != first {
		t.Errorf("expected unknown id to derive like %q:\nghost:\n%s\nfirst:\n%s", list[0].ID, ghost, first)
	}
}

func TestDeriveIsDeterministic(t *testing.T) {
	list := presets.Builtins(models.LocaleChinese)
	in := Input{History: "历史", Intent: "意图", PresetID: "friendly", Locale: models.LocaleChinese}

	if Derive(in, list) != Derive(in, list) {
		t.Error("expected identical output for identical input")
	}
}

func TestDeriveOmitsContextWithoutHistory(t *testing.T) {
	list := presets.Builtins(models.LocaleEnglish)
	got := Derive(Input{Intent: "Accept the offer.", PresetID: "formal", Locale: models.LocaleEnglish}, list)

	if strings.Contains(got, "# Context") {
		t.Errorf("expected no context section, got:\n%s", got)
	}
	if !strings.Contains(got, "guidelines.\n\n# User Intent") {
		t.Errorf("expected task to be followed directly by intent, got:\n%s", got)
	}
}

func TestDeriveIntentPlaceholder(t *testing.T) {
	tests := []struct {
		locale models.Locale
		want   string
	}{
		{models.LocaleEnglish, "(No specific intent provided, please draft a generic reply based on history)"},
		{models.LocaleChinese, "(未提供具体意图，请根据历史记录起草通用的回复)"},
	}

	for _, tt := range tests {
		t.Run(string(tt.locale), func(t *testing.T) {
			list := presets.Builtins(tt.locale)
			got := Derive(Input{History: "Thread", Intent: "   ", PresetID: "formal", Locale: tt.locale}, list)
			if !strings.Contains(got, tt.want) {
				t.Errorf("expected placeholder %q, got:\n%s", tt.want, got)
			}
		})
	}
}

func TestDeriveUsesLocaleTemplate(t *testing.T) {
	en := Derive(Input{Intent: "x", PresetID: "formal", Locale: models.LocaleEnglish}, presets.Builtins(models.LocaleEnglish))
	zh := Derive(Input{Intent: "x", PresetID: "formal", Locale: models.LocaleChinese}, presets.Builtins(models.LocaleChinese))

	if !strings.HasPrefix(en, "# Role") {
		t.Errorf("expected English template, got:\n%s", en)
	}
	if !strings.HasPrefix(zh, "# 角色") {
		t.Errorf("expected Chinese template, got:\n%s", zh)
	}
	if !strings.Contains(zh, "专业正式 (Professional)") {
		t.Errorf("expected localized preset name, got:\n%s", zh)
	}
}

func TestDeriveDoesNotInterpretUserText(t *testing.T) {
	list := []models.Preset{{ID: "1", Name: "{{ .History }}", PromptInstruction: "<b>&</b>"}}
	got := Derive(Input{Intent: "{{ end }}", PresetID: "1", Locale: models.LocaleEnglish}, list)

	for _, want := range []string{"{{ .History }}", "<b>&</b>", "{{ end }}"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected literal %q in output, got:\n%s", want, got)
		}
	}
}

func TestDeriveEmptyPresetList(t *testing.T) {
	if got := Derive(Input{Intent: "x", Locale: models.LocaleEnglish}, nil); got != "" {
		t.Errorf("expected empty prompt without presets, got %q", got)
	}
}

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"single char", "a", 1},
		{"four chars", "abcd", 1},
		{"five chars", "abcde", 2},
		{"words", "hello world", 3},
		{"two spaces", "ab  cd", 2},
		{"whitespace only", "\n\n\n", 1},
		{"chinese", "邮件提示词", 2},
		{"emoji count two units each", "😀😀😀😀😀", 3},
		{"byte order mark is whitespace", "ab\ufeff\ufeffcd", 2},
		{"next line is not whitespace", "abcd\u0085", 2},
		{"ideographic space", "邮件\u3000\u3000提示", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateTokens(tt.text); got != tt.want {
				t.Errorf("EstimateTokens(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}
