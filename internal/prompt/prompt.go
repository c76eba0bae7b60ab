// ABOUTME: Derivation of the final prompt text from form inputs and the chosen preset.
// ABOUTME: Renders one embedded template per locale; pure and deterministic.
package prompt

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/2389-research/mailprompt/internal/models"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = mustParseTemplates()

// Input is everything the derivation depends on besides the preset list.
type Input struct {
	History  string
	Intent   string
	PresetID string
	Locale   models.Locale
}

// templateData is the value handed to a locale template.
type templateData struct {
	History          string
	Intent           string
	StyleName        string
	StyleInstruction string
}

func mustParseTemplates() map[models.Locale]*template.Template {
	out := make(map[models.Locale]*template.Template)
	for _, locale := range models.Locales() {
		name := string(locale) + ".tmpl"
		tmpl, err := template.New(name).
			Funcs(sprig.TxtFuncMap()).
			Option("missingkey=error").
			ParseFS(templateFS, "templates/"+name)
		if err != nil {
			panic(fmt.Sprintf("prompt: failed to parse %s: %v", name, err))
		}
		out[locale] = tmpl
	}
	return out
}

// Derive builds the prompt for in. It returns "" when both history and intent
// are blank. An unknown preset id falls back to the first preset.
func Derive(in Input, presets []models.Preset) string {
	if strings.TrimSpace(in.History) == "" && strings.TrimSpace(in.Intent) == "" {
		return ""
	}
	if len(presets) == 0 {
		return ""
	}

	preset, ok := models.FindPreset(presets, in.PresetID)
	if !ok {
		preset = presets[0]
	}

	tmpl, ok := templates[in.Locale]
	if !ok {
		tmpl = templates[models.DefaultLocale]
	}

	var b strings.Builder
	err := tmpl.Execute(&b, templateData{
		History:          in.History,
		Intent:           in.Intent,
		StyleName:        preset.Name,
		StyleInstruction: preset.PromptInstruction,
	})
	if err != nil {
		// Templates only interpolate strings; execution cannot fail on valid data.
		panic(fmt.Sprintf("prompt: failed to render %s template: %v", in.Locale, err))
	}
	return strings.TrimSpace(b.String())
}
