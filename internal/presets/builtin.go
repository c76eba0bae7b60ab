// ABOUTME: Built-in tone presets shipped for each supported locale.
// ABOUTME: Ids are shared across locales so a selection survives a locale switch.
package presets

import "github.com/2389-research/mailprompt/internal/models"

var builtins = map[models.Locale][]models.Preset{
	models.LocaleEnglish: {
		{
			ID:                "formal",
			Name:              "Professional & Formal",
			PromptInstruction: "Use a strictly professional, polite, and formal tone. Avoid slang. Use proper salutations and sign-offs.",
		},
		{
			ID:                "friendly",
			Name:              "Friendly & Casual",
			PromptInstruction: "Use a warm, friendly, and conversational tone. You can be slightly casual but remain professional.",
		},
		{
			ID:                "concise",
			Name:              "Direct & Concise",
			PromptInstruction: "Be extremely direct and brief. Get straight to the point. Minimize fluff and pleasantries.",
		},
		{
			ID:                "persuasive",
			Name:              "Persuasive & Sales",
			PromptInstruction: "Use persuasive language. Focus on benefits and call to action. The tone should be enthusiastic and convincing.",
		},
		{
			ID:                "apologetic",
			Name:              "Apologetic & Empathetic",
			PromptInstruction: "Express sincere apology and empathy. Validate the recipient's feelings and offer a clear solution.",
		},
	},
	models.LocaleChinese: {
		{
			ID:                "formal",
			Name:              "专业正式 (Professional)",
			PromptInstruction: "使用严格的专业、礼貌和正式的语气。避免使用俚语。使用得体的称呼和落款。",
		},
		{
			ID:                "friendly",
			Name:              "友好随和 (Friendly)",
			PromptInstruction: "使用温暖、友好和对话式的语气。可以稍微随意一些，但保持专业性。",
		},
		{
			ID:                "concise",
			Name:              "直接简练 (Direct)",
			PromptInstruction: "非常直接和简短。直奔主题。尽量减少客套话和废话。",
		},
		{
			ID:                "persuasive",
			Name:              "推销说服 (Persuasive)",
			PromptInstruction: "使用具有说服力的语言。强调利益点和行动号召。语气应充满热情和感染力。",
		},
		{
			ID:                "apologetic",
			Name:              "诚挚道歉 (Apologetic)",
			PromptInstruction: "表达真诚的歉意和同理心。认同对方的感受并提供明确的解决方案。",
		},
	},
}

// Builtins returns a copy of the built-in presets for locale, in fixed order.
// Unsupported locales get the default locale's presets.
func Builtins(locale models.Locale) []models.Preset {
	list, ok := builtins[locale]
	if !ok {
		list = builtins[models.DefaultLocale]
	}
	out := make([]models.Preset, len(list))
	copy(out, list)
	for i := range out {
		out[i].Kind = models.KindBuiltin
	}
	return out
}

// IsBuiltinID returns true if id names a built-in preset in any locale.
func IsBuiltinID(id string) bool {
	for _, list := range builtins {
		if _, ok := models.FindPreset(list, id); ok {
			return true
		}
	}
	return false
}
