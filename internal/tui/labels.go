// ABOUTME: Localized UI labels for the interactive form.
// ABOUTME: One table per supported locale, looked up by the active locale.
package tui

import "github.com/2389-research/mailprompt/internal/models"

// Labels holds every user-facing string the TUI renders.
type Labels struct {
	AppTitle              string
	HistoryLabel          string
	HistoryPlaceholder    string
	IntentLabel           string
	IntentPlaceholder     string
	StyleLabel            string
	NewStyle              string
	Cancel                string
	AddStyle              string
	StyleNamePlaceholder  string
	StyleInstrPlaceholder string
	GeneratedLabel        string
	Copy                  string
	Copied                string
	ReadyTitle            string
	ReadyDesc             string
	AutoSave              string
	DeleteStyle           string
	Tokens                string
	Confirm               string
	Custom                string
}

var labelTables = map[models.Locale]Labels{
	models.LocaleEnglish: {
		AppTitle:              "MailPrompt Architect",
		HistoryLabel:          "Email History / Context",
		HistoryPlaceholder:    "Paste the email thread here...",
		IntentLabel:           "Your Intent (Draft Notes)",
		IntentPlaceholder:     "e.g., Tell them I accept the offer but need to start 2 weeks later...",
		StyleLabel:            "Tone & Style",
		NewStyle:              "New Style",
		Cancel:                "Cancel",
		AddStyle:              "Add Style",
		StyleNamePlaceholder:  "Style Name (e.g., Angry Customer)",
		StyleInstrPlaceholder: "Instructions (e.g., Be firm but polite...)",
		GeneratedLabel:        "Generated Prompt",
		Copy:                  "Copy Prompt",
		Copied:                "Copied!",
		ReadyTitle:            "Ready to generate",
		ReadyDesc:             "Fill in the details on the left to see the magic.",
		AutoSave:              "Inputs auto-save to local storage",
		DeleteStyle:           "Delete custom style",
		Tokens:                "tokens",
		Confirm:               "(y/n)",
		Custom:                "custom",
	},
	models.LocaleChinese: {
		AppTitle:              "邮件提示词工匠",
		HistoryLabel:          "邮件历史 / 上下文",
		HistoryPlaceholder:    "在此粘贴已有的邮件对话内容...",
		IntentLabel:           "您的意图 (草稿大意)",
		IntentPlaceholder:     "例如：告诉他们我接受offer，但需要晚两周入职...",
		StyleLabel:            "语气与风格",
		NewStyle:              "新建风格",
		Cancel:                "取消",
		AddStyle:              "添加风格",
		StyleNamePlaceholder:  "风格名称 (例如：愤怒的客户)",
		StyleInstrPlaceholder: "指令 (例如：语气强硬但保持礼貌...)",
		GeneratedLabel:        "生成的提示词",
		Copy:                  "复制提示词",
		Copied:                "已复制!",
		ReadyTitle:            "准备生成",
		ReadyDesc:             "在左侧填写详细信息以生成提示词。",
		AutoSave:              "输入内容会自动保存",
		DeleteStyle:           "删除自定义风格",
		Tokens:                "tokens",
		Confirm:               "(y/n)",
		Custom:                "自定义",
	},
}

// LabelsFor returns the label table for locale, falling back to the default locale.
func LabelsFor(locale models.Locale) Labels {
	if l, ok := labelTables[locale]; ok {
		return l
	}
	return labelTables[models.DefaultLocale]
}
