// ABOUTME: Key bindings for the main form view.
// ABOUTME: Implements help.KeyMap so the footer can render a short help line.
package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next      key.Binding
	Prev      key.Binding
	Locale    key.Binding
	Copy      key.Binding
	Up        key.Binding
	Down      key.Binding
	NewPreset key.Binding
	Delete    key.Binding
	Confirm   key.Binding
	Deny      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		Prev:      key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev")),
		Locale:    key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "en/中文")),
		Copy:      key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		NewPreset: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new style")),
		Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Confirm:   key.NewBinding(key.WithKeys("y")),
		Deny:      key.NewBinding(key.WithKeys("n", "esc")),
		Quit:      key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Locale, k.Copy, k.NewPreset, k.Delete, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Locale, k.Copy},
		{k.Up, k.Down, k.NewPreset, k.Delete, k.Quit},
	}
}
