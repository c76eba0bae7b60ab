// ABOUTME: Two-step bubbletea wizard for creating a user-defined tone preset.
// ABOUTME: Collects a name and an instruction, then reports the result as a message.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Step represents the current wizard step.
type Step int

const (
	StepName Step = iota
	StepInstruction
	StepDone
)

// presetFormSubmittedMsg carries a completed form back to the parent model.
type presetFormSubmittedMsg struct {
	name        string
	instruction string
}

// presetFormCancelledMsg reports that the user abandoned the form.
type presetFormCancelledMsg struct{}

// PresetFormModel is the bubbletea model for the new-preset wizard.
type PresetFormModel struct {
	step      Step
	inputs    [2]textinput.Model
	labels    Labels
	cancelled bool
}

// NewPresetFormModel creates an empty wizard using the given labels.
func NewPresetFormModel(labels Labels) PresetFormModel {
	nameInput := textinput.New()
	nameInput.Placeholder = labels.StyleNamePlaceholder
	nameInput.Focus()
	nameInput.Width = 50

	instrInput := textinput.New()
	instrInput.Placeholder = labels.StyleInstrPlaceholder
	instrInput.Width = 50

	return PresetFormModel{
		step:   StepName,
		inputs: [2]textinput.Model{nameInput, instrInput},
		labels: labels,
	}
}

// Init implements tea.Model.
func (m PresetFormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m PresetFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.step == StepDone {
		return m, nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		// Cursor blinks and other input messages go to the active field.
		var cmd tea.Cmd
		m.inputs[m.step], cmd = m.inputs[m.step].Update(msg)
		return m, cmd
	}

	switch keyMsg.Type {
	case tea.KeyEscape, tea.KeyCtrlC:
		m.cancelled = true
		m.step = StepDone
		return m, func() tea.Msg { return presetFormCancelledMsg{} }
	case tea.KeyShiftTab:
		if m.step == StepInstruction {
			m.inputs[1].Blur()
			m.step = StepName
			m.inputs[0].Focus()
			return m, textinput.Blink
		}
		return m, nil
	case tea.KeyEnter:
		return m.advance()
	}

	idx := int(m.step)
	var cmd tea.Cmd
	m.inputs[idx], cmd = m.inputs[idx].Update(keyMsg)
	return m, cmd
}

func (m PresetFormModel) advance() (tea.Model, tea.Cmd) {
	idx := int(m.step)

	// Don't advance on a blank step
	if strings.TrimSpace(m.inputs[idx].Value()) == "" {
		return m, nil
	}
	m.inputs[idx].Blur()

	switch m.step {
	case StepName:
		m.step = StepInstruction
		m.inputs[1].Focus()
		return m, textinput.Blink
	case StepInstruction:
		m.step = StepDone
		name, instruction := m.Result()
		return m, func() tea.Msg {
			return presetFormSubmittedMsg{name: name, instruction: instruction}
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m PresetFormModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.labels.NewStyle))
	b.WriteString("\n")

	switch m.step {
	case StepName:
		b.WriteString(stepStyle.Render("1/2"))
		b.WriteString("\n")
		b.WriteString(m.inputs[0].View())
		b.WriteString("\n")
	case StepInstruction:
		b.WriteString(fmt.Sprintf("  %s\n", m.inputs[0].Value()))
		b.WriteString(stepStyle.Render("2/2"))
		b.WriteString("\n")
		b.WriteString(m.inputs[1].View())
		b.WriteString("\n")
	case StepDone:
		if !m.cancelled {
			b.WriteString(successStyle.Render("✓ " + m.inputs[0].Value()))
			b.WriteString("\n")
		}
	}

	b.WriteString(promptStyle.Render(fmt.Sprintf("[enter] %s  [esc] %s", m.labels.AddStyle, m.labels.Cancel)))
	b.WriteString("\n")
	return b.String()
}

// Result returns the trimmed name and instruction.
func (m PresetFormModel) Result() (name, instruction string) {
	return strings.TrimSpace(m.inputs[0].Value()), strings.TrimSpace(m.inputs[1].Value())
}

// Submitted returns true if the wizard completed without being cancelled.
func (m PresetFormModel) Submitted() bool {
	return m.step == StepDone && !m.cancelled
}
