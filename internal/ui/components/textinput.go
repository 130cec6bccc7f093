package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdesk/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with a label and a required marker.
type TextInput struct {
	Model    textinput.Model
	Label    string
	Required bool
	invalid  bool
}

// NewTextInput creates a blurred, labelled single-line input.
func NewTextInput(label, placeholder string, required bool, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}

	return TextInput{
		Model:    ti,
		Label:    label,
		Required: required,
	}
}

// Update forwards messages to the underlying input.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	if t.invalid && t.Model.Value() != "" {
		t.invalid = false
	}
	return t, cmd
}

// View renders the label line followed by the input.
func (t TextInput) View() string {
	label := theme.Label.Render(t.Label)
	if t.Required {
		label += lipgloss.NewStyle().Foreground(theme.Accent).Render(" *")
	}
	if t.invalid {
		label += " " + theme.Failed.Render("필수 항목")
	}
	return label + "\n" + t.Model.View()
}

func (t *TextInput) Focus() tea.Cmd { return t.Model.Focus() }
func (t *TextInput) Blur()          { t.Model.Blur() }

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input contents.
func (t *TextInput) SetValue(v string) {
	t.Model.SetValue(v)
}

// MarkInvalid flags the input as a missing required field until it is edited.
func (t *TextInput) MarkInvalid() {
	t.invalid = true
}
