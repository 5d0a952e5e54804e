package components

import (
	"strconv"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lifewheel/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with a label and the app's styling.
type TextInput struct {
	Label       string
	Model       textinput.Model
	NumericOnly bool
	Err         string
}

// NewTextInput creates a blurred input. charLimit of 0 means unlimited.
func NewTextInput(label, placeholder string, numericOnly bool, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	return TextInput{
		Label:       label,
		Model:       ti,
		NumericOnly: numericOnly,
	}
}

// Update handles messages. Numeric inputs drop non-digit keys.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.NumericOnly {
		if kmsg, ok := msg.(tea.KeyMsg); ok {
			key := kmsg.String()
			if len(key) == 1 && (key[0] < '0' || key[0] > '9') {
				return t, nil
			}
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// Focus gives the input keyboard focus.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes keyboard focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the input has focus.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// SetValue replaces the input's content.
func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
}

// View renders the label, the input and any validation error.
func (t TextInput) View() string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim).Width(10).Render(t.Label)
	if t.Focused() {
		label = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Width(10).Render(t.Label)
	}
	view := label + " " + t.Model.View()
	if t.Err != "" {
		view += "  " + theme.ErrorText.Render("✗ "+t.Err)
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// NumericValue returns the input value as an integer.
func (t TextInput) NumericValue() (int, error) {
	return strconv.Atoi(t.Model.Value())
}
