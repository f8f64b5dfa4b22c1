package components

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// TextInput wraps bubbles/textinput for answer entry.
type TextInput struct {
	Model       textinput.Model
	NumericOnly bool
}

// NewTextInput creates a new focused text input.
func NewTextInput(placeholder string, numericOnly bool, maxWidth int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()

	if maxWidth > 0 {
		ti.CharLimit = maxWidth
	}

	return TextInput{
		Model:       ti,
		NumericOnly: numericOnly,
	}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages. With NumericOnly set, printable keys other than
// digits, '.' and '-' are dropped.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.NumericOnly {
		if kmsg, ok := msg.(tea.KeyMsg); ok {
			key := kmsg.String()
			if len(key) == 1 && !isNumericRune(key[0]) {
				return t, nil
			}
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

func isNumericRune(c byte) bool {
	return (c >= '0' && c <= '9') || c == '.' || c == '-'
}

// View renders the text input.
func (t TextInput) View() string {
	return t.Model.View()
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// FloatValue parses the trimmed input as a number.
func (t TextInput) FloatValue() (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(t.Model.Value()), 64)
}

// Focus enables editing.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur disables editing.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Reset clears the input.
func (t *TextInput) Reset() {
	t.Model.Reset()
}
