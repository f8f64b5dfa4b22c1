package components

import (
	"github.com/abhisek/mathpractice/internal/ui/theme"
)

// Button is a labelled control that renders greyed out while disabled.
type Button struct {
	Key     string
	Label   string
	Enabled bool
}

// NewButton creates a new button bound to key.
func NewButton(key, label string, enabled bool) Button {
	return Button{Key: key, Label: label, Enabled: enabled}
}

// View renders the button.
func (b Button) View() string {
	label := "[" + b.Key + "] " + b.Label
	if b.Enabled {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}
