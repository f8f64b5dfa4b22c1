package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
)

func typeString(t TextInput, s string) TextInput {
	for _, r := range s {
		t, _ = t.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	return t
}

func TestTextInput_NumericOnly(t *testing.T) {
	ti := NewTextInput("answer", true, 20)
	ti = typeString(ti, "-1a2.5x")

	if got := ti.Value(); got != "-12.5" {
		t.Fatalf("Value = %q, want %q", got, "-12.5")
	}
	v, err := ti.FloatValue()
	if err != nil || v != -12.5 {
		t.Fatalf("FloatValue = %v, %v", v, err)
	}

	ti.Reset()
	if ti.Value() != "" {
		t.Fatalf("expected empty value after reset, got %q", ti.Value())
	}
}

func TestTextInput_FloatValueInvalid(t *testing.T) {
	ti := NewTextInput("answer", true, 20)
	ti = typeString(ti, "1.2.3")
	if _, err := ti.FloatValue(); err == nil {
		t.Fatal("expected parse error for 1.2.3")
	}
}

func TestButton_View(t *testing.T) {
	on := NewButton("g", "Generate", true).View()
	off := NewButton("g", "Generate", false).View()
	if on == "" || off == "" || on == off {
		t.Fatalf("expected distinct enabled/disabled renderings")
	}
}
