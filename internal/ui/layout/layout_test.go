package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{MinWidth, MinHeight, false},
		{MinWidth - 1, MinHeight, true},
		{MinWidth, MinHeight - 1, true},
		{120, 40, false},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestRenderFrame(t *testing.T) {
	header := RenderHeader("Problem", 2, 3, 80)
	if !strings.Contains(header, "2/3") {
		t.Errorf("header missing score: %q", header)
	}

	footer := RenderFooter([]KeyHint{{Key: "g", Description: "New problem"}}, 80)
	frame := RenderFrame(header, "body", footer, 80, 24)
	if got := lipgloss.Height(frame); got != 24 {
		t.Errorf("frame height = %d, want 24", got)
	}
}
