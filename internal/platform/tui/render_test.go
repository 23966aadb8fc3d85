package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/vovakirdan/rewind-arcade/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	s := core.NewScreen(6, 4)
	s.Fill(' ')
	s.DrawText(0, 0, "HUD")
	s.DrawTextColored(1, 1, "ab", core.ColorRed)
	s.DrawTextColored(3, 1, "cd", core.ColorCyan)
	s.DrawText(0, 2, "xyz")

	for _, scan := range []bool{false, true} {
		out := RenderScreen(s, RenderOptions{Scanlines: scan, HUDRows: 1})
		rows := strings.Split(out, "\n")
		if len(rows) != 4 {
			t.Fatalf("scanlines=%v: %d rows, want 4", scan, len(rows))
		}
		want := []string{"HUD   ", " abcd ", "xyz   ", "      "}
		for i, row := range rows {
			if row != want[i] {
				t.Errorf("scanlines=%v row %d = %q, want %q", scan, i, row, want[i])
			}
		}
	}
}
