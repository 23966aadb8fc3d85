package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/rewind-arcade/internal/config"
	"github.com/vovakirdan/rewind-arcade/internal/core"
)

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		key    string
		action core.Action
		quit   bool
	}{
		{" ", core.ActionJump, false},
		{"w", core.ActionJump, false},
		{"f", core.ActionFlip, false},
		{"s", core.ActionFlip, false},
		{"p", core.ActionPause, false},
		{"r", core.ActionRestart, false},
		{"esc", core.ActionBack, false},
		{"q", core.ActionQuit, true},
		{"x", core.ActionNone, false},
	}

	for _, tt := range tests {
		action, quit := km.MapKey(keyMsg(tt.key))
		if action != tt.action || quit != tt.quit {
			t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.key, action, quit, tt.action, tt.quit)
		}
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		key  string
		want MenuAction
	}{
		{"k", MenuActionUp},
		{"j", MenuActionDown},
		{"h", MenuActionLeft},
		{"l", MenuActionRight},
		{" ", MenuActionSelect},
		{"esc", MenuActionBack},
		{"q", MenuActionQuit},
		{"z", MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(keyMsg(tt.key)); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestMenuTogglesSettings(t *testing.T) {
	m := NewMenuModel(nil, testConfig(), config.Settings{ScreenShake: true}, "hard")
	if m.Difficulty() != config.DifficultyHard {
		t.Fatalf("initial difficulty = %s", m.Difficulty())
	}

	// Move to difficulty and cycle right, wrapping past fixed.
	m = updateMenu(t, m, keyMsg("j"))
	m = updateMenu(t, m, keyMsg("l"))
	m = updateMenu(t, m, keyMsg("l"))
	if m.Difficulty() != config.DifficultyEasy {
		t.Errorf("difficulty after two steps = %s, want easy", m.Difficulty())
	}

	// Screen shake row toggles on select.
	m = updateMenu(t, m, keyMsg("j"))
	m = updateMenu(t, m, keyMsg(" "))
	if m.Settings().ScreenShake {
		t.Error("screen shake should be toggled off")
	}

	// Back to the top and start.
	m = updateMenu(t, m, keyMsg("k"))
	m = updateMenu(t, m, keyMsg("k"))
	m = updateMenu(t, m, keyMsg(" "))
	if !m.Started() {
		t.Error("select on the first row should start a run")
	}
}

func updateMenu(t *testing.T, m MenuModel, msg tea.Msg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}
