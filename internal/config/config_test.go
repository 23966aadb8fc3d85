package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultRewindConfig().Validate(); err != nil {
		t.Fatalf("Validate() = %v, expected nil", err)
	}
}

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadRewind("")
	if err != nil {
		t.Fatalf("LoadRewind() error = %v", err)
	}
	if cfg != DefaultRewindConfig() {
		t.Errorf("embedded defaults drifted from DefaultRewindConfig():\n%+v\n%+v", cfg, DefaultRewindConfig())
	}
}

func TestLoadRewindPartialYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("loop:\n  cycle_duration: 5\n  max_ghosts: 3\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadRewind(path)
	if err != nil {
		t.Fatalf("LoadRewind() error = %v", err)
	}
	if cfg.Loop.CycleDuration != 5 {
		t.Errorf("CycleDuration = %v, expected 5", cfg.Loop.CycleDuration)
	}
	if cfg.Loop.MaxGhosts != 3 {
		t.Errorf("MaxGhosts = %d, expected 3", cfg.Loop.MaxGhosts)
	}
	// Untouched keys keep their defaults
	if cfg.Physics.Gravity != 600 {
		t.Errorf("Gravity = %v, expected default 600", cfg.Physics.Gravity)
	}
	if cfg.Loop.SpeedFactor != 1.25 {
		t.Errorf("SpeedFactor = %v, expected default 1.25", cfg.Loop.SpeedFactor)
	}
}

func TestLoadRewindTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	data := []byte("[physics]\ngravity = 900.0\n\n[settings]\nscreen_shake = false\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadRewind(path)
	if err != nil {
		t.Fatalf("LoadRewind() error = %v", err)
	}
	if cfg.Physics.Gravity != 900 {
		t.Errorf("Gravity = %v, expected 900", cfg.Physics.Gravity)
	}
	if cfg.Settings.ScreenShake {
		t.Error("ScreenShake = true, expected false")
	}
	if cfg.Physics.FloorY != 190 {
		t.Errorf("FloorY = %v, expected default 190", cfg.Physics.FloorY)
	}
}

func TestLoadRewindErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		file    string
	}{
		{"missing file", "", "missing.yaml"},
		{"bad yaml", "loop: [unclosed", "bad.yaml"},
		{"degenerate bounds", "physics:\n  floor_y: 5\n  ceil_y: 10\n", "bounds.yaml"},
		{"zero ghosts", "loop:\n  max_ghosts: 0\n", "ghosts.yaml"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.file)
			if tc.content != "" {
				if err := os.WriteFile(path, []byte(tc.content), 0o600); err != nil {
					t.Fatal(err)
				}
			}
			if _, err := LoadRewind(path); err == nil {
				t.Error("LoadRewind() error = nil, expected error")
			}
		})
	}
}

func TestApplyRewindPreset(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		enabled bool
		initial float64
	}{
		{DifficultyEasy, true, 0.0},
		{DifficultyNormal, true, 0.3},
		{DifficultyHard, true, 0.7},
		{DifficultyFixed, false, 0.3},
		{"", true, 0.3},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultRewindConfig()
			ApplyRewindPreset(&cfg, tc.preset)
			if cfg.Difficulty.Enabled != tc.enabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tc.enabled)
			}
			if cfg.Difficulty.InitialLevel != tc.initial {
				t.Errorf("InitialLevel = %v, expected %v", cfg.Difficulty.InitialLevel, tc.initial)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if ParsePreset("hard") != DifficultyHard {
		t.Error("ParsePreset(hard) should return DifficultyHard")
	}
	if ParsePreset("insane") != "" {
		t.Error("ParsePreset(insane) should return empty preset")
	}
}

func TestDifficultyLevel(t *testing.T) {
	dm := NewDifficultyManager(DefaultRewindConfig().Difficulty)

	tests := []struct {
		loops    int
		expected float64
	}{
		{0, 0.3},
		{1, 0.45},
		{2, 0.6},
		{4, 0.9},
		{5, 1.0},
		{20, 1.0},
	}

	for _, tc := range tests {
		if got := dm.Level(tc.loops); math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("Level(%d) = %v, expected %v", tc.loops, got, tc.expected)
		}
	}
}

func TestDifficultyFixed(t *testing.T) {
	cfg := DefaultRewindConfig()
	ApplyRewindPreset(&cfg, DifficultyFixed)
	dm := NewDifficultyManager(cfg.Difficulty)

	if dm.IsEnabled() {
		t.Error("IsEnabled() = true, expected false for fixed preset")
	}
	if got := dm.Level(10); got != 0.3 {
		t.Errorf("Level(10) = %v, expected 0.3", got)
	}
}

func TestDifficultyThresholds(t *testing.T) {
	dm := NewDifficultyManager(DefaultRewindConfig().Difficulty)

	// Level 0.3: neither doubled spikes nor platform spikes
	if dm.DoubleSpikes(0) || dm.PlatformSpikes(0) {
		t.Error("loop 0 should not enable extra spikes")
	}
	// Level 0.45: platform spikes only
	if dm.DoubleSpikes(1) || !dm.PlatformSpikes(1) {
		t.Error("loop 1 should enable platform spikes only")
	}
	// Level 0.6: both
	if !dm.DoubleSpikes(2) || !dm.PlatformSpikes(2) {
		t.Error("loop 2 should enable both spike variants")
	}

	if got := dm.GapScale(0); math.Abs(got-1.05) > 1e-9 {
		t.Errorf("GapScale(0) = %v, expected 1.05", got)
	}
	if got := dm.GapScale(10); math.Abs(got-0.7) > 1e-9 {
		t.Errorf("GapScale(10) = %v, expected 0.7", got)
	}
}

func TestGetDefaultYAML(t *testing.T) {
	if len(GetDefaultYAML("rewind")) == 0 {
		t.Error("no embedded YAML for rewind")
	}
	if GetDefaultYAML("pong") != nil {
		t.Error("unknown game should have no embedded YAML")
	}
}
