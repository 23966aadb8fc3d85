package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadRewind loads the rewind runner configuration.
// Search order: customPath -> ~/.rewind/configs/rewind.{yaml,toml} ->
// ./configs/rewind.yaml -> embedded default.
//
// Files are decoded on top of the defaults, so a file only needs the keys
// it changes.
func LoadRewind(customPath string) (RewindConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg := DefaultRewindConfig()
		if err := decodeFile(customPath, &cfg); err != nil {
			return cfg, err
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	candidates := []string{
		userConfigPath("rewind.yaml"),
		userConfigPath("rewind.toml"),
		filepath.Join("configs", "rewind.yaml"),
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		cfg := DefaultRewindConfig()
		if err := decodeFile(path, &cfg); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg := DefaultRewindConfig()
	if err := yaml.Unmarshal(defaultRewindYAML, &cfg); err != nil {
		return DefaultRewindConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// decodeFile reads a YAML or TOML file into out, picking the decoder by extension.
func decodeFile(path string, out *RewindConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), out); err != nil {
			return fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".rewind", "configs", filename)
}

// ApplyRewindPreset modifies the config based on a difficulty preset.
func ApplyRewindPreset(cfg *RewindConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
}

// Validate rejects configurations that would produce degenerate geometry
// or a loop that can never complete.
func (c RewindConfig) Validate() error {
	var errs []error

	if c.Physics.FloorY <= c.Physics.CeilY {
		errs = append(errs, fmt.Errorf("floor_y (%v) must be below ceil_y (%v)", c.Physics.FloorY, c.Physics.CeilY))
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		errs = append(errs, errors.New("player size must be positive"))
	}
	if c.Player.Height >= c.Physics.FloorY-c.Physics.CeilY {
		errs = append(errs, errors.New("player does not fit between floor and ceiling"))
	}
	if c.Player.AnimFrames <= 0 {
		errs = append(errs, errors.New("anim_frames must be positive"))
	}
	if c.Loop.CycleDuration <= 0 {
		errs = append(errs, errors.New("cycle_duration must be positive"))
	}
	if c.Loop.SpeedFactor < 1 {
		errs = append(errs, errors.New("speed_factor must be at least 1"))
	}
	if c.Loop.MaxGhosts < 1 {
		errs = append(errs, errors.New("max_ghosts must be at least 1"))
	}
	if c.Loop.MinStride < 1 || c.Loop.ScrubSteps < 1 {
		errs = append(errs, errors.New("min_stride and scrub_steps must be at least 1"))
	}
	if c.Generator.BaseGap <= 0 {
		errs = append(errs, errors.New("generator base_gap must be positive"))
	}
	if c.Difficulty.Scaling.GapFactor-c.Difficulty.Scaling.GapReduction <= 0 {
		errs = append(errs, errors.New("gap scaling must stay positive at full difficulty"))
	}
	if c.Zones.MinGap <= 0 {
		errs = append(errs, errors.New("zones min_gap must be positive"))
	}
	if c.Zones.MinWidth <= 0 || c.Zones.MaxWidth < c.Zones.MinWidth {
		errs = append(errs, errors.New("zone width bounds are invalid"))
	}
	if c.Zones.MinHeight <= 0 || c.Zones.MaxHeight < c.Zones.MinHeight {
		errs = append(errs, errors.New("zone height bounds are invalid"))
	}
	if c.Zones.MaxHeight > c.Physics.FloorY-c.Physics.CeilY {
		errs = append(errs, errors.New("zones taller than the playfield"))
	}
	if c.Camera.ViewWidth <= 0 {
		errs = append(errs, errors.New("camera view_width must be positive"))
	}

	return errors.Join(errs...)
}
