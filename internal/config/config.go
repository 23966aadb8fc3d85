// Package config provides YAML/TOML-based game configuration loading and
// difficulty management for the rewind runner.
package config

// RewindConfig contains all configuration for the rewind runner.
// Every tunable constant of the simulation lives here so balancing can be
// done from a file without touching code.
type RewindConfig struct {
	Physics    PhysicsConfig    `yaml:"physics" toml:"physics"`
	Player     PlayerConfig     `yaml:"player" toml:"player"`
	Loop       LoopConfig       `yaml:"loop" toml:"loop"`
	Generator  GeneratorConfig  `yaml:"generator" toml:"generator"`
	Zones      ZoneConfig       `yaml:"zones" toml:"zones"`
	Camera     CameraConfig     `yaml:"camera" toml:"camera"`
	Difficulty DifficultyConfig `yaml:"difficulty" toml:"difficulty"`
	Settings   Settings         `yaml:"settings" toml:"settings"`
}

// PhysicsConfig defines world bounds, gravity and zone effect strengths.
type PhysicsConfig struct {
	Gravity          float64 `yaml:"gravity" toml:"gravity"`
	FloorY           float64 `yaml:"floor_y" toml:"floor_y"`
	CeilY            float64 `yaml:"ceil_y" toml:"ceil_y"`
	OutOfBounds      float64 `yaml:"out_of_bounds" toml:"out_of_bounds"`         // Margin beyond floor/ceiling that kills
	LandingTolerance float64 `yaml:"landing_tolerance" toml:"landing_tolerance"` // One-way platform slack
	HeavyMultiplier  float64 `yaml:"heavy_multiplier" toml:"heavy_multiplier"`
	LowMultiplier    float64 `yaml:"low_multiplier" toml:"low_multiplier"`
	SidewaysForce    float64 `yaml:"sideways_force" toml:"sideways_force"`
	ChaosFlipChance  float64 `yaml:"chaos_flip_chance" toml:"chaos_flip_chance"` // Per tick
}

// PlayerConfig defines the runner's body and movement.
type PlayerConfig struct {
	StartX       float64 `yaml:"start_x" toml:"start_x"`
	StartY       float64 `yaml:"start_y" toml:"start_y"`
	Width        float64 `yaml:"width" toml:"width"`
	Height       float64 `yaml:"height" toml:"height"`
	JumpForce    float64 `yaml:"jump_force" toml:"jump_force"` // Negative = against gravity
	BaseSpeed    float64 `yaml:"base_speed" toml:"base_speed"`
	AnimInterval float64 `yaml:"anim_interval" toml:"anim_interval"` // Seconds per animation frame
	AnimFrames   int     `yaml:"anim_frames" toml:"anim_frames"`
}

// LoopConfig defines the time-loop cycle and ghost behavior.
type LoopConfig struct {
	CycleDuration float64 `yaml:"cycle_duration" toml:"cycle_duration"` // Seconds per cycle
	SpeedFactor   float64 `yaml:"speed_factor" toml:"speed_factor"`     // Speed multiplier gain per loop
	MaxGhosts     int     `yaml:"max_ghosts" toml:"max_ghosts"`
	GraceDuration float64 `yaml:"grace_duration" toml:"grace_duration"` // Invincibility after a rewind
	GhostInset    float64 `yaml:"ghost_inset" toml:"ghost_inset"`       // Hitbox shrink per side
	MinStride     int     `yaml:"min_stride" toml:"min_stride"`         // Reverse scrub frames per tick, minimum
	ScrubSteps    int     `yaml:"scrub_steps" toml:"scrub_steps"`       // Target ticks for a full reverse scrub
}

// GeneratorConfig defines hazard and platform placement.
type GeneratorConfig struct {
	StartX     float64 `yaml:"start_x" toml:"start_x"`
	Lookahead  float64 `yaml:"lookahead" toml:"lookahead"`
	BaseGap    float64 `yaml:"base_gap" toml:"base_gap"`
	GapJitter  float64 `yaml:"gap_jitter" toml:"gap_jitter"`
	CullMargin float64 `yaml:"cull_margin" toml:"cull_margin"`
}

// ZoneConfig defines gravity zone placement.
type ZoneConfig struct {
	StartX        float64 `yaml:"start_x" toml:"start_x"`
	Lookahead     float64 `yaml:"lookahead" toml:"lookahead"`
	BaseChance    float64 `yaml:"base_chance" toml:"base_chance"`
	ChancePerLoop float64 `yaml:"chance_per_loop" toml:"chance_per_loop"`
	MaxChance     float64 `yaml:"max_chance" toml:"max_chance"`
	BaseGap       float64 `yaml:"base_gap" toml:"base_gap"`
	GapPerLoop    float64 `yaml:"gap_per_loop" toml:"gap_per_loop"`
	MinGap        float64 `yaml:"min_gap" toml:"min_gap"`
	GapJitter     float64 `yaml:"gap_jitter" toml:"gap_jitter"`
	MinWidth      float64 `yaml:"min_width" toml:"min_width"`
	MaxWidth      float64 `yaml:"max_width" toml:"max_width"`
	MinHeight     float64 `yaml:"min_height" toml:"min_height"`
	MaxHeight     float64 `yaml:"max_height" toml:"max_height"`
	CullMargin    float64 `yaml:"cull_margin" toml:"cull_margin"`
}

// CameraConfig defines the follow camera and shake requests.
type CameraConfig struct {
	ViewWidth   float64     `yaml:"view_width" toml:"view_width"`
	Lead        float64     `yaml:"lead" toml:"lead"`               // Player position as a fraction of view width
	RewindLead  float64     `yaml:"rewind_lead" toml:"rewind_lead"` // Same, during the reverse scrub
	ResetOffset float64     `yaml:"reset_offset" toml:"reset_offset"`
	RewindShake ShakeConfig `yaml:"rewind_shake" toml:"rewind_shake"`
	DeathShake  ShakeConfig `yaml:"death_shake" toml:"death_shake"`
}

// ShakeConfig is an (intensity, duration) shake request.
type ShakeConfig struct {
	Intensity float64 `yaml:"intensity" toml:"intensity"`
	Duration  float64 `yaml:"duration" toml:"duration"`
}

// Settings are player-facing toggles read once at run start.
type Settings struct {
	ScreenShake  bool    `yaml:"screen_shake" toml:"screen_shake"`
	Scanlines    bool    `yaml:"scanlines" toml:"scanlines"`
	Sound        bool    `yaml:"sound" toml:"sound"`
	MasterVolume float64 `yaml:"master_volume" toml:"master_volume"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled" toml:"enabled"`
	InitialLevel float64           `yaml:"initial_level" toml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression" toml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling" toml:"scaling"`
}

// ProgressionConfig defines how difficulty increases per loop.
type ProgressionConfig struct {
	Type    string  `yaml:"type" toml:"type"`         // "loop" or "none"
	PerLoop float64 `yaml:"per_loop" toml:"per_loop"` // Level gained per completed loop
}

// ScalingConfig defines how the level shapes hazard placement.
type ScalingConfig struct {
	GapFactor       float64 `yaml:"gap_factor" toml:"gap_factor"`               // Gap multiplier at level 0
	GapReduction    float64 `yaml:"gap_reduction" toml:"gap_reduction"`         // Gap multiplier lost at level 1
	DoubleSpikeAt   float64 `yaml:"double_spike_at" toml:"double_spike_at"`     // Level above which floor spikes may double
	PlatformSpikeAt float64 `yaml:"platform_spike_at" toml:"platform_spike_at"` // Level above which platforms may get a spike
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string to a preset. Unknown values return "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
