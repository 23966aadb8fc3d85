package config

import (
	_ "embed"
)

//go:embed defaults/rewind.yaml
var defaultRewindYAML []byte

// DefaultRewindConfig returns the default rewind runner configuration.
func DefaultRewindConfig() RewindConfig {
	return RewindConfig{
		Physics: PhysicsConfig{
			Gravity:          600,
			FloorY:           190,
			CeilY:            10,
			OutOfBounds:      50,
			LandingTolerance: 2,
			HeavyMultiplier:  2.5,
			LowMultiplier:    0.3,
			SidewaysForce:    120,
			ChaosFlipChance:  0.03,
		},
		Player: PlayerConfig{
			StartX:       50,
			StartY:       160,
			Width:        12,
			Height:       16,
			JumpForce:    -280,
			BaseSpeed:    80,
			AnimInterval: 0.08,
			AnimFrames:   8,
		},
		Loop: LoopConfig{
			CycleDuration: 10,
			SpeedFactor:   1.25,
			MaxGhosts:     8,
			GraceDuration: 1.5,
			GhostInset:    2,
			MinStride:     4,
			ScrubSteps:    40,
		},
		Generator: GeneratorConfig{
			StartX:     200,
			Lookahead:  400,
			BaseGap:    60,
			GapJitter:  30,
			CullMargin: 100,
		},
		Zones: ZoneConfig{
			StartX:        400,
			Lookahead:     200,
			BaseChance:    0.3,
			ChancePerLoop: 0.1,
			MaxChance:     0.8,
			BaseGap:       200,
			GapPerLoop:    10,
			MinGap:        80,
			GapJitter:     100,
			MinWidth:      60,
			MaxWidth:      140,
			MinHeight:     80,
			MaxHeight:     140,
			CullMargin:    50,
		},
		Camera: CameraConfig{
			ViewWidth:   384,
			Lead:        0.15,
			RewindLead:  0.3,
			ResetOffset: 50,
			RewindShake: ShakeConfig{Intensity: 6, Duration: 0.4},
			DeathShake:  ShakeConfig{Intensity: 10, Duration: 0.6},
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.3,
			Progression: ProgressionConfig{
				Type:    "loop",
				PerLoop: 0.15,
			},
			Scaling: ScalingConfig{
				GapFactor:       1.2,
				GapReduction:    0.5,
				DoubleSpikeAt:   0.5,
				PlatformSpikeAt: 0.4,
			},
		},
		Settings: Settings{
			ScreenShake:  true,
			Scanlines:    false,
			Sound:        true,
			MasterVolume: 0.7,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "rewind":
		return defaultRewindYAML
	default:
		return nil
	}
}
