package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/rewind-arcade/internal/audio"
	"github.com/vovakirdan/rewind-arcade/internal/config"
	"github.com/vovakirdan/rewind-arcade/internal/games/rewind"
	"github.com/vovakirdan/rewind-arcade/internal/platform/tui"
	"github.com/vovakirdan/rewind-arcade/internal/registry"
	"github.com/vovakirdan/rewind-arcade/internal/storage"
)

var flagMute bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a run",
	Long: `Start a run straight away.

Controls:
  Space/Up/W      - Jump
  F/S/Down        - Flip gravity
  P/Esc           - Pause
  R               - Restart (after death)
  Ctrl+S          - Save a snapshot (text and PNG) to ~/.rewind/screenshots
  Q/Ctrl+C        - Quit

Difficulty options:
  easy   - Start at the lowest level, hazards ramp up every loop
  normal - Start at 30% difficulty
  hard   - Start at 70% difficulty
  fixed  - No progression, stays at the config's initial level

Examples:
  rewind play
  rewind play --difficulty easy
  rewind play --seed 42 --mute
  rewind play --config ./my-rewind.toml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound effects")
}

func runPlay(cmd *cobra.Command, args []string) error {
	logger := newLogger("rewind")

	game, err := registry.Create(rewind.GameID)
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database, runs will not be saved", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	settings := rewind.LoadConfig().Settings
	if flagMute {
		settings.Sound = false
	}
	rewind.SetSettings(&settings)

	sound := openSound(settings, logger)
	defer sound.Close()

	return tui.Run(game, store, runtimeConfig(), tui.Options{
		Player:     playerName(),
		Difficulty: difficultyName(),
		Sound:      sound,
		Logger:     logger,
	})
}

// openSound opens the speaker when sound is on. Failure is not fatal: the
// run continues silently.
func openSound(settings config.Settings, logger *log.Logger) *audio.Player {
	if !settings.Sound {
		return nil
	}
	cfg := audio.DefaultConfig()
	if settings.MasterVolume > 0 {
		cfg.MasterVolume = settings.MasterVolume
	}
	p, err := audio.NewPlayer(cfg)
	if err != nil {
		logger.Warn("sound disabled", "error", err)
		return nil
	}
	return p
}

func playerName() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}

func difficultyName() string {
	if flagDifficulty == "" {
		return string(config.DifficultyNormal)
	}
	return flagDifficulty
}
