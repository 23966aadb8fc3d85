package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rewind-arcade/internal/audio"
	"github.com/vovakirdan/rewind-arcade/internal/games/rewind"
	"github.com/vovakirdan/rewind-arcade/internal/platform/tui"
	"github.com/vovakirdan/rewind-arcade/internal/registry"
	"github.com/vovakirdan/rewind-arcade/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the interactive menu",
	Long: `Start in interactive menu mode.

The menu starts runs, changes difficulty, toggles screen shake, scanlines
and sound, and opens the high score table. After a run you return to the
menu.

Controls:
  Up/Down/j/k     - Navigate
  Left/Right/h/l  - Change the selected setting
  Enter/Space     - Select
  Tab             - High scores
  Q               - Quit

Examples:
  rewind menu
  rewind menu --fps 30
  rewind menu --db ./runs.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger := newLogger("rewind")

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database, runs will not be saved", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	settings := rewind.LoadConfig().Settings
	difficulty := difficultyName()

	var sound *audio.Player
	defer func() { sound.Close() }()

	for {
		result, err := tui.RunMenu(store, cfg, settings, difficulty)
		if err != nil {
			return err
		}

		cfg = result.Config
		settings = result.Settings
		difficulty = string(result.Difficulty)

		if result.Quit {
			return nil
		}

		if result.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				return sbErr
			}
			if goBack {
				continue
			}
			return nil
		}

		rewind.SetDifficultyPreset(difficulty)
		rewind.SetSettings(&settings)

		if settings.Sound && sound == nil {
			sound = openSound(settings, logger)
		}
		sound.SetEnabled(settings.Sound)

		game, err := registry.Create(rewind.GameID)
		if err != nil {
			logger.Error("cannot create game", "error", err)
			continue
		}

		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(game, store, cfg, tui.Options{
			Player:     playerName(),
			Difficulty: difficulty,
			Sound:      sound,
			Logger:     logger,
		}); err != nil {
			logger.Error("run failed", "error", err)
		}
	}
}
