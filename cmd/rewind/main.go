// rewind is a terminal side-scroller where every ten seconds time loops
// back and your past runs return as lethal ghosts.
//
// Usage:
//
//	rewind list              - List registered games
//	rewind play              - Play a run
//	rewind menu              - Start menu with settings and high scores
//	rewind serve             - Start SSH server (and optional web spectator)
//	rewind scores            - Show high scores
//	rewind sim               - Headless autopilot run
//	rewind sfx               - Export the sound effects as WAV
//	rewind snapshot          - Render a PNG of a simulated moment
//	rewind config            - Print or install the default config
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--db <path>           - Set database path (default: ~/.rewind/runs.db)
//	--config <path>       - Custom config (YAML or TOML)
//	--difficulty <preset> - easy, normal, hard or fixed
//
// Defaults can also come from the environment or a .env file:
// REWIND_FPS, REWIND_DB, REWIND_CONFIG, REWIND_DIFFICULTY, REWIND_SSH_ADDR and
// REWIND_HTTP_ADDR.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/rewind-arcade/internal/config"
	"github.com/vovakirdan/rewind-arcade/internal/core"
	"github.com/vovakirdan/rewind-arcade/internal/games/rewind"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
)

func main() {
	//nolint:errcheck // A missing .env just means plain environment variables
	godotenv.Load()

	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", getEnvInt("REWIND_FPS", 60), "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", getEnv("REWIND_DB", "~/.rewind/runs.db"), "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", getEnv("REWIND_CONFIG", ""), "Path to custom config (YAML or TOML)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", getEnv("REWIND_DIFFICULTY", ""), "Difficulty preset: easy, normal, hard, fixed")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rewind",
	Short: "Rewind Runner - survive the loop, dodge your past selves",
	Long: `Rewind Runner is a terminal side-scroller built around a time loop.

Every ten seconds the world rewinds to the start and a ghost replays
your last run. Touching a ghost is as deadly as touching a spike.

Available commands:
  list      - Show registered games
  play      - Start a run
  menu      - Interactive menu with settings and high scores
  serve     - SSH server for remote play, plus a web spectator feed
  scores    - View high scores
  sim       - Headless autopilot run for balancing
  sfx       - Export the synthesized sound effects
  snapshot  - Render a PNG of a simulated moment
  config    - Print or install the default config

Examples:
  rewind play
  rewind play --difficulty hard --seed 42
  rewind menu
  rewind serve --ssh :2222 --http :8080
  rewind scores --order distance
  rewind sim --seed 7 --ticks 3600 --wav run.wav`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
			return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
		}
		if flagFPS <= 0 {
			return fmt.Errorf("--fps must be positive, got %d", flagFPS)
		}
		rewind.SetConfigPath(flagConfig)
		rewind.SetDifficultyPreset(flagDifficulty)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(sfxCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(configCmd)
}

// runtimeConfig sizes the run to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func newLogger(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
