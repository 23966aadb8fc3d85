// Package rewind implements Rewind Runner, an auto-runner on a ten second
// time loop. When the loop expires the run rewinds and the previous
// attempt keeps replaying as a lethal ghost.
package rewind

import (
	"github.com/vovakirdan/rewind-arcade/internal/config"
	"github.com/vovakirdan/rewind-arcade/internal/core"
	"github.com/vovakirdan/rewind-arcade/internal/games/rewind/sim"
	"github.com/vovakirdan/rewind-arcade/internal/registry"
)

// GameID is the registry and score-table identifier.
const GameID = "rewind"

// Game adapts the simulation to the arcade platform: it maps actions to
// sim input, tracks pause and game over, and renders to a text screen.
type Game struct {
	world     *sim.World
	cfg       config.RewindConfig
	runtime   core.RuntimeConfig
	dt        float64
	paused    bool
	gameOver  bool
	tickCount int
	stats     sim.RunStats
	pinned    *config.RewindConfig
}

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset
var settingsOverride *config.Settings

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetSettings overrides the settings section of the loaded config.
// Passing nil restores the config file values.
func SetSettings(s *config.Settings) {
	settingsOverride = s
}

// LoadConfig resolves the config the next Reset will use.
func LoadConfig() config.RewindConfig {
	cfg, err := config.LoadRewind(configPath)
	if err != nil {
		cfg = config.DefaultRewindConfig()
	}
	if difficultyPreset != "" {
		config.ApplyRewindPreset(&cfg, difficultyPreset)
	}
	if settingsOverride != nil {
		cfg.Settings = *settingsOverride
	}
	return cfg
}

// ConfigFor resolves the config file with an explicit preset and
// settings, without touching the package-level overrides.
func ConfigFor(preset string, settings config.Settings) config.RewindConfig {
	cfg, err := config.LoadRewind(configPath)
	if err != nil {
		cfg = config.DefaultRewindConfig()
	}
	if p := config.ParsePreset(preset); p != "" {
		config.ApplyRewindPreset(&cfg, p)
	}
	cfg.Settings = settings
	return cfg
}

// New creates a new Rewind Runner game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Rewind Runner"
}

// UseConfig pins the config every later Reset uses for this instance.
// Concurrent sessions use it instead of the package-level setters.
func (g *Game) UseConfig(cfg config.RewindConfig) {
	g.pinned = &cfg
}

// Reset starts a new run.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if g.pinned != nil {
		g.ResetWithConfig(runtime, *g.pinned)
		return
	}
	g.ResetWithConfig(runtime, LoadConfig())
}

// ResetWithConfig starts a new run with an explicit config.
func (g *Game) ResetWithConfig(runtime core.RuntimeConfig, cfg config.RewindConfig) {
	if runtime.TickRate <= 0 {
		runtime.TickRate = 60
	}
	g.runtime = runtime
	g.cfg = cfg
	g.dt = 1.0 / float64(runtime.TickRate)

	g.world = sim.NewWorld(cfg, sim.NewRandom(runtime.Seed))
	g.paused = false
	g.gameOver = false
	g.tickCount = 0
	g.stats = sim.RunStats{}
}

// Step advances the game by one fixed tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.world == nil || g.gameOver {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++
	res := g.world.Tick(g.dt, sim.Input{
		Jump: in.Has(core.ActionJump),
		Flip: in.Has(core.ActionFlip),
	})
	g.stats = g.world.Stats()

	if res.Over {
		g.gameOver = true
	}

	var events []string
	if len(res.Events) > 0 {
		events = make([]string, len(res.Events))
		for i, ev := range res.Events {
			events[i] = ev.Kind.String()
		}
	}

	return core.StepResult{State: g.State(), Events: events}
}

// State returns the current game state. The score is the number of
// completed loops.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.stats.Loops,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Stats returns the statistics of the current run.
func (g *Game) Stats() sim.RunStats {
	return g.stats
}

// Snapshot returns a copy of the world state for exporters.
func (g *Game) Snapshot() sim.Snapshot {
	if g.world == nil {
		return sim.Snapshot{}
	}
	return g.world.Snapshot()
}

// Config returns the config the current run uses.
func (g *Game) Config() config.RewindConfig {
	return g.cfg
}

// TickSeconds returns the simulated length of one Step.
func (g *Game) TickSeconds() float64 {
	return g.dt
}

// Register the game with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
