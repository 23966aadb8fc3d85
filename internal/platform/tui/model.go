package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/rewind-arcade/internal/audio"
	"github.com/vovakirdan/rewind-arcade/internal/config"
	"github.com/vovakirdan/rewind-arcade/internal/core"
	"github.com/vovakirdan/rewind-arcade/internal/games/rewind"
	"github.com/vovakirdan/rewind-arcade/internal/games/rewind/sim"
	"github.com/vovakirdan/rewind-arcade/internal/metrics"
	"github.com/vovakirdan/rewind-arcade/internal/platform/snapshot"
	"github.com/vovakirdan/rewind-arcade/internal/registry"
	"github.com/vovakirdan/rewind-arcade/internal/storage"
)

// runGame is implemented by games backed by the rewind simulation.
// Other registry games still run, without run records or PNG export.
type runGame interface {
	Stats() sim.RunStats
	Snapshot() sim.Snapshot
	Config() config.RewindConfig
	TickSeconds() float64
}

// Options carries the per-run extras the model may use. All are optional.
type Options struct {
	Player     string        // Recorded with saved runs
	Difficulty string        // Recorded with saved runs
	Sound      *audio.Player // nil plays nothing
	Logger     *log.Logger
	Embedded   bool // Back returns to a parent model instead of quitting
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	opts       Options
	keyMapper  *KeyMapper
	driver     *sim.Driver
	lastTick   time.Time
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	runSaved   bool // Whether the run has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		opts:       opts,
		keyMapper:  NewKeyMapper(),
		driver:     sim.NewDriver(1/float64(cfg.TickRate), sim.DefaultMaxDelta),
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit

	case action == core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			if !m.opts.Embedded {
				return m, tea.Quit
			}
			return m, nil
		}
		// Esc pauses a running game
		m.inputFrame.Set(core.ActionPause)

	case action == core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(core.ActionRestart)
		}

	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events. The world is independent
// of the terminal size, so only the screen buffer changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick converts elapsed real time into fixed simulation steps.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.restart()
		m.lastTick = now
		return m, tickCmd(m.config.TickRate)
	}

	delta := m.driver.Step()
	if !m.lastTick.IsZero() {
		delta = now.Sub(m.lastTick).Seconds()
	}
	m.lastTick = now

	ticks := m.driver.Advance(delta, func(float64) {
		result := m.game.Step(m.inputFrame)
		m.gameState = result.State
		m.handleEvents(result.Events)
		// Edge-triggered input applies to the first sub-tick only
		m.inputFrame.Clear()
	})
	metrics.RecordTicks(ticks)

	if m.gameState.GameOver && !m.runSaved {
		m.saveRun()
		m.runSaved = true
	}

	return m, tickCmd(m.config.TickRate)
}

func (m *Model) restart() {
	m.config.Seed = time.Now().UnixNano()
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.runSaved = false
	m.driver.Reset()
	m.inputFrame.Clear()
}

func (m *Model) handleEvents(events []string) {
	if len(events) == 0 {
		return
	}
	m.opts.Sound.PlayNamed(events)
	for _, ev := range events {
		metrics.RecordEvent(ev)
		if m.opts.Logger != nil {
			m.opts.Logger.Debug("event", "kind", ev, "score", m.gameState.Score)
		}
	}
}

// saveRun records the finished run once.
func (m *Model) saveRun() {
	rg, ok := m.game.(runGame)
	if !ok {
		return
	}
	st := rg.Stats()
	metrics.RecordRunFinished(st.Loops)

	if m.store == nil {
		return
	}
	rec := storage.RunRecord{
		Player:     m.opts.Player,
		Seed:       m.config.Seed,
		Difficulty: m.opts.Difficulty,
		Loops:      st.Loops,
		Distance:   st.Distance,
		Ghosts:     st.Ghosts,
		MaxSpeed:   st.MaxSpeed,
		Duration:   st.Duration,
	}
	if _, err := m.store.SaveRun(rec); err != nil && m.opts.Logger != nil {
		m.opts.Logger.Warn("could not save run", "error", err)
	}
}

// saveScreenshot saves the current screen as text, plus a PNG when the
// game exposes a world snapshot.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".rewind", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	base := filepath.Join(dir, fmt.Sprintf("%s_%s", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(base+".txt", []byte(m.screen.String()), 0o600)

	if rg, ok := m.game.(runGame); ok {
		s := rg.Snapshot()
		opts := snapshot.Options{Scanlines: rg.Config().Settings.Scanlines}
		if err := snapshot.SavePNG(base+".png", &s, opts); err != nil && m.opts.Logger != nil {
			m.opts.Logger.Warn("could not save snapshot", "error", err)
		}
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)

	var opts RenderOptions
	if rg, ok := m.game.(runGame); ok {
		opts = RenderOptions{Scanlines: rg.Config().Settings.Scanlines, HUDRows: rewind.HUDRows}
	}
	return RenderScreen(m.screen, opts)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last game state seen by the model.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, store, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
