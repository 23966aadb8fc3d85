package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/rewind-arcade/internal/config"
	"github.com/vovakirdan/rewind-arcade/internal/core"
	"github.com/vovakirdan/rewind-arcade/internal/storage"
)

// menuEntry identifies a row of the main menu.
type menuEntry int

const (
	entryPlay menuEntry = iota
	entryDifficulty
	entryShake
	entryScanlines
	entrySound
	entryScores
	entryQuit
)

var menuEntries = []menuEntry{
	entryPlay, entryDifficulty, entryShake, entryScanlines, entrySound, entryScores, entryQuit,
}

// Difficulties in menu order.
var Difficulties = []config.DifficultyPreset{
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
	config.DifficultyFixed,
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213"))
	menuHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuBestStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
)

// MenuModel is the Bubble Tea model for the main menu: start a run, pick
// a difficulty, toggle settings, or open the scoreboard.
type MenuModel struct {
	cursor         int
	difficulty     int
	settings       config.Settings
	width          int
	height         int
	best           *storage.RunRecord
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	start          bool
	openScoreboard bool
}

// NewMenuModel creates a new menu model. The store is only read for the
// best-run line and may be nil.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, settings config.Settings, difficulty string) MenuModel {
	m := MenuModel{
		difficulty: 1,
		settings:   settings,
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
	}
	for i, d := range Difficulties {
		if string(d) == difficulty {
			m.difficulty = i
		}
	}
	if store != nil {
		//nolint:errcheck // Best-effort, the menu works without it
		m.best, _ = store.BestRun()
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(menuEntries)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		m.adjust(-1)

	case MenuActionRight:
		m.adjust(1)

	case MenuActionSelect:
		switch menuEntries[m.cursor] {
		case entryPlay:
			m.start = true
			return m, tea.Quit
		case entryScores:
			m.openScoreboard = true
			return m, tea.Quit
		case entryQuit:
			m.quitting = true
			return m, tea.Quit
		default:
			m.adjust(1)
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

// adjust cycles or toggles the value under the cursor.
func (m *MenuModel) adjust(dir int) {
	switch menuEntries[m.cursor] {
	case entryDifficulty:
		n := len(Difficulties)
		m.difficulty = ((m.difficulty+dir)%n + n) % n
	case entryShake:
		m.settings.ScreenShake = !m.settings.ScreenShake
	case entryScanlines:
		m.settings.Scanlines = !m.settings.Scanlines
	case entrySound:
		m.settings.Sound = !m.settings.Sound
	}
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}

func (m MenuModel) label(e menuEntry) string {
	switch e {
	case entryPlay:
		return "Start run"
	case entryDifficulty:
		return fmt.Sprintf("Difficulty   < %s >", Difficulties[m.difficulty])
	case entryShake:
		return "Screen shake " + onOff(m.settings.ScreenShake)
	case entryScanlines:
		return "Scanlines    " + onOff(m.settings.Scanlines)
	case entrySound:
		return "Sound        " + onOff(m.settings.Sound)
	case entryScores:
		return "High scores"
	default:
		return "Quit"
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("◀◀  R E W I N D   R U N N E R  ◀◀"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Survive ten seconds. Then dodge yourself.", m.width))
	b.WriteString("\n\n")

	for i, e := range menuEntries {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(fmt.Sprintf("%-26s", cursor+m.label(e)), m.width))
		b.WriteString("\n")
	}

	if m.best != nil {
		b.WriteString("\n")
		best := fmt.Sprintf("Best: %d loops, %dm", m.best.Loops, int(m.best.Distance))
		b.WriteString(centerText(menuBestStyle.Render(best), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Left/Right: Change  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(menuHintStyle.Render(controls), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(menuHintStyle.Render("In game: Space jump  |  F/Down flip gravity  |  P pause  |  Ctrl+S snapshot"), m.width))
	b.WriteString("\n")

	return b.String()
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Started returns true if the user chose to start a run.
func (m MenuModel) Started() bool {
	return m.start
}

// Difficulty returns the selected preset.
func (m MenuModel) Difficulty() config.DifficultyPreset {
	return Difficulties[m.difficulty]
}

// Settings returns the toggled settings.
func (m MenuModel) Settings() config.Settings {
	return m.settings
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Start           bool
	Difficulty      config.DifficultyPreset
	Settings        config.Settings
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, settings config.Settings, difficulty string) (MenuResult, error) {
	model := NewMenuModel(store, cfg, settings, difficulty)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Difficulty: m.Difficulty(),
		Settings:   m.Settings(),
		Config:     m.Config(),
	}

	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Started():
		result.Start = true
	default:
		result.Quit = true
	}

	return result, nil
}
