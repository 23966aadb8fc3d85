package sim

import (
	"math"

	"github.com/vovakirdan/rewind-arcade/internal/config"
	"github.com/vovakirdan/rewind-arcade/internal/core"
)

// distanceScale converts world units to the metres shown on the game over screen.
const distanceScale = 0.1

// TickResult reports what one fixed tick did.
type TickResult struct {
	Outcome Outcome
	Over    bool
	Phase   Phase
	Events  []Event
}

// RunStats summarizes a run for the game over screen and high scores.
type RunStats struct {
	Loops    int     `json:"loops"`
	Distance float64 `json:"distance"`
	Ghosts   int     `json:"ghosts"`
	MaxSpeed float64 `json:"maxSpeed"`
	Duration float64 `json:"duration"` // Simulated seconds
	Ticks    int     `json:"ticks"`
}

// World wires the player, generators, physics, rewind engine and camera
// into one simulation stream. It is not safe for concurrent use; readers on
// other goroutines must work from Snapshot copies.
type World struct {
	cfg config.RewindConfig

	player  *Player
	camera  *FollowCamera
	physics *Physics
	engine  *Engine
	gen     *Generator
	zones   *ZoneField
	diff    *config.DifficultyManager

	over     bool
	ticks    int
	elapsed  float64
	maxSpeed float64
	events   []Event
}

// NewWorld creates a world ready for its first tick. All randomness comes
// from rng.
func NewWorld(cfg config.RewindConfig, rng Random) *World {
	diff := config.NewDifficultyManager(cfg.Difficulty)
	return &World{
		cfg:      cfg,
		player:   NewPlayer(cfg.Player),
		camera:   NewFollowCamera(cfg.Camera, rng),
		physics:  NewPhysics(cfg.Physics, rng),
		engine:   NewEngine(cfg),
		gen:      NewGenerator(cfg.Generator, cfg.Physics, diff, rng),
		zones:    NewZoneField(cfg.Zones, cfg.Physics, rng),
		diff:     diff,
		maxSpeed: 1,
	}
}

// Reset starts a new run.
func (w *World) Reset() {
	w.player.Reset()
	w.camera.Reset()
	w.engine.Reset()
	w.gen.Reset()
	w.zones.Reset()
	w.over = false
	w.ticks = 0
	w.elapsed = 0
	w.maxSpeed = 1
	w.events = nil
}

// Tick advances the simulation by one fixed step. Once the run is over
// every call is a no-op that reports Over.
func (w *World) Tick(dt float64, in Input) TickResult {
	if w.over {
		return TickResult{Outcome: Dead, Over: true, Phase: w.engine.Phase()}
	}
	w.ticks++
	w.elapsed += dt

	outcome := Alive
	if w.engine.Phase() == PhaseNormal {
		outcome = w.play(dt, in)
	}

	if !w.over {
		w.engine.Tick(dt, w.player, w.camera)
		w.maxSpeed = math.Max(w.maxSpeed, w.engine.SpeedMultiplier())
	}
	w.camera.Update(dt)

	w.events = append(w.events, w.engine.DrainEvents()...)
	events := w.events
	w.events = nil

	return TickResult{Outcome: outcome, Over: w.over, Phase: w.engine.Phase(), Events: events}
}

// play runs the normal-phase part of a tick: input and auto-run, recording,
// generation, physics and the death decision.
func (w *World) play(dt float64, in Input) Outcome {
	p := w.player
	jumped, flipped := p.Advance(dt, in)
	if jumped {
		w.emit(EventJump)
	}
	if flipped {
		w.emit(EventFlip)
	}

	w.engine.RecordFrame(p)

	w.camera.Follow(p.X)
	loops := w.engine.Loops()
	w.gen.Extend(w.camera.X(), w.camera.ViewWidth(), loops)
	w.zones.Extend(w.camera.X(), w.camera.ViewWidth(), loops)
	w.gen.Advance(dt)

	outcome := w.physics.Step(dt, p, w.gen.Obstacles(), w.gen.Platforms(), w.zones.Zones(), w.engine.Ghosts())
	if outcome == Dead && !w.engine.GraceActive() {
		w.die()
	}

	w.gen.Cull(w.camera.X())
	w.zones.Cull(w.camera.X())
	return outcome
}

func (w *World) die() {
	w.over = true
	w.player.Alive = false
	if w.cfg.Settings.ScreenShake {
		w.camera.Shake(w.cfg.Camera.DeathShake.Intensity, w.cfg.Camera.DeathShake.Duration)
	}
	w.emit(EventDeath)
}

func (w *World) emit(kind EventKind) {
	w.events = append(w.events, Event{Kind: kind, Loop: w.engine.Loops(), X: w.player.X, Y: w.player.Y})
}

// Over reports whether the run has ended.
func (w *World) Over() bool { return w.over }

// Player returns the live player. Callers must treat it as read-only.
func (w *World) Player() *Player { return w.player }

// Engine returns the rewind engine.
func (w *World) Engine() *Engine { return w.engine }

// Camera returns the world's camera.
func (w *World) Camera() *FollowCamera { return w.camera }

// Generator returns the hazard generator.
func (w *World) Generator() *Generator { return w.gen }

// Zones returns the gravity zone field.
func (w *World) Zones() *ZoneField { return w.zones }

// Difficulty returns the difficulty level for the current loop count.
func (w *World) Difficulty() float64 { return w.diff.Level(w.engine.Loops()) }

// Stats returns the run statistics so far.
func (w *World) Stats() RunStats {
	return RunStats{
		Loops:    w.engine.Loops(),
		Distance: math.Max(w.player.X-w.cfg.Player.StartX, 0) * distanceScale,
		Ghosts:   len(w.engine.Ghosts()),
		MaxSpeed: w.maxSpeed,
		Duration: w.elapsed,
		Ticks:    w.ticks,
	}
}

// PlayerView is the read-only player state in a snapshot.
type PlayerView struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	VX         float64 `json:"vx"`
	VY         float64 `json:"vy"`
	W          float64 `json:"w"`
	H          float64 `json:"h"`
	GravityDir int     `json:"gravityDir"`
	Grounded   bool    `json:"grounded"`
	Alive      bool    `json:"alive"`
	AnimFrame  int     `json:"animFrame"`
}

// GhostView is a ghost's current pose and lethal box.
type GhostView struct {
	Loop  int      `json:"loop"`
	Frame int      `json:"frame"`
	Pose  Frame    `json:"pose"`
	Box   core.Box `json:"box"`
}

// CameraView is the camera position including shake.
type CameraView struct {
	X         float64 `json:"x"`
	ViewWidth float64 `json:"viewWidth"`
	OffsetX   float64 `json:"offsetX"`
	OffsetY   float64 `json:"offsetY"`
}

// Snapshot is a settled, deep-copied view of the world between ticks.
// It is safe to hand to other goroutines.
type Snapshot struct {
	Tick     int     `json:"tick"`
	Phase    Phase   `json:"phase"`
	Over     bool    `json:"over"`
	Loops    int     `json:"loops"`
	Speed    float64 `json:"speed"`
	Progress float64 `json:"progress"`
	Timer    float64 `json:"timer"`
	Grace    float64 `json:"grace"`
	Effect   bool    `json:"effect"`
	FloorY   float64 `json:"floorY"`
	CeilY    float64 `json:"ceilY"`

	Camera    CameraView  `json:"camera"`
	Player    PlayerView  `json:"player"`
	Ghosts    []GhostView `json:"ghosts"`
	Obstacles []Obstacle  `json:"obstacles"`
	Platforms []Platform  `json:"platforms"`
	Zones     []Zone      `json:"zones"`
	Stats     RunStats    `json:"stats"`
}

// Snapshot copies the current state.
func (w *World) Snapshot() Snapshot {
	p := w.player
	offX, offY := w.camera.Offset()

	ghosts := make([]GhostView, 0, len(w.engine.Ghosts()))
	for _, g := range w.engine.Ghosts() {
		ghosts = append(ghosts, GhostView{Loop: g.Loop(), Frame: g.Cursor(), Pose: g.Pose(), Box: g.Box()})
	}

	return Snapshot{
		Tick:     w.ticks,
		Phase:    w.engine.Phase(),
		Over:     w.over,
		Loops:    w.engine.Loops(),
		Speed:    w.engine.SpeedMultiplier(),
		Progress: w.engine.Progress(),
		Timer:    w.engine.Timer(),
		Grace:    w.engine.Grace(),
		Effect:   w.engine.EffectActive(),
		FloorY:   w.cfg.Physics.FloorY,
		CeilY:    w.cfg.Physics.CeilY,
		Camera: CameraView{
			X:         w.camera.X(),
			ViewWidth: w.camera.ViewWidth(),
			OffsetX:   offX,
			OffsetY:   offY,
		},
		Player: PlayerView{
			X: p.X, Y: p.Y, VX: p.VX, VY: p.VY, W: p.W, H: p.H,
			GravityDir: p.GravityDir,
			Grounded:   p.Grounded,
			Alive:      p.Alive,
			AnimFrame:  p.AnimFrame,
		},
		Ghosts:    ghosts,
		Obstacles: append([]Obstacle(nil), w.gen.Obstacles()...),
		Platforms: append([]Platform(nil), w.gen.Platforms()...),
		Zones:     append([]Zone(nil), w.zones.Zones()...),
		Stats:     w.Stats(),
	}
}
