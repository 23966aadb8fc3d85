package sim

import (
	"math"

	"github.com/vovakirdan/rewind-arcade/internal/config"
)

// timerEpsilon absorbs float drift so a cycle of N fixed ticks expires on
// tick N rather than N+1.
const timerEpsilon = 1e-9

// Phase is the rewind engine's state tag.
type Phase int

const (
	PhaseNormal Phase = iota
	PhaseRewinding
)

// String returns "NORMAL" or "REWINDING".
func (p Phase) String() string {
	if p == PhaseRewinding {
		return "REWINDING"
	}
	return "NORMAL"
}

// MarshalText lets phases serialize by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// loopState is either normalState or *rewindingState. The playback buffer
// only exists while rewinding.
type loopState interface {
	phase() Phase
}

type normalState struct{}

func (normalState) phase() Phase { return PhaseNormal }

type rewindingState struct {
	playback []Frame // Reversed copy of the finished recording
	cursor   int
	stride   int
}

func (*rewindingState) phase() Phase { return PhaseRewinding }

// Engine owns the cycle timer, the open recording and the ghosts.
type Engine struct {
	loop   config.LoopConfig
	camera config.CameraConfig
	player config.PlayerConfig

	state       loopState
	timer       float64
	loops       int
	speed       float64
	recording   []Frame
	cycleStartX float64
	ghosts      []*Ghost
	grace       float64
	effectTimer float64

	events []Event
}

// rewindEffectDuration is how long the glitch overlay lasts after a trigger.
const rewindEffectDuration = 0.8

// NewEngine creates an engine at the start of a run.
func NewEngine(cfg config.RewindConfig) *Engine {
	e := &Engine{
		loop:   cfg.Loop,
		camera: cfg.Camera,
		player: cfg.Player,
	}
	e.Reset()
	return e
}

// Reset discards all ghosts and progress for a new run.
func (e *Engine) Reset() {
	e.state = normalState{}
	e.timer = e.loop.CycleDuration
	e.loops = 0
	e.speed = 1
	e.recording = nil
	e.cycleStartX = e.player.StartX
	e.ghosts = nil
	e.grace = 0
	e.effectTimer = 0
	e.events = nil
}

// RecordFrame appends the player's pose to the open recording. The first
// frame of a cycle fixes where the player returns to after the rewind.
func (e *Engine) RecordFrame(p *Player) {
	if e.Phase() != PhaseNormal {
		return
	}
	if len(e.recording) == 0 {
		e.cycleStartX = p.X
	}
	e.recording = append(e.recording, p.Frame())
}

// Tick advances timers by dt. In normal play it counts the cycle down and
// triggers the rewind on expiry; while rewinding it scrubs the player
// backward. Ghost cursors advance once per tick in both phases.
func (e *Engine) Tick(dt float64, p *Player, cam Camera) {
	if e.grace > 0 {
		e.grace = math.Max(e.grace-dt, 0)
	}
	if e.effectTimer > 0 {
		e.effectTimer = math.Max(e.effectTimer-dt, 0)
	}
	for _, g := range e.ghosts {
		g.Advance()
	}

	if rw, ok := e.state.(*rewindingState); ok {
		e.scrub(rw, p, cam)
		return
	}

	e.timer -= dt
	if e.timer <= timerEpsilon {
		e.TriggerRewind(p, cam)
	}
}

// TriggerRewind closes the cycle: the recording becomes a ghost (if it has
// any frames), speed goes up, and the reverse scrub begins.
func (e *Engine) TriggerRewind(p *Player, cam Camera) {
	if e.Phase() == PhaseRewinding {
		return
	}

	e.loops++
	e.effectTimer = rewindEffectDuration
	e.emit(EventRewind, p)

	if len(e.recording) > 0 {
		e.ghosts = append(e.ghosts, NewGhost(e.recording, e.loops, p.W, p.H, e.loop.GhostInset))
		e.emit(EventGhostSpawned, p)
		if len(e.ghosts) > e.loop.MaxGhosts {
			e.ghosts[0] = nil
			e.ghosts = e.ghosts[1:]
			e.emit(EventGhostEvicted, p)
		}
	}

	e.speed *= e.loop.SpeedFactor
	e.emit(EventSpeedUp, p)

	playback := make([]Frame, len(e.recording))
	for i, f := range e.recording {
		playback[len(playback)-1-i] = f
	}
	e.state = &rewindingState{playback: playback, stride: ScrubStride(len(playback), e.loop.MinStride, e.loop.ScrubSteps)}

	// Not a death: the player is only non-interactive during the scrub.
	p.Alive = false
	cam.Shake(e.camera.RewindShake.Intensity, e.camera.RewindShake.Duration)
}

// ScrubStride returns how many frames one rewind tick consumes so a scrub
// takes about steps ticks whatever the recording length.
func ScrubStride(length, minStride, steps int) int {
	stride := length / steps
	if stride < minStride {
		stride = minStride
	}
	return stride
}

// scrub replays one stride of the reversed recording.
func (e *Engine) scrub(rw *rewindingState, p *Player, cam Camera) {
	for i := 0; i < rw.stride && rw.cursor < len(rw.playback); i++ {
		p.applyFrame(rw.playback[rw.cursor])
		rw.cursor++
	}

	if rw.cursor >= len(rw.playback) {
		e.finish(p, cam)
		return
	}
	cam.SetX(p.X - cam.ViewWidth()*e.camera.RewindLead)
}

// finish starts the next cycle from where the last one began.
func (e *Engine) finish(p *Player, cam Camera) {
	e.recording = e.recording[:0]
	e.timer = e.loop.CycleDuration

	p.X = e.cycleStartX
	p.Y = e.player.StartY
	p.VX = 0
	p.VY = 0
	p.GravityDir = 1
	p.SpeedMultiplier = e.speed
	p.Grounded = false
	p.Alive = true

	cam.SetX(p.X - e.camera.ResetOffset)

	for _, g := range e.ghosts {
		g.Restart()
	}

	e.grace = e.loop.GraceDuration
	e.state = normalState{}
	e.emit(EventRewindComplete, p)
}

func (e *Engine) emit(kind EventKind, p *Player) {
	e.events = append(e.events, Event{Kind: kind, Loop: e.loops, X: p.X, Y: p.Y})
}

// DrainEvents returns and clears the events emitted since the last drain.
func (e *Engine) DrainEvents() []Event {
	out := e.events
	e.events = nil
	return out
}

// Phase returns the current state tag.
func (e *Engine) Phase() Phase { return e.state.phase() }

// Loops returns the number of completed cycles.
func (e *Engine) Loops() int { return e.loops }

// SpeedMultiplier returns the speed the next cycle runs at.
func (e *Engine) SpeedMultiplier() float64 { return e.speed }

// Ghosts returns the active ghosts, oldest first. Callers must not modify it.
func (e *Engine) Ghosts() []*Ghost { return e.ghosts }

// Timer returns the seconds left in the current cycle.
func (e *Engine) Timer() float64 { return e.timer }

// Progress returns how far through the cycle play is, from 0 to 1.
func (e *Engine) Progress() float64 {
	return 1 - e.timer/e.loop.CycleDuration
}

// Grace returns the remaining invincibility time.
func (e *Engine) Grace() float64 { return e.grace }

// GraceActive reports whether DEAD outcomes should be ignored.
func (e *Engine) GraceActive() bool { return e.grace > 0 }

// EffectActive reports whether the post-trigger glitch overlay should show.
func (e *Engine) EffectActive() bool { return e.effectTimer > 0 }

// RecordingLen returns the number of frames in the open recording.
func (e *Engine) RecordingLen() int { return len(e.recording) }
