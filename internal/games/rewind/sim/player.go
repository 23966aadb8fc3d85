package sim

import (
	"github.com/vovakirdan/rewind-arcade/internal/config"
	"github.com/vovakirdan/rewind-arcade/internal/core"
)

// Input is the per-tick gesture state. Each flag is true for exactly one
// tick per gesture; the simulation never sees raw key events.
type Input struct {
	Jump bool
	Flip bool
}

// Player is the auto-running body. Physics writes position, velocity and
// grounded; the rewind engine writes resets and the speed multiplier;
// Advance applies input.
type Player struct {
	X, Y   float64
	VX, VY float64
	W, H   float64

	GravityDir      int // +1 pulls down, -1 pulls up
	Grounded        bool
	Alive           bool
	SpeedMultiplier float64
	AnimFrame       int

	frameTimer float64
	cfg        config.PlayerConfig
}

// NewPlayer creates a player at its configured start.
func NewPlayer(cfg config.PlayerConfig) *Player {
	p := &Player{cfg: cfg}
	p.Reset()
	return p
}

// Reset re-initializes the player for a new run (not a new loop).
func (p *Player) Reset() {
	p.X = p.cfg.StartX
	p.Y = p.cfg.StartY
	p.VX = 0
	p.VY = 0
	p.W = p.cfg.Width
	p.H = p.cfg.Height
	p.GravityDir = 1
	p.Grounded = false
	p.Alive = true
	p.SpeedMultiplier = 1
	p.AnimFrame = 0
	p.frameTimer = 0
}

// Advance applies input, animation and the horizontal move for one tick.
// It reports which gestures took effect. A player that is not alive
// (dead or mid-rewind) ignores everything.
//
// The move uses the velocity left by the previous tick, so a lateral push
// that physics added last tick is spent here before auto-run resets vx.
func (p *Player) Advance(dt float64, in Input) (jumped, flipped bool) {
	if !p.Alive {
		return false, false
	}

	if in.Jump && p.Grounded {
		p.VY = p.cfg.JumpForce * float64(p.GravityDir)
		p.Grounded = false
		jumped = true
	}

	if in.Flip {
		p.GravityDir = -p.GravityDir
		p.Grounded = false
		flipped = true
	}

	p.frameTimer += dt
	if p.frameTimer > p.cfg.AnimInterval {
		p.frameTimer = 0
		p.AnimFrame = (p.AnimFrame + 1) % p.cfg.AnimFrames
	}

	p.X += p.VX * dt
	p.VX = p.cfg.BaseSpeed * p.SpeedMultiplier

	return jumped, flipped
}

// Box returns the player's collision box.
func (p *Player) Box() core.Box {
	return PlayerBox(p)
}

// Frame captures the replayable pose of the player.
func (p *Player) Frame() Frame {
	return Frame{X: p.X, Y: p.Y, GravityDir: p.GravityDir, AnimFrame: p.AnimFrame}
}

// applyFrame poses the player from a recorded frame.
func (p *Player) applyFrame(f Frame) {
	p.X = f.X
	p.Y = f.Y
	p.GravityDir = f.GravityDir
	p.AnimFrame = f.AnimFrame
}
