package sim

import (
	"github.com/vovakirdan/rewind-arcade/internal/config"
	"github.com/vovakirdan/rewind-arcade/internal/core"
)

// Outcome is the result of one physics step.
type Outcome int

const (
	Alive Outcome = iota
	Dead
)

// String returns "ALIVE" or "DEAD".
func (o Outcome) String() string {
	if o == Dead {
		return "DEAD"
	}
	return "ALIVE"
}

// Modifiers are the gravity effects active for one tick.
type Modifiers struct {
	GravityMult float64
	Lateral     float64
	Chaotic     bool
}

// Physics integrates gravity and resolves contact and lethal overlap.
// It owns no entities; everything is passed to Step.
type Physics struct {
	cfg config.PhysicsConfig
	rng Random
}

// NewPhysics creates a physics resolver. rng drives chaotic zone flips.
func NewPhysics(cfg config.PhysicsConfig, rng Random) *Physics {
	return &Physics{cfg: cfg, rng: rng}
}

// Modifiers scans zones overlapping box. Each effect slot is overwritten by
// the last matching zone in iteration order; nothing is combined.
func (ph *Physics) Modifiers(box core.Box, zones []Zone) Modifiers {
	m := Modifiers{GravityMult: 1}
	for _, z := range zones {
		if !box.Overlaps(ZoneBox(z)) {
			continue
		}
		switch z.Kind {
		case ZoneHeavy:
			m.GravityMult = ph.cfg.HeavyMultiplier
		case ZoneLow:
			m.GravityMult = ph.cfg.LowMultiplier
		case ZoneSideways:
			m.Lateral = z.Dir * ph.cfg.SidewaysForce
		case ZoneChaotic:
			m.Chaotic = true
		}
	}
	return m
}

// Step advances the player by dt and reports whether it survived.
// Dead is advisory; the caller decides whether to honor it.
func (ph *Physics) Step(dt float64, p *Player, obstacles []Obstacle, platforms []Platform, zones []Zone, ghosts []*Ghost) Outcome {
	mod := ph.Modifiers(p.Box(), zones)
	if mod.Chaotic && ph.rng.Float64() < ph.cfg.ChaosFlipChance {
		p.GravityDir = -p.GravityDir
	}

	dir := float64(p.GravityDir)
	p.VY += ph.cfg.Gravity * dir * mod.GravityMult * dt
	p.VX += mod.Lateral * dt
	p.Y += p.VY * dt

	ph.resolveBounds(p)
	ph.resolvePlatforms(dt, p, platforms)

	box := p.Box()
	for _, o := range obstacles {
		if box.Overlaps(ObstacleBox(o)) {
			return Dead
		}
	}
	for _, g := range ghosts {
		if box.Overlaps(g.Box()) {
			return Dead
		}
	}
	if p.Y > ph.cfg.FloorY+ph.cfg.OutOfBounds || p.Y < ph.cfg.CeilY-ph.cfg.OutOfBounds {
		return Dead
	}
	return Alive
}

// resolveBounds stops the player at the floor and ceiling. Only the
// surface gravity pulls toward grounds the player.
func (ph *Physics) resolveBounds(p *Player) {
	p.Grounded = false
	floor := ph.cfg.FloorY - p.H
	ceil := ph.cfg.CeilY

	if p.Y >= floor {
		p.Y = floor
		p.VY = 0
		if p.GravityDir == 1 {
			p.Grounded = true
		}
	}
	if p.Y <= ceil {
		p.Y = ceil
		p.VY = 0
		if p.GravityDir == -1 {
			p.Grounded = true
		}
	}
}

// resolvePlatforms lands the player on the face of a platform that faces
// against gravity. The previous position is approximated from this tick's
// velocity, so very fast approaches can tunnel through.
func (ph *Physics) resolvePlatforms(dt float64, p *Player, platforms []Platform) {
	tol := ph.cfg.LandingTolerance
	for _, plat := range platforms {
		pb := PlatformBox(plat)
		box := p.Box()
		if !box.Overlaps(pb) {
			continue
		}

		if p.GravityDir == 1 {
			if p.VY > 0 && box.Bottom()-p.VY*dt <= pb.Y+tol {
				p.Y = pb.Y - p.H
				p.VY = 0
				p.Grounded = true
			}
		} else {
			if p.VY < 0 && box.Y-p.VY*dt >= pb.Bottom()-tol {
				p.Y = pb.Bottom()
				p.VY = 0
				p.Grounded = true
			}
		}
	}
}
