package sim

import (
	"math"

	"github.com/vovakirdan/rewind-arcade/internal/config"
	"github.com/vovakirdan/rewind-arcade/internal/core"
)

// Placement bands, relative to the floor line.
const (
	bladeMinLift    = 30.0
	bladeLiftRange  = 80.0
	bladeMinRadius  = 8.0
	bladeRadiusSpan = 6.0

	platformMinLift   = 40.0
	platformLiftRange = 80.0
	platformMinWidth  = 28.0
	platformWidthSpan = 15.0
	platformMinRange  = 15.0
	platformRangeSpan = 25.0
	platformMinSpeed  = 1.5

	doubleSpikeOffset   = 12.0
	doubleSpikeChance   = 0.4
	platformSpikeOffset = 20.0
	platformSpikeChance = 0.5
)

// Roll thresholds for the weighted hazard pick.
const (
	rollFloorSpike   = 0.35
	rollCeilingSpike = 0.55
	rollBlade        = 0.75
)

// Generator places hazards and platforms ahead of the camera.
// It keeps a spawn frontier that only ever moves right.
type Generator struct {
	cfg  config.GeneratorConfig
	phys config.PhysicsConfig
	diff *config.DifficultyManager
	rng  Random

	frontierX float64
	obstacles []Obstacle
	platforms []Platform
}

// NewGenerator creates a generator with its frontier at the configured start.
func NewGenerator(cfg config.GeneratorConfig, phys config.PhysicsConfig, diff *config.DifficultyManager, rng Random) *Generator {
	g := &Generator{
		cfg:  cfg,
		phys: phys,
		diff: diff,
		rng:  rng,
	}
	g.Reset()
	return g
}

// Reset clears all content and rewinds the frontier for a new run.
func (g *Generator) Reset() {
	g.frontierX = g.cfg.StartX
	g.obstacles = g.obstacles[:0]
	g.platforms = g.platforms[:0]
}

// Extend fills the world up to cameraX + viewWidth + lookahead.
// It returns the number of frontier steps taken.
func (g *Generator) Extend(cameraX, viewWidth float64, loops int) int {
	limit := cameraX + viewWidth + g.cfg.Lookahead
	steps := 0
	for g.frontierX < limit {
		g.step(loops)
		steps++
	}
	return steps
}

// step advances the frontier by one gap and places one hazard group there.
func (g *Generator) step(loops int) {
	gap := g.cfg.BaseGap*g.diff.GapScale(loops) + g.rng.Float64()*g.cfg.GapJitter
	g.frontierX += gap

	floorY := g.phys.FloorY
	ceilY := g.phys.CeilY
	x := g.frontierX

	roll := g.rng.Float64()
	switch {
	case roll < rollFloorSpike:
		g.obstacles = append(g.obstacles, NewSpike(x, floorY-SpikeSize, false))
		if g.diff.DoubleSpikes(loops) && g.rng.Float64() < doubleSpikeChance {
			g.obstacles = append(g.obstacles, NewSpike(x+doubleSpikeOffset, floorY-SpikeSize, false))
		}

	case roll < rollCeilingSpike:
		g.obstacles = append(g.obstacles, NewSpike(x, ceilY, true))

	case roll < rollBlade:
		y := floorY - bladeMinLift - g.rng.Float64()*bladeLiftRange
		radius := bladeMinRadius + g.rng.Float64()*bladeRadiusSpan
		// Short playfields pull the band inside the arena.
		radius = math.Min(radius, (floorY-ceilY)/2)
		y = core.ClampF(y, ceilY+radius, floorY-radius)
		g.obstacles = append(g.obstacles, NewBlade(x, y, radius))

	default:
		g.platforms = append(g.platforms, g.newPlatform(x))
		if g.diff.PlatformSpikes(loops) && g.rng.Float64() < platformSpikeChance {
			g.frontierX += platformSpikeOffset
			g.obstacles = append(g.obstacles, NewSpike(g.frontierX, floorY-SpikeSize, false))
		}
	}
}

// newPlatform rolls a moving platform at x. The base and any vertical sweep
// are clamped so the platform never leaves the space between ceiling and
// floor.
func (g *Generator) newPlatform(x float64) Platform {
	y := g.phys.FloorY - platformMinLift - g.rng.Float64()*platformLiftRange
	y = core.ClampF(y, g.phys.CeilY, g.phys.FloorY-PlatformHeight)
	axis := AxisHorizontal
	if g.rng.Float64() >= 0.5 {
		axis = AxisVertical
	}
	amplitude := platformMinRange + g.rng.Float64()*platformRangeSpan
	w := platformMinWidth + g.rng.Float64()*platformWidthSpan
	phase := g.rng.Float64() * math.Pi * 2
	speed := platformMinSpeed + g.rng.Float64()

	if axis == AxisVertical {
		amplitude = math.Min(amplitude, g.phys.FloorY-PlatformHeight-y)
		amplitude = math.Min(amplitude, y-g.phys.CeilY)
		amplitude = math.Max(amplitude, 0)
	}

	return NewPlatform(x, y, w, PlatformHeight, axis, amplitude, phase, speed)
}

// Advance moves kinematic geometry: platforms oscillate, blades spin.
func (g *Generator) Advance(dt float64) {
	for i := range g.platforms {
		g.platforms[i].advance(dt)
	}
	for i := range g.obstacles {
		if g.obstacles[i].Kind == KindBlade {
			g.obstacles[i].Angle += BladeRotSpeed * dt
		}
	}
}

// Cull drops content whose trailing edge is at or behind cameraX - margin.
func (g *Generator) Cull(cameraX float64) {
	cutoff := cameraX - g.cfg.CullMargin

	kept := g.obstacles[:0]
	for _, o := range g.obstacles {
		if ObstacleBox(o).Right() > cutoff {
			kept = append(kept, o)
		}
	}
	g.obstacles = kept

	plats := g.platforms[:0]
	for _, p := range g.platforms {
		if platformTrailingEdge(p) > cutoff {
			plats = append(plats, p)
		}
	}
	g.platforms = plats
}

// Frontier returns the rightmost x content has been generated to.
func (g *Generator) Frontier() float64 { return g.frontierX }

// Obstacles returns the live obstacles. Callers must not retain the slice
// across ticks.
func (g *Generator) Obstacles() []Obstacle { return g.obstacles }

// Platforms returns the live platforms. Callers must not retain the slice
// across ticks.
func (g *Generator) Platforms() []Platform { return g.platforms }
