package sim

import (
	"math"

	"github.com/vovakirdan/rewind-arcade/internal/config"
)

// ZoneField spawns gravity zones ahead of the camera. Zones never move
// once placed; they only get culled.
type ZoneField struct {
	cfg  config.ZoneConfig
	phys config.PhysicsConfig
	rng  Random

	frontierX float64
	zones     []Zone
}

// NewZoneField creates an empty field with its frontier at the configured start.
func NewZoneField(cfg config.ZoneConfig, phys config.PhysicsConfig, rng Random) *ZoneField {
	f := &ZoneField{cfg: cfg, phys: phys, rng: rng}
	f.Reset()
	return f
}

// Reset clears all zones for a new run.
func (f *ZoneField) Reset() {
	f.frontierX = f.cfg.StartX
	f.zones = f.zones[:0]
}

// SpawnChance is the probability that a frontier step places a zone.
func (f *ZoneField) SpawnChance(loops int) float64 {
	return math.Min(f.cfg.BaseChance+float64(loops)*f.cfg.ChancePerLoop, f.cfg.MaxChance)
}

// MinGap is the smallest frontier step for the given loop count.
func (f *ZoneField) MinGap(loops int) float64 {
	return math.Max(f.cfg.BaseGap-float64(loops)*f.cfg.GapPerLoop, f.cfg.MinGap)
}

// Extend steps the frontier up to cameraX + viewWidth + lookahead and
// returns the number of zones spawned.
func (f *ZoneField) Extend(cameraX, viewWidth float64, loops int) int {
	limit := cameraX + viewWidth + f.cfg.Lookahead
	chance := f.SpawnChance(loops)
	gap := f.MinGap(loops)

	spawned := 0
	for f.frontierX < limit {
		f.frontierX += gap + f.rng.Float64()*f.cfg.GapJitter
		if f.rng.Float64() < chance {
			f.zones = append(f.zones, f.newZone(f.frontierX))
			spawned++
		}
	}
	return spawned
}

// newZone rolls a zone at x that fits entirely between ceiling and floor.
func (f *ZoneField) newZone(x float64) Zone {
	idx := int(f.rng.Float64() * float64(len(zoneKinds)))
	if idx >= len(zoneKinds) {
		idx = len(zoneKinds) - 1
	}
	w := uniform(f.rng, f.cfg.MinWidth, f.cfg.MaxWidth)
	h := uniform(f.rng, f.cfg.MinHeight, f.cfg.MaxHeight)
	span := f.phys.FloorY - f.phys.CeilY
	y := f.phys.CeilY + f.rng.Float64()*(span-h)
	dir := 1.0
	if f.rng.Float64() >= 0.5 {
		dir = -1
	}
	return Zone{Kind: zoneKinds[idx], X: x, Y: y, W: w, H: h, Dir: dir}
}

// Cull drops zones whose right edge is at or behind cameraX - margin.
func (f *ZoneField) Cull(cameraX float64) {
	cutoff := cameraX - f.cfg.CullMargin
	kept := f.zones[:0]
	for _, z := range f.zones {
		if ZoneBox(z).Right() > cutoff {
			kept = append(kept, z)
		}
	}
	f.zones = kept
}

// Frontier returns the rightmost x zones have been considered up to.
func (f *ZoneField) Frontier() float64 { return f.frontierX }

// Zones returns the live zones. Callers must not retain the slice across ticks.
func (f *ZoneField) Zones() []Zone { return f.zones }
