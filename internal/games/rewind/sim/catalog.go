package sim

import (
	"math"

	"github.com/vovakirdan/rewind-arcade/internal/core"
)

// Fixed hazard dimensions.
const (
	SpikeSize        = 10.0
	BladeRotSpeed    = 5.0 // Radians per second, presentation only
	BladeHitFraction = 0.7 // Fraction of the radius that is lethal
	PlatformHeight   = 5.0
)

// ObstacleKind identifies a lethal hazard.
type ObstacleKind int

const (
	KindSpike ObstacleKind = iota
	KindBlade
)

// String returns a human-readable name for the kind.
func (k ObstacleKind) String() string {
	switch k {
	case KindSpike:
		return "spike"
	case KindBlade:
		return "blade"
	default:
		return "unknown"
	}
}

// Obstacle is a lethal hazard. Spikes use X/Y as their top-left corner;
// blades use X/Y as their center.
type Obstacle struct {
	Kind      ObstacleKind `json:"kind"`
	X         float64      `json:"x"`
	Y         float64      `json:"y"`
	OnCeiling bool         `json:"onCeiling,omitempty"`
	Radius    float64      `json:"radius,omitempty"`
	Angle     float64      `json:"angle,omitempty"`
}

// NewSpike creates a spike with its top-left corner at (x, y).
func NewSpike(x, y float64, onCeiling bool) Obstacle {
	return Obstacle{Kind: KindSpike, X: x, Y: y, OnCeiling: onCeiling}
}

// NewBlade creates a rotating blade centered at (x, y).
func NewBlade(x, y, radius float64) Obstacle {
	return Obstacle{Kind: KindBlade, X: x, Y: y, Radius: radius}
}

// ObstacleBox returns the lethal area of an obstacle.
// Spikes shave one unit off each side and two off the top; blades only
// hurt within 70% of their radius.
func ObstacleBox(o Obstacle) core.Box {
	switch o.Kind {
	case KindBlade:
		r := o.Radius * BladeHitFraction
		return core.Box{X: o.X - r, Y: o.Y - r, W: r * 2, H: r * 2}
	default:
		return core.Box{X: o.X + 1, Y: o.Y + 2, W: SpikeSize - 2, H: SpikeSize - 2}
	}
}

// Axis is the direction a platform oscillates along.
type Axis int

const (
	AxisHorizontal Axis = iota
	AxisVertical
)

// Platform is kinematic solid ground. It oscillates around its base
// position and never kills.
type Platform struct {
	BaseX float64 `json:"baseX"`
	BaseY float64 `json:"baseY"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	W     float64 `json:"w"`
	H     float64 `json:"h"`
	Axis  Axis    `json:"axis"`
	Range float64 `json:"range"`
	Phase float64 `json:"phase"`
	Speed float64 `json:"speed"`
}

// NewPlatform creates a platform already placed at its starting phase.
func NewPlatform(x, y, w, h float64, axis Axis, amplitude, phase, speed float64) Platform {
	p := Platform{
		BaseX: x, BaseY: y,
		W: w, H: h,
		Axis:  axis,
		Range: amplitude,
		Phase: phase,
		Speed: speed,
	}
	p.place()
	return p
}

// advance moves the platform along its axis.
func (p *Platform) advance(dt float64) {
	p.Phase += dt * p.Speed
	p.place()
}

func (p *Platform) place() {
	offset := math.Sin(p.Phase) * p.Range
	p.X, p.Y = p.BaseX, p.BaseY
	if p.Axis == AxisHorizontal {
		p.X += offset
	} else {
		p.Y += offset
	}
}

// PlatformBox returns the solid area of a platform at its current position.
func PlatformBox(p Platform) core.Box {
	return core.Box{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// platformTrailingEdge is the rightmost x the platform can ever reach.
func platformTrailingEdge(p Platform) float64 {
	right := p.BaseX + p.W
	if p.Axis == AxisHorizontal {
		right += p.Range
	}
	return right
}

// ZoneKind identifies a gravity zone effect.
type ZoneKind int

const (
	ZoneHeavy ZoneKind = iota
	ZoneLow
	ZoneSideways
	ZoneChaotic
)

var zoneKinds = [...]ZoneKind{ZoneHeavy, ZoneLow, ZoneSideways, ZoneChaotic}

// String returns the kind's config name.
func (k ZoneKind) String() string {
	switch k {
	case ZoneHeavy:
		return "heavy"
	case ZoneLow:
		return "low"
	case ZoneSideways:
		return "sideways"
	case ZoneChaotic:
		return "chaotic"
	default:
		return "unknown"
	}
}

// Label returns the short HUD label drawn inside the zone.
func (k ZoneKind) Label() string {
	switch k {
	case ZoneHeavy:
		return "HEAVY"
	case ZoneLow:
		return "LOW-G"
	case ZoneSideways:
		return "PULL"
	case ZoneChaotic:
		return "CHAOS"
	default:
		return "?"
	}
}

// Zone is a static rectangle that modifies gravity while overlapped.
type Zone struct {
	Kind ZoneKind `json:"kind"`
	X    float64  `json:"x"`
	Y    float64  `json:"y"`
	W    float64  `json:"w"`
	H    float64  `json:"h"`
	Dir  float64  `json:"dir"` // Lateral direction for sideways zones, +1 or -1
}

// ZoneBox returns the area of a zone.
func ZoneBox(z Zone) core.Box {
	return core.Box{X: z.X, Y: z.Y, W: z.W, H: z.H}
}

// PlayerBox returns the player's collision box.
func PlayerBox(p *Player) core.Box {
	return core.Box{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// GhostBox returns the lethal area of a ghost posed at f.
// Ghosts are a little more forgiving than the player's own body.
func GhostBox(f Frame, w, h, inset float64) core.Box {
	return core.Box{X: f.X + inset, Y: f.Y + inset, W: w - inset*2, H: h - inset*2}
}
