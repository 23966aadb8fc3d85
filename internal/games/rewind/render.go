package rewind

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/rewind-arcade/internal/core"
	"github.com/vovakirdan/rewind-arcade/internal/games/rewind/sim"
)

// Visual characters for rendering
const (
	PlayerChar     = '█'
	GhostChar      = '▓'
	FloorSpikeChar = '▲'
	CeilSpikeChar  = '▼'
	PlatformChar   = '▬'
	GroundChar     = '═'
	ZoneChar       = '░'
	BarFull        = '█'
	BarEmpty       = '░'
)

var bladeFrames = []rune{'|', '/', '─', '\\'}

const (
	HUDRows     = 1 // Screen rows taken by the status line
	barWidth    = 12
	urgentTimer = 3.0
	flashTicks  = 6 // Grace flashing half-period
)

// viewport maps world units onto the screen for one frame.
type viewport struct {
	camX, shakeY float64
	scaleX       float64
	scaleY       float64
	width        int
	height       int
}

func newViewport(s *sim.Snapshot, dst *core.Screen) viewport {
	worldH := s.FloorY + s.CeilY
	return viewport{
		camX:   s.Camera.X + s.Camera.OffsetX,
		shakeY: s.Camera.OffsetY,
		scaleX: float64(dst.Width()) / s.Camera.ViewWidth,
		scaleY: float64(dst.Height()-HUDRows) / worldH,
		width:  dst.Width(),
		height: dst.Height(),
	}
}

func (v viewport) col(x float64) int {
	return int(math.Floor((x - v.camX) * v.scaleX))
}

func (v viewport) row(y float64) int {
	return HUDRows + int(math.Floor((y+v.shakeY)*v.scaleY))
}

// rect converts a world box to a cell rectangle at least one cell large.
func (v viewport) rect(b core.Box) core.Rect {
	x0, y0 := v.col(b.X), v.row(b.Y)
	x1 := int(math.Ceil((b.Right() - v.camX) * v.scaleX))
	y1 := HUDRows + int(math.Ceil((b.Bottom()+v.shakeY)*v.scaleY))
	return core.NewRect(x0, y0, core.Max(x1-x0, 1), core.Max(y1-y0, 1))
}

func fill(dst *core.Screen, r core.Rect, ch rune, c core.Color) {
	for y := r.Y; y < r.Bottom(); y++ {
		if y < HUDRows {
			continue
		}
		for x := r.X; x < r.Right(); x++ {
			dst.SetColored(x, y, ch, c)
		}
	}
}

// zoneColors gives each gravity zone kind its own hue.
var zoneColors = map[sim.ZoneKind]core.Color{
	sim.ZoneHeavy:    core.ColorMagenta,
	sim.ZoneLow:      core.ColorCyan,
	sim.ZoneSideways: core.ColorYellow,
	sim.ZoneChaotic:  core.ColorOrange,
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.world == nil {
		return
	}

	s := g.world.Snapshot()
	v := newViewport(&s, dst)

	g.drawZones(dst, v, &s)
	g.drawBounds(dst, v, &s)

	for _, p := range s.Platforms {
		fill(dst, v.rect(sim.PlatformBox(p)), PlatformChar, core.ColorGreen)
	}
	for _, o := range s.Obstacles {
		g.drawObstacle(dst, v, o)
	}
	for i, gh := range s.Ghosts {
		// The newest ghost is the brightest.
		color := core.ColorRed
		if i == len(s.Ghosts)-1 {
			color = core.ColorBrightRed
		}
		fill(dst, v.rect(gh.Box), GhostChar, color)
	}

	g.drawPlayer(dst, v, &s)
	g.drawHUD(dst, &s)

	if s.Phase == sim.PhaseRewinding {
		g.drawRewindOverlay(dst)
	}
	if g.paused {
		g.drawCenteredMessage(dst, []string{"PAUSED", "Press P to resume"})
	}
	if g.gameOver {
		g.drawGameOver(dst)
	}
}

func (g *Game) drawZones(dst *core.Screen, v viewport, s *sim.Snapshot) {
	for _, z := range s.Zones {
		r := v.rect(sim.ZoneBox(z))
		color := zoneColors[z.Kind]
		fill(dst, r, ZoneChar, color)

		label := z.Kind.Label()
		if z.Kind == sim.ZoneSideways {
			if z.Dir > 0 {
				label += "→"
			} else {
				label = "←" + label
			}
		}
		if len([]rune(label)) <= r.W {
			dst.DrawTextColored(r.X+(r.W-len([]rune(label)))/2, r.Y, label, color)
		}
	}
}

func (g *Game) drawBounds(dst *core.Screen, v viewport, s *sim.Snapshot) {
	dst.DrawHLine(0, v.row(s.CeilY)-1, dst.Width(), GroundChar)
	dst.DrawHLine(0, v.row(s.FloorY), dst.Width(), GroundChar)
}

func (g *Game) drawObstacle(dst *core.Screen, v viewport, o sim.Obstacle) {
	switch o.Kind {
	case sim.KindBlade:
		frame := int(o.Angle/(math.Pi/4)) % len(bladeFrames)
		if frame < 0 {
			frame += len(bladeFrames)
		}
		fill(dst, v.rect(sim.ObstacleBox(o)), bladeFrames[frame], core.ColorOrange)
	default:
		ch := FloorSpikeChar
		if o.OnCeiling {
			ch = CeilSpikeChar
		}
		fill(dst, v.rect(sim.ObstacleBox(o)), ch, core.ColorBrightRed)
	}
}

func (g *Game) drawPlayer(dst *core.Screen, v viewport, s *sim.Snapshot) {
	// Flash while invincible.
	if s.Grace > 0 && (s.Tick/flashTicks)%2 == 1 {
		return
	}
	color := core.ColorBrightCyan
	switch {
	case s.Phase == sim.PhaseRewinding:
		color = core.ColorBrightMagenta
	case s.Player.GravityDir < 0:
		color = core.ColorBrightYellow
	}
	p := s.Player
	fill(dst, v.rect(core.Box{X: p.X, Y: p.Y, W: p.W, H: p.H}), PlayerChar, color)
}

// drawHUD renders loop count, speed and the rewind countdown bar.
func (g *Game) drawHUD(dst *core.Screen, s *sim.Snapshot) {
	dst.DrawTextColored(1, 0, fmt.Sprintf("LOOP %d", s.Loops), core.ColorBrightCyan)
	dst.DrawTextColored(10, 0, fmt.Sprintf("×%.1f", s.Speed), core.ColorBrightYellow)

	filled := int(math.Round(core.ClampF(s.Progress, 0, 1) * barWidth))
	bar := strings.Repeat(string(BarFull), filled) + strings.Repeat(string(BarEmpty), barWidth-filled)

	barColor := core.ColorBrightGreen
	if s.Timer < urgentTimer {
		barColor = core.ColorBrightRed
	}
	remaining := fmt.Sprintf("REWIND %ds", int(math.Ceil(math.Max(s.Timer, 0))))

	x := dst.Width() - barWidth - len(remaining) - 3
	if x > 18 {
		dst.DrawTextColored(x, 0, bar, barColor)
		dst.DrawTextColored(x+barWidth+1, 0, remaining, barColor)
	}

	if len(s.Ghosts) > 0 && x > 30 {
		dst.DrawTextColored(18, 0, fmt.Sprintf("GHOSTS %d", len(s.Ghosts)), core.ColorRed)
	}
}

func (g *Game) drawRewindOverlay(dst *core.Screen) {
	msg := "◀◀ REWIND ◀◀"
	y := dst.Height() / 3
	x := (dst.Width() - len([]rune(msg))) / 2
	dst.DrawTextColored(x, y, msg, core.ColorBrightMagenta)
}

func (g *Game) drawGameOver(dst *core.Screen) {
	st := g.stats
	g.drawCenteredMessage(dst, []string{
		"DEAD",
		fmt.Sprintf("LOOPS SURVIVED: %d", st.Loops),
		fmt.Sprintf("DISTANCE: %dm", int(st.Distance)),
		fmt.Sprintf("GHOSTS: %d", st.Ghosts),
		fmt.Sprintf("MAX SPEED: ×%.1f", st.MaxSpeed),
		"Press R to restart",
	})
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, lines []string) {
	w := dst.Width()
	h := dst.Height()

	boxW := 0
	for _, l := range lines {
		boxW = core.Max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := len(lines) + 2
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	for i, l := range lines {
		color := core.ColorDefault
		if i == 0 {
			color = core.ColorBrightRed
		}
		x := boxX + (boxW-len([]rune(l)))/2
		dst.DrawTextColored(x, boxY+1+i, l, color)
	}
}
