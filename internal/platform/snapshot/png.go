// Package snapshot rasterizes world snapshots to PNG images.
package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"

	"github.com/vovakirdan/rewind-arcade/internal/core"
	"github.com/vovakirdan/rewind-arcade/internal/games/rewind/sim"
)

// Options controls the raster output.
type Options struct {
	Scale     float64 // Pixels per world unit, 0 means 3
	Scanlines bool
}

var (
	colorBackground = color.RGBA{12, 10, 28, 255}
	colorBounds     = color.RGBA{60, 50, 110, 255}
	colorSpike      = color.RGBA{255, 60, 90, 255}
	colorBlade      = color.RGBA{255, 150, 40, 255}
	colorPlatform   = color.RGBA{80, 220, 140, 255}
	colorPlayer     = color.RGBA{80, 240, 255, 255}
	colorRewinding  = color.RGBA{255, 80, 255, 255}
	colorGhost      = color.RGBA{255, 40, 60, 110}
	colorHUD        = color.RGBA{230, 230, 255, 255}
	colorScanline   = color.RGBA{0, 0, 0, 70}
)

var zoneFill = map[sim.ZoneKind]color.RGBA{
	sim.ZoneHeavy:    {200, 60, 220, 60},
	sim.ZoneLow:      {60, 200, 255, 60},
	sim.ZoneSideways: {240, 220, 60, 60},
	sim.ZoneChaotic:  {255, 140, 40, 60},
}

// Render draws the snapshot into a new image.
func Render(s *sim.Snapshot, opts Options) image.Image {
	return draw(s, opts).Image()
}

// WritePNG encodes the snapshot as PNG to w.
func WritePNG(w io.Writer, s *sim.Snapshot, opts Options) error {
	if err := draw(s, opts).EncodePNG(w); err != nil {
		return fmt.Errorf("snapshot: cannot encode png: %w", err)
	}
	return nil
}

// SavePNG writes the snapshot as a PNG file.
func SavePNG(path string, s *sim.Snapshot, opts Options) error {
	if err := draw(s, opts).SavePNG(path); err != nil {
		return fmt.Errorf("snapshot: cannot save %s: %w", path, err)
	}
	return nil
}

// Size returns the pixel dimensions Render produces.
func Size(s *sim.Snapshot, opts Options) (int, int) {
	scale := opts.scale()
	return int(math.Ceil(s.Camera.ViewWidth * scale)), int(math.Ceil((s.FloorY + s.CeilY) * scale))
}

func (o Options) scale() float64 {
	if o.Scale <= 0 {
		return 3
	}
	return o.Scale
}

func draw(s *sim.Snapshot, opts Options) *gg.Context {
	w, h := Size(s, opts)
	dc := gg.NewContext(w, h)

	dc.SetColor(colorBackground)
	dc.DrawRectangle(0, 0, float64(w), float64(h))
	dc.Fill()

	// World space from here on: camera and shake applied once.
	dc.Push()
	dc.Scale(opts.scale(), opts.scale())
	dc.Translate(-(s.Camera.X + s.Camera.OffsetX), s.Camera.OffsetY)

	drawZones(dc, s)
	drawBounds(dc, s)
	for _, p := range s.Platforms {
		drawBox(dc, sim.PlatformBox(p), colorPlatform)
	}
	for _, o := range s.Obstacles {
		drawObstacle(dc, o)
	}
	for _, g := range s.Ghosts {
		drawBox(dc, g.Box, colorGhost)
	}
	drawPlayer(dc, s)
	dc.Pop()

	drawHUD(dc, s)
	if opts.Scanlines {
		drawScanlines(dc, w, h)
	}
	return dc
}

func drawBox(dc *gg.Context, b core.Box, c color.Color) {
	dc.SetColor(c)
	dc.DrawRectangle(b.X, b.Y, b.W, b.H)
	dc.Fill()
}

func drawZones(dc *gg.Context, s *sim.Snapshot) {
	for _, z := range s.Zones {
		fill := zoneFill[z.Kind]
		drawBox(dc, sim.ZoneBox(z), fill)

		dc.SetColor(color.RGBA{fill.R, fill.G, fill.B, 255})
		dc.SetLineWidth(0.5)
		dc.DrawRectangle(z.X, z.Y, z.W, z.H)
		dc.Stroke()
	}
}

func drawBounds(dc *gg.Context, s *sim.Snapshot) {
	left := s.Camera.X - s.Camera.ViewWidth
	width := s.Camera.ViewWidth * 3
	dc.SetColor(colorBounds)
	dc.DrawRectangle(left, 0, width, s.CeilY)
	dc.DrawRectangle(left, s.FloorY, width, s.CeilY)
	dc.Fill()
}

func drawObstacle(dc *gg.Context, o sim.Obstacle) {
	switch o.Kind {
	case sim.KindBlade:
		dc.Push()
		dc.RotateAbout(o.Angle, o.X, o.Y)
		dc.SetColor(colorBlade)
		dc.DrawRegularPolygon(4, o.X, o.Y, o.Radius, 0)
		dc.Fill()
		dc.Pop()
	default:
		dc.SetColor(colorSpike)
		if o.OnCeiling {
			dc.MoveTo(o.X, o.Y)
			dc.LineTo(o.X+sim.SpikeSize, o.Y)
			dc.LineTo(o.X+sim.SpikeSize/2, o.Y+sim.SpikeSize)
		} else {
			dc.MoveTo(o.X, o.Y+sim.SpikeSize)
			dc.LineTo(o.X+sim.SpikeSize, o.Y+sim.SpikeSize)
			dc.LineTo(o.X+sim.SpikeSize/2, o.Y)
		}
		dc.ClosePath()
		dc.Fill()
	}
}

func drawPlayer(dc *gg.Context, s *sim.Snapshot) {
	p := s.Player
	c := colorPlayer
	if s.Phase == sim.PhaseRewinding {
		c = colorRewinding
	}
	if s.Grace > 0 {
		c.A = 150
	}
	drawBox(dc, core.Box{X: p.X, Y: p.Y, W: p.W, H: p.H}, c)
}

func drawHUD(dc *gg.Context, s *sim.Snapshot) {
	dc.SetColor(colorHUD)
	dc.DrawString(fmt.Sprintf("LOOP %d  x%.1f  GHOSTS %d", s.Loops, s.Speed, len(s.Ghosts)), 8, 16)

	w := float64(dc.Width())
	barW := w / 4
	dc.SetColor(colorBounds)
	dc.DrawRectangle(w-barW-8, 6, barW, 8)
	dc.Fill()

	bar := colorPlatform
	if s.Timer < 3 {
		bar = colorSpike
	}
	dc.SetColor(bar)
	dc.DrawRectangle(w-barW-8, 6, barW*core.ClampF(s.Progress, 0, 1), 8)
	dc.Fill()

	if s.Phase == sim.PhaseRewinding {
		dc.SetColor(colorRewinding)
		dc.DrawStringAnchored("<< REWIND <<", w/2, float64(dc.Height())/3, 0.5, 0.5)
	}
}

func drawScanlines(dc *gg.Context, w, h int) {
	dc.SetColor(colorScanline)
	for y := 0; y < h; y += 2 {
		dc.DrawRectangle(0, float64(y), float64(w), 1)
	}
	dc.Fill()
}
