package sim

import (
	"math"

	"github.com/vovakirdan/rewind-arcade/internal/config"
)

// seqRandom replays a fixed sequence of draws, cycling when exhausted.
type seqRandom struct {
	vals []float64
	i    int
}

func newSeq(vals ...float64) *seqRandom {
	return &seqRandom{vals: vals}
}

func (s *seqRandom) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

// recordingCamera is a Camera that remembers what the engine asked of it.
type recordingCamera struct {
	x      float64
	width  float64
	shakes []float64
}

func (c *recordingCamera) X() float64         { return c.x }
func (c *recordingCamera) SetX(x float64)     { c.x = x }
func (c *recordingCamera) ViewWidth() float64 { return c.width }
func (c *recordingCamera) Shake(i, _ float64) { c.shakes = append(c.shakes, i) }

func newRecordingCamera() *recordingCamera {
	return &recordingCamera{width: 384}
}

// emptyWorldConfig returns the defaults with generation pushed out of reach,
// so no hazards, platforms or zones ever spawn.
func emptyWorldConfig() config.RewindConfig {
	cfg := config.DefaultRewindConfig()
	cfg.Generator.StartX = math.Inf(1)
	cfg.Zones.StartX = math.Inf(1)
	return cfg
}

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
