package sim

import "github.com/vovakirdan/rewind-arcade/internal/core"

// Frame is one recorded tick of the player's trajectory.
type Frame struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	GravityDir int     `json:"gravityDir"`
	AnimFrame  int     `json:"animFrame"`
}

// Ghost replays a finished cycle. Its frames never change after creation;
// only the cursor moves. Ghosts are always created with at least one frame.
type Ghost struct {
	frames []Frame
	cursor int
	loop   int // Loop number that produced this ghost

	w, h, inset float64
}

// NewGhost creates a ghost from a recording. The recording is copied.
func NewGhost(recording []Frame, loop int, w, h, inset float64) *Ghost {
	frames := make([]Frame, len(recording))
	copy(frames, recording)
	return &Ghost{frames: frames, loop: loop, w: w, h: h, inset: inset}
}

// Advance moves the cursor one frame, wrapping to the start when exhausted.
func (g *Ghost) Advance() {
	g.cursor++
	if g.cursor >= len(g.frames) {
		g.cursor = 0
	}
}

// Restart moves the cursor back to the first frame.
func (g *Ghost) Restart() {
	g.cursor = 0
}

// Pose returns the frame under the cursor.
func (g *Ghost) Pose() Frame {
	return g.frames[g.cursor]
}

// Box returns the ghost's lethal area at its current pose.
func (g *Ghost) Box() core.Box {
	return GhostBox(g.Pose(), g.w, g.h, g.inset)
}

// Cursor returns the current frame index.
func (g *Ghost) Cursor() int { return g.cursor }

// Len returns the number of recorded frames.
func (g *Ghost) Len() int { return len(g.frames) }

// Loop returns the loop number that produced this ghost.
func (g *Ghost) Loop() int { return g.loop }
