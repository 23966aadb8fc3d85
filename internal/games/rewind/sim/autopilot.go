package sim

import "github.com/vovakirdan/rewind-arcade/internal/core"

// Autopilot is a reactive bot used for headless runs and the spectator
// feed. It jumps when a lethal box is about to cross the player's path.
type Autopilot struct {
	// Reach is the base look-ahead distance in world units.
	Reach float64
	// Anticipation scales look-ahead with horizontal speed (seconds).
	Anticipation float64
	// Slack widens the player's vertical band when testing threats.
	Slack float64
}

// NewAutopilot returns a bot tuned for the default physics.
func NewAutopilot() *Autopilot {
	return &Autopilot{Reach: 18, Anticipation: 0.25, Slack: 2}
}

// Decide returns the input for the next tick.
func (a *Autopilot) Decide(s *Snapshot) Input {
	if s.Over || s.Phase != PhaseNormal || !s.Player.Alive || !s.Player.Grounded {
		return Input{}
	}

	if _, ok := a.nearestThreat(s); ok {
		return Input{Jump: true}
	}
	return Input{}
}

// nearestThreat finds the closest lethal box ahead of the player whose
// vertical span meets the player's band.
func (a *Autopilot) nearestThreat(s *Snapshot) (core.Box, bool) {
	p := s.Player
	front := p.X + p.W
	reach := a.Reach + p.VX*a.Anticipation
	top, bottom := p.Y-a.Slack, p.Y+p.H+a.Slack

	var best core.Box
	found := false
	consider := func(b core.Box) {
		gap := b.X - front
		if gap < 0 && b.Right() < p.X {
			return
		}
		if gap > reach || b.Y >= bottom || b.Bottom() <= top {
			return
		}
		if !found || b.X < best.X {
			best, found = b, true
		}
	}

	for _, o := range s.Obstacles {
		consider(ObstacleBox(o))
	}
	for _, g := range s.Ghosts {
		consider(g.Box)
	}
	return best, found
}
