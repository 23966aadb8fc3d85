package sim

// EventKind names a discrete moment presentation layers may react to.
type EventKind int

const (
	EventJump EventKind = iota
	EventFlip
	EventDeath
	EventRewind
	EventSpeedUp
	EventRewindComplete
	EventGhostSpawned
	EventGhostEvicted
)

// String returns the event's wire name.
func (k EventKind) String() string {
	switch k {
	case EventJump:
		return "jump"
	case EventFlip:
		return "flip"
	case EventDeath:
		return "death"
	case EventRewind:
		return "rewind"
	case EventSpeedUp:
		return "speed-up"
	case EventRewindComplete:
		return "rewind-complete"
	case EventGhostSpawned:
		return "ghost-spawned"
	case EventGhostEvicted:
		return "ghost-evicted"
	default:
		return "unknown"
	}
}

// MarshalText lets events serialize by name.
func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Event is emitted by the simulation and never awaited.
type Event struct {
	Kind EventKind `json:"kind"`
	Loop int       `json:"loop"`
	X    float64   `json:"x"`
	Y    float64   `json:"y"`
}
