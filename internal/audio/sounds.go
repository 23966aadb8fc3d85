package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/rewind-arcade/internal/games/rewind/sim"
)

// Sound identifies one synthesized effect.
type Sound int

const (
	SoundJump Sound = iota
	SoundDeath
	SoundRewind
	SoundSpeedUp
)

// Sounds lists every effect in export order.
var Sounds = []Sound{SoundJump, SoundDeath, SoundRewind, SoundSpeedUp}

// String returns the effect name.
func (s Sound) String() string {
	switch s {
	case SoundJump:
		return "jump"
	case SoundDeath:
		return "death"
	case SoundRewind:
		return "rewind"
	case SoundSpeedUp:
		return "speed-up"
	default:
		return "unknown"
	}
}

// ParseSound maps an effect name back to its Sound.
func ParseSound(name string) (Sound, bool) {
	for _, s := range Sounds {
		if s.String() == name {
			return s, true
		}
	}
	return 0, false
}

// ForEvent returns the effect a simulation event plays, if any.
func ForEvent(kind sim.EventKind) (Sound, bool) {
	switch kind {
	case sim.EventJump:
		return SoundJump, true
	case sim.EventDeath:
		return SoundDeath, true
	case sim.EventRewind:
		return SoundRewind, true
	case sim.EventSpeedUp:
		return SoundSpeedUp, true
	}
	return 0, false
}

// Config holds output parameters.
type Config struct {
	SampleRate   int
	MasterVolume float64 // 0..1
}

// DefaultConfig returns 44.1 kHz at full volume.
func DefaultConfig() Config {
	return Config{SampleRate: 44100, MasterVolume: 1}
}

func (c Config) rate() beep.SampleRate {
	if c.SampleRate <= 0 {
		return beep.SampleRate(44100)
	}
	return beep.SampleRate(c.SampleRate)
}

// Format returns the beep format used for export and playback.
func (c Config) Format() beep.Format {
	return beep.Format{SampleRate: c.rate(), NumChannels: 2, Precision: 2}
}

const attack = 5 * time.Millisecond

// Effect durations
const (
	JumpDuration    = 150 * time.Millisecond
	DeathDuration   = 400 * time.Millisecond
	DeathNoise      = 200 * time.Millisecond
	RewindDuration  = 300 * time.Millisecond
	ArpeggioSpacing = 60 * time.Millisecond
	ArpeggioNote    = 100 * time.Millisecond
)

// arpeggio is A4, C#5, E5, A5.
var arpeggio = []float64{440, 554, 659, 880}

// Build synthesizes a fresh stream for the effect. Streams are single use.
func Build(s Sound, cfg Config) beep.Streamer {
	rate := cfg.rate()
	var out beep.Streamer

	switch s {
	case SoundJump:
		out = NewDecay(NewSweep(300, 600, JumpDuration, WaveSine, rate), 0.2, JumpDuration, attack, rate)

	case SoundDeath:
		saw := NewDecay(NewSweep(80, 30, DeathDuration, WaveSaw, rate), 0.3, DeathDuration, attack, rate)
		noise := NewDecay(NewOscillator(0, DeathNoise, WaveNoise, rate), 0.15, DeathNoise, attack, rate)
		out = beep.Mix(saw, noise)

	case SoundRewind:
		glide := NewDecay(NewSweep(1200, 100, RewindDuration, WaveSquare, rate), 0.15, RewindDuration, attack, rate)
		rumble := NewDecay(NewOscillator(40, RewindDuration, WaveSquare, rate), 0.1, RewindDuration, attack, rate)
		out = beep.Mix(glide, rumble)

	case SoundSpeedUp:
		notes := make([]beep.Streamer, len(arpeggio))
		for i, f := range arpeggio {
			note := NewDecay(NewOscillator(f, ArpeggioNote, WaveSquare, rate), 0.1, ArpeggioNote, attack, rate)
			notes[i] = delayed(note, time.Duration(i)*ArpeggioSpacing, rate)
		}
		out = beep.Mix(notes...)

	default:
		return beep.Silence(0)
	}

	return newVolume(out, cfg.MasterVolume)
}

// Length returns how long the effect plays.
func Length(s Sound) time.Duration {
	switch s {
	case SoundJump:
		return JumpDuration
	case SoundDeath:
		return DeathDuration
	case SoundRewind:
		return RewindDuration
	case SoundSpeedUp:
		return time.Duration(len(arpeggio)-1)*ArpeggioSpacing + ArpeggioNote
	}
	return 0
}
