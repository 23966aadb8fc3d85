package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep/speaker"
)

// Player plays effects on the system speaker.
// A nil *Player is valid and silent.
type Player struct {
	cfg     Config
	mu      sync.Mutex
	enabled bool
}

var speakerOnce struct {
	sync.Once
	err error
}

// NewPlayer initializes the speaker. The speaker is process-wide, so
// every Player shares one device opened at the first call's sample rate.
func NewPlayer(cfg Config) (*Player, error) {
	speakerOnce.Do(func() {
		rate := cfg.rate()
		speakerOnce.err = speaker.Init(rate, rate.N(time.Second/20))
	})
	if speakerOnce.err != nil {
		return nil, fmt.Errorf("audio: cannot open speaker: %w", speakerOnce.err)
	}
	return &Player{cfg: cfg, enabled: true}, nil
}

// Play queues an effect; it never blocks on the device.
func (p *Player) Play(s Sound) {
	if p == nil {
		return
	}
	p.mu.Lock()
	enabled, cfg := p.enabled, p.cfg
	p.mu.Unlock()
	if !enabled {
		return
	}
	speaker.Play(Build(s, cfg))
}

// PlayNamed plays the effect for each event name that has one.
func (p *Player) PlayNamed(names []string) {
	for _, n := range names {
		if s, ok := ParseSound(n); ok {
			p.Play(s)
		}
	}
}

// SetEnabled mutes or unmutes the player.
func (p *Player) SetEnabled(on bool) {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.enabled = on
	p.mu.Unlock()
}

// SetVolume changes the master volume for subsequent effects.
func (p *Player) SetVolume(v float64) {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.cfg.MasterVolume = v
	p.mu.Unlock()
}

// Close stops everything currently playing.
func (p *Player) Close() {
	if p == nil {
		return
	}
	p.SetEnabled(false)
	speaker.Clear()
}
