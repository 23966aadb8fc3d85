package web

import (
	"io"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/rewind-arcade/internal/config"
)

// recorder is a Publisher that keeps every message.
type recorder struct {
	mu     sync.Mutex
	events []string
	data   []any
}

func (r *recorder) Publish(event string, data any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	r.data = append(r.data, data)
}

func (r *recorder) count(event string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e == event {
			n++
		}
	}
	return n
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func emptyRewindConfig() config.RewindConfig {
	cfg := config.DefaultRewindConfig()
	cfg.Generator.StartX = math.Inf(1)
	cfg.Zones.StartX = math.Inf(1)
	return cfg
}

func testSpectator(cfg config.RewindConfig, restart time.Duration) *Spectator {
	return NewSpectator(SpectatorConfig{
		Rewind:        cfg,
		Seed:          1,
		TickRate:      60,
		BroadcastRate: 10,
		RestartDelay:  restart,
		Logger:        quietLogger(),
	})
}

const frame = time.Second / 60

func TestSpectatorAdvancesAndPaces(t *testing.T) {
	s := testSpectator(emptyRewindConfig(), time.Second)
	pub := &recorder{}

	if s.Latest() == nil || s.Latest().Tick != 0 {
		t.Fatal("a fresh spectator should expose the initial snapshot")
	}

	now := time.Unix(1000, 0)
	for i := 0; i < 60; i++ {
		s.Advance(frame, now, pub)
		now = now.Add(frame)
	}

	if got := s.Latest().Tick; got != 60 {
		t.Errorf("Latest().Tick = %d, want 60", got)
	}

	// 10 Hz pacing over one second of frames.
	n := pub.count("snapshot")
	if n < 5 || n > 11 {
		t.Errorf("published %d snapshots in one second at 10 Hz", n)
	}
}

func TestSpectatorSkipsEmptyAdvance(t *testing.T) {
	s := testSpectator(emptyRewindConfig(), time.Second)
	pub := &recorder{}

	if n := s.Advance(time.Millisecond, time.Unix(1, 0), pub); n != 0 {
		t.Errorf("Advance() ran %d ticks for 1ms", n)
	}
	if len(pub.events) != 0 {
		t.Error("nothing should be published without a tick")
	}
}

func TestSpectatorRestartsAfterDeath(t *testing.T) {
	// Lethal line above the floor: the first landing ends the run.
	cfg := emptyRewindConfig()
	cfg.Physics.OutOfBounds = -20
	s := testSpectator(cfg, 100*time.Millisecond)
	pub := &recorder{}

	now := time.Unix(1000, 0)
	for i := 0; i < 300 && s.Runs() == 0; i++ {
		s.Advance(frame, now, pub)
		now = now.Add(frame)
	}
	if s.Runs() != 1 {
		t.Fatal("expected the run to end")
	}
	if !s.Latest().Over {
		t.Error("the finished run should stay visible")
	}
	if pub.count("run:over") != 1 {
		t.Errorf("run:over published %d times, want 1", pub.count("run:over"))
	}

	for i := 0; i < 10; i++ {
		s.Advance(frame, now, pub)
		now = now.Add(frame)
	}
	if s.Latest().Over {
		t.Error("a new run should start after the restart delay")
	}
	if s.Latest().Tick > 5 {
		t.Errorf("restarted run at tick %d, expected a fresh world", s.Latest().Tick)
	}
}
