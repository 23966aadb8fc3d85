package sim

import (
	"math"
	"testing"

	"github.com/vovakirdan/rewind-arcade/internal/config"
)

// completeCycle records frames and drives the engine through a full rewind.
func completeCycle(t *testing.T, e *Engine, p *Player, cam Camera, frames int) {
	t.Helper()
	for i := 0; i < frames; i++ {
		p.X += 1
		e.RecordFrame(p)
	}
	e.TriggerRewind(p, cam)
	for i := 0; e.Phase() == PhaseRewinding; i++ {
		if i > 10000 {
			t.Fatal("rewind never completed")
		}
		e.Tick(DefaultStep, p, cam)
	}
}

func TestEngineGhostCapFIFO(t *testing.T) {
	cfg := config.DefaultRewindConfig()
	e := NewEngine(cfg)
	p := NewPlayer(cfg.Player)
	cam := newRecordingCamera()

	for loop := 1; loop <= 12; loop++ {
		completeCycle(t, e, p, cam, 5)

		if len(e.Ghosts()) > cfg.Loop.MaxGhosts {
			t.Fatalf("loop %d: %d ghosts exceeds cap %d", loop, len(e.Ghosts()), cfg.Loop.MaxGhosts)
		}
	}

	ghosts := e.Ghosts()
	if len(ghosts) != cfg.Loop.MaxGhosts {
		t.Fatalf("Expected %d ghosts, got %d", cfg.Loop.MaxGhosts, len(ghosts))
	}
	// Loops 1-4 were evicted oldest first.
	for i, g := range ghosts {
		if g.Loop() != i+5 {
			t.Errorf("ghost %d: expected loop %d, got %d", i, i+5, g.Loop())
		}
	}
}

func TestEngineSpeedMultiplier(t *testing.T) {
	tests := []int{1, 2, 5, 10}

	for _, n := range tests {
		cfg := config.DefaultRewindConfig()
		e := NewEngine(cfg)
		p := NewPlayer(cfg.Player)
		cam := newRecordingCamera()

		for i := 0; i < n; i++ {
			completeCycle(t, e, p, cam, 3)
		}

		want := math.Pow(1.25, float64(n))
		if !approxEqual(e.SpeedMultiplier(), want, 1e-9) {
			t.Errorf("after %d loops: expected speed %f, got %f", n, want, e.SpeedMultiplier())
		}
		if !approxEqual(p.SpeedMultiplier, want, 1e-9) {
			t.Errorf("after %d loops: player speed %f, want %f", n, p.SpeedMultiplier, want)
		}
		if e.Loops() != n {
			t.Errorf("Expected %d loops, got %d", n, e.Loops())
		}
	}
}

func TestEngineEmptyRewindCreatesNoGhost(t *testing.T) {
	cfg := config.DefaultRewindConfig()
	e := NewEngine(cfg)
	p := NewPlayer(cfg.Player)
	cam := newRecordingCamera()

	completeCycle(t, e, p, cam, 10)
	if len(e.Ghosts()) != 1 {
		t.Fatalf("Expected 1 ghost after first cycle, got %d", len(e.Ghosts()))
	}

	e.TriggerRewind(p, cam)
	if e.Phase() != PhaseRewinding {
		t.Fatalf("Expected REWINDING, got %s", e.Phase())
	}
	if len(e.Ghosts()) != 1 {
		t.Errorf("Empty rewind changed ghost count to %d", len(e.Ghosts()))
	}

	e.Tick(DefaultStep, p, cam)
	if e.Phase() != PhaseNormal {
		t.Errorf("Empty playback should complete on the first tick, phase is %s", e.Phase())
	}
	if e.Timer() != cfg.Loop.CycleDuration {
		t.Errorf("Expected timer reset to %f, got %f", cfg.Loop.CycleDuration, e.Timer())
	}
	if e.Loops() != 2 {
		t.Errorf("Expected loop count 2, got %d", e.Loops())
	}
}

func TestEngineScrubTerminates(t *testing.T) {
	lengths := []int{1, 3, 4, 39, 40, 41, 160, 599, 600, 1000, 1601}

	for _, l := range lengths {
		cfg := config.DefaultRewindConfig()
		e := NewEngine(cfg)
		p := NewPlayer(cfg.Player)
		cam := newRecordingCamera()

		for i := 0; i < l; i++ {
			e.RecordFrame(p)
		}
		e.TriggerRewind(p, cam)

		stride := ScrubStride(l, cfg.Loop.MinStride, cfg.Loop.ScrubSteps)
		limit := int(math.Ceil(float64(l) / float64(stride)))

		ticks := 0
		for e.Phase() == PhaseRewinding && ticks <= limit {
			e.Tick(DefaultStep, p, cam)
			ticks++
		}

		if e.Phase() != PhaseNormal {
			t.Errorf("L=%d: scrub not finished after %d ticks (limit %d)", l, ticks, limit)
		}
		if ticks > limit {
			t.Errorf("L=%d: took %d ticks, limit %d", l, ticks, limit)
		}
	}
}

func TestScrubStride(t *testing.T) {
	tests := []struct {
		length int
		want   int
	}{
		{0, 4},
		{100, 4},
		{199, 4},
		{200, 5},
		{600, 15},
		{1000, 25},
	}

	for _, tt := range tests {
		if got := ScrubStride(tt.length, 4, 40); got != tt.want {
			t.Errorf("ScrubStride(%d) = %d, want %d", tt.length, got, tt.want)
		}
	}
}

func TestEngineFinalizeResetsPlayer(t *testing.T) {
	cfg := config.DefaultRewindConfig()
	e := NewEngine(cfg)
	p := NewPlayer(cfg.Player)
	cam := newRecordingCamera()

	p.X = 123
	e.RecordFrame(p)
	for i := 0; i < 50; i++ {
		p.X += 2
		p.Y = 40
		p.VX, p.VY = 80, -100
		p.GravityDir = -1
		e.RecordFrame(p)
	}
	completeCycle(t, e, p, cam, 0)

	if p.X != 123 {
		t.Errorf("Expected player reset to cycle start 123, got %f", p.X)
	}
	if p.Y != cfg.Player.StartY {
		t.Errorf("Expected Y %f, got %f", cfg.Player.StartY, p.Y)
	}
	if p.VX != 0 || p.VY != 0 {
		t.Errorf("Expected zero velocity, got (%f, %f)", p.VX, p.VY)
	}
	if p.GravityDir != 1 {
		t.Errorf("Expected default gravity, got %d", p.GravityDir)
	}
	if !p.Alive {
		t.Error("Player should be interactive again after the scrub")
	}
	if e.Grace() != cfg.Loop.GraceDuration {
		t.Errorf("Expected grace %f, got %f", cfg.Loop.GraceDuration, e.Grace())
	}
	if e.RecordingLen() != 0 {
		t.Errorf("Recording should be cleared, has %d frames", e.RecordingLen())
	}
	if cam.x != p.X-cfg.Camera.ResetOffset {
		t.Errorf("Expected camera at %f, got %f", p.X-cfg.Camera.ResetOffset, cam.x)
	}
	for _, g := range e.Ghosts() {
		if g.Cursor() != 0 {
			t.Errorf("ghost %d cursor %d, want 0", g.Loop(), g.Cursor())
		}
	}
}

func TestEngineTriggerMarksPlayerAndShakes(t *testing.T) {
	cfg := config.DefaultRewindConfig()
	e := NewEngine(cfg)
	p := NewPlayer(cfg.Player)
	cam := newRecordingCamera()

	e.RecordFrame(p)
	e.TriggerRewind(p, cam)

	if p.Alive {
		t.Error("Player should be non-interactive while rewinding")
	}
	if len(cam.shakes) != 1 || cam.shakes[0] != cfg.Camera.RewindShake.Intensity {
		t.Errorf("Expected one rewind shake, got %v", cam.shakes)
	}
	if !e.EffectActive() {
		t.Error("Expected rewind effect to be active")
	}

	// A second trigger mid-scrub is ignored.
	e.TriggerRewind(p, cam)
	if e.Loops() != 1 {
		t.Errorf("Expected 1 loop, got %d", e.Loops())
	}
}

func TestEngineEvents(t *testing.T) {
	cfg := config.DefaultRewindConfig()
	e := NewEngine(cfg)
	p := NewPlayer(cfg.Player)
	cam := newRecordingCamera()

	completeCycle(t, e, p, cam, 2)

	var kinds []EventKind
	for _, ev := range e.DrainEvents() {
		kinds = append(kinds, ev.Kind)
		if ev.Loop != 1 {
			t.Errorf("event %s: expected loop 1, got %d", ev.Kind, ev.Loop)
		}
	}
	want := []EventKind{EventRewind, EventGhostSpawned, EventSpeedUp, EventRewindComplete}
	if len(kinds) != len(want) {
		t.Fatalf("Expected events %v, got %v", want, kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("event %d: expected %s, got %s", i, want[i], kinds[i])
		}
	}

	if len(e.DrainEvents()) != 0 {
		t.Error("DrainEvents should clear the buffer")
	}
}

func TestEngineCycleTimerExpiresOnTick(t *testing.T) {
	cfg := config.DefaultRewindConfig()
	e := NewEngine(cfg)
	p := NewPlayer(cfg.Player)
	cam := newRecordingCamera()

	ticks := int(math.Round(cfg.Loop.CycleDuration / DefaultStep))
	for i := 1; i < ticks; i++ {
		e.RecordFrame(p)
		e.Tick(DefaultStep, p, cam)
		if e.Loops() != 0 {
			t.Fatalf("rewind triggered early at tick %d", i)
		}
	}
	e.RecordFrame(p)
	e.Tick(DefaultStep, p, cam)

	if e.Loops() != 1 {
		t.Errorf("Expected rewind on tick %d", ticks)
	}
	if e.Progress() < 1-1e-6 {
		t.Errorf("Expected full progress at expiry, got %f", e.Progress())
	}
}
