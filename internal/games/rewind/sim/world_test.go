package sim

import (
	"testing"

	"github.com/vovakirdan/rewind-arcade/internal/config"
)

func hasEvent(events []Event, kind EventKind) bool {
	for _, ev := range events {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}

func TestWorldEndToEndRewind(t *testing.T) {
	cfg := emptyWorldConfig()
	w := NewWorld(cfg, newSeq(0.5))

	p := w.Player()
	if p.X != 50 || p.Y != 160 || p.GravityDir != 1 {
		t.Fatalf("unexpected start (%f, %f, %d)", p.X, p.Y, p.GravityDir)
	}

	const cycleTicks = 600
	for i := 1; i < cycleTicks; i++ {
		res := w.Tick(DefaultStep, Input{})
		if res.Over {
			t.Fatalf("tick %d: run ended in an empty world", i)
		}
		if w.Engine().Loops() != 0 {
			t.Fatalf("tick %d: rewind triggered early", i)
		}
	}

	res := w.Tick(DefaultStep, Input{})
	if !hasEvent(res.Events, EventRewind) {
		t.Errorf("Expected rewind event on tick %d, got %v", cycleTicks, res.Events)
	}
	if res.Phase != PhaseRewinding {
		t.Errorf("Expected REWINDING after expiry, got %s", res.Phase)
	}
	if w.Engine().Loops() != 1 {
		t.Errorf("Expected loop count 1, got %d", w.Engine().Loops())
	}
	if !approxEqual(w.Engine().SpeedMultiplier(), 1.25, 1e-9) {
		t.Errorf("Expected speed 1.25, got %f", w.Engine().SpeedMultiplier())
	}
	if w.Engine().RecordingLen() != cycleTicks {
		t.Errorf("Expected %d recorded frames, got %d", cycleTicks, w.Engine().RecordingLen())
	}
	if len(w.Engine().Ghosts()) != 1 || w.Engine().Ghosts()[0].Len() != cycleTicks {
		t.Errorf("Expected one ghost of %d frames", cycleTicks)
	}

	scrubTicks := 0
	for w.Engine().Phase() == PhaseRewinding {
		w.Tick(DefaultStep, Input{})
		scrubTicks++
		if scrubTicks > cfg.Loop.ScrubSteps {
			t.Fatalf("scrub exceeded %d ticks", cfg.Loop.ScrubSteps)
		}
	}

	if p.X != 50 {
		t.Errorf("Expected player reset to x=50, got %f", p.X)
	}
	if p.Y != cfg.Player.StartY {
		t.Errorf("Expected player reset to y=%f, got %f", cfg.Player.StartY, p.Y)
	}
	if w.Engine().RecordingLen() != 0 {
		t.Errorf("Recording should be empty after reset, has %d", w.Engine().RecordingLen())
	}
	if w.Engine().Loops() != 1 {
		t.Errorf("Expected exactly one rewind, got %d", w.Engine().Loops())
	}
}

func TestWorldGraceSuppressesDeath(t *testing.T) {
	cfg := emptyWorldConfig()
	w := NewWorld(cfg, newSeq(0.5))

	// Rewind an empty cycle to open a grace window.
	w.Engine().TriggerRewind(w.Player(), w.Camera())
	w.Tick(DefaultStep, Input{})
	if !w.Engine().GraceActive() {
		t.Fatal("Expected grace after rewind")
	}

	// Carpet the floor with spikes so every grounded tick overlaps one.
	for x := 0.0; x < 3000; x += SpikeSize - 2 {
		w.gen.obstacles = append(w.gen.obstacles, NewSpike(x, cfg.Physics.FloorY-SpikeSize, false))
	}

	suppressed := 0
	for i := 0; i < 600; i++ {
		graceBefore := w.Engine().Grace()
		res := w.Tick(DefaultStep, Input{})

		if res.Over {
			if graceBefore > 0 {
				t.Fatalf("tick %d: run ended with %f grace left", i, graceBefore)
			}
			if suppressed == 0 {
				t.Fatal("Expected DEAD outcomes to be suppressed during grace")
			}
			if !hasEvent(res.Events, EventDeath) {
				t.Error("Expected death event")
			}
			return
		}
		if res.Outcome == Dead {
			suppressed++
		}
		if graceBefore == 0 {
			t.Fatalf("tick %d: DEAD ignored after grace expired", i)
		}
	}
	t.Fatal("run never ended")
}

func TestWorldOverIsTerminal(t *testing.T) {
	cfg := emptyWorldConfig()
	w := NewWorld(cfg, newSeq(0.5))
	w.gen.obstacles = append(w.gen.obstacles, NewSpike(cfg.Player.StartX, cfg.Player.StartY, false))

	res := w.Tick(DefaultStep, Input{})
	if !res.Over {
		t.Fatal("Expected immediate death inside a spike")
	}
	if w.Player().Alive {
		t.Error("Dead player should not be alive")
	}

	ticks := w.Stats().Ticks
	res = w.Tick(DefaultStep, Input{Jump: true})
	if !res.Over || len(res.Events) != 0 {
		t.Errorf("Ticks after death should be no-ops, got %+v", res)
	}
	if w.Stats().Ticks != ticks {
		t.Error("Tick counter advanced after death")
	}

	w.Reset()
	if w.Over() || !w.Player().Alive || w.Engine().Loops() != 0 {
		t.Error("Reset should start a fresh run")
	}
}

func TestWorldDeathShakeSetting(t *testing.T) {
	tests := []struct {
		name  string
		shake bool
	}{
		{"enabled", true},
		{"disabled", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := emptyWorldConfig()
			cfg.Settings.ScreenShake = tt.shake
			w := NewWorld(cfg, newSeq(0.5))
			w.gen.obstacles = append(w.gen.obstacles, NewSpike(cfg.Player.StartX, cfg.Player.StartY, false))

			w.Tick(DefaultStep, Input{})
			if w.Camera().Shaking() != tt.shake {
				t.Errorf("shaking = %v, want %v", w.Camera().Shaking(), tt.shake)
			}
		})
	}
}

func TestWorldInputEvents(t *testing.T) {
	cfg := emptyWorldConfig()
	w := NewWorld(cfg, newSeq(0.5))

	// Fall to the floor first; jumps need ground.
	for i := 0; i < 60; i++ {
		w.Tick(DefaultStep, Input{})
	}
	if !w.Player().Grounded {
		t.Fatal("Expected player grounded after falling")
	}

	res := w.Tick(DefaultStep, Input{Jump: true})
	if !hasEvent(res.Events, EventJump) {
		t.Errorf("Expected jump event, got %v", res.Events)
	}
	if w.Player().VY >= 0 {
		t.Errorf("Expected upward velocity after jump, got %f", w.Player().VY)
	}

	res = w.Tick(DefaultStep, Input{Flip: true})
	if !hasEvent(res.Events, EventFlip) {
		t.Errorf("Expected flip event, got %v", res.Events)
	}
	if w.Player().GravityDir != -1 {
		t.Errorf("Expected inverted gravity, got %d", w.Player().GravityDir)
	}
}

func TestWorldStats(t *testing.T) {
	cfg := emptyWorldConfig()
	w := NewWorld(cfg, newSeq(0.5))

	for i := 0; i < 120; i++ {
		w.Tick(DefaultStep, Input{})
	}

	st := w.Stats()
	want := (w.Player().X - cfg.Player.StartX) * distanceScale
	if !approxEqual(st.Distance, want, 1e-9) {
		t.Errorf("distance = %f, want %f", st.Distance, want)
	}
	if st.Ticks != 120 {
		t.Errorf("ticks = %d, want 120", st.Ticks)
	}
	if st.MaxSpeed != 1 {
		t.Errorf("max speed = %f, want 1", st.MaxSpeed)
	}
}

func TestWorldSnapshotIsCopy(t *testing.T) {
	w := NewWorld(config.DefaultRewindConfig(), NewRandom(11))
	for i := 0; i < 10; i++ {
		w.Tick(DefaultStep, Input{})
	}

	snap := w.Snapshot()
	if len(snap.Obstacles) == 0 && len(snap.Platforms) == 0 {
		t.Fatal("Expected generated content ahead of the camera")
	}
	if snap.Tick != 10 {
		t.Errorf("snapshot tick = %d, want 10", snap.Tick)
	}

	if len(snap.Obstacles) > 0 {
		orig := w.Generator().Obstacles()[0].X
		snap.Obstacles[0].X = -999
		if w.Generator().Obstacles()[0].X != orig {
			t.Error("mutating snapshot obstacles changed the world")
		}
	}
	snap.Player.X = -1
	if w.Player().X == -1 {
		t.Error("mutating snapshot player changed the world")
	}
}

func TestWorldDeterministicWithSeed(t *testing.T) {
	run := func() (RunStats, float64) {
		w := NewWorld(config.DefaultRewindConfig(), NewRandom(42))
		bot := NewAutopilot()
		for i := 0; i < 3000 && !w.Over(); i++ {
			snap := w.Snapshot()
			w.Tick(DefaultStep, bot.Decide(&snap))
		}
		return w.Stats(), w.Player().X
	}

	s1, x1 := run()
	s2, x2 := run()
	if s1 != s2 {
		t.Errorf("stats differ: %+v vs %+v", s1, s2)
	}
	if x1 != x2 {
		t.Errorf("player x differs: %f vs %f", x1, x2)
	}
}
