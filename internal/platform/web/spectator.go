package web

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/vovakirdan/rewind-arcade/internal/config"
	"github.com/vovakirdan/rewind-arcade/internal/games/rewind/sim"
	"github.com/vovakirdan/rewind-arcade/internal/metrics"
)

// Publisher receives spectator messages. *Hub implements it.
type Publisher interface {
	Publish(event string, data any)
}

// SpectatorConfig configures the autopilot feed.
type SpectatorConfig struct {
	Rewind        config.RewindConfig
	Seed          int64
	TickRate      int           // Simulation ticks per second
	BroadcastRate float64       // Snapshots published per second
	RestartDelay  time.Duration // How long a finished run stays on screen
	Logger        *log.Logger
}

// DefaultSpectatorConfig returns a 60 Hz world published at 15 Hz.
func DefaultSpectatorConfig() SpectatorConfig {
	return SpectatorConfig{
		Rewind:        config.DefaultRewindConfig(),
		TickRate:      60,
		BroadcastRate: 15,
		RestartDelay:  2 * time.Second,
	}
}

// Spectator runs an autopilot world on a single goroutine and publishes
// copied snapshots. Only Latest and Runs are safe to call concurrently.
type Spectator struct {
	cfg    SpectatorConfig
	logger *log.Logger

	world   *sim.World
	pilot   *sim.Autopilot
	driver  *sim.Driver
	pace    *rate.Limiter
	current sim.Snapshot
	deadFor float64
	seed    int64

	latest atomic.Pointer[sim.Snapshot]
	runs   atomic.Int64
}

// NewSpectator creates the feed. Zero config fields take the defaults.
func NewSpectator(cfg SpectatorConfig) *Spectator {
	def := DefaultSpectatorConfig()
	if cfg.TickRate <= 0 {
		cfg.TickRate = def.TickRate
	}
	if cfg.BroadcastRate <= 0 {
		cfg.BroadcastRate = def.BroadcastRate
	}
	if cfg.RestartDelay <= 0 {
		cfg.RestartDelay = def.RestartDelay
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = newLogger()
	}

	s := &Spectator{
		cfg:    cfg,
		logger: logger,
		pilot:  sim.NewAutopilot(),
		driver: sim.NewDriver(1/float64(cfg.TickRate), 0),
		pace:   rate.NewLimiter(rate.Limit(cfg.BroadcastRate), 1),
		seed:   cfg.Seed,
	}
	s.newWorld()
	return s
}

func (s *Spectator) newWorld() {
	s.world = sim.NewWorld(s.cfg.Rewind, sim.NewRandom(s.seed))
	s.current = s.world.Snapshot()
	s.deadFor = 0
	s.store()
}

func (s *Spectator) store() {
	snap := s.current
	s.latest.Store(&snap)
}

// Latest returns the most recent settled snapshot. Callers must not modify it.
func (s *Spectator) Latest() *sim.Snapshot {
	return s.latest.Load()
}

// Runs returns how many runs have finished.
func (s *Spectator) Runs() int {
	return int(s.runs.Load())
}

// Advance runs the ticks owed for realDelta. Snapshots go to pub at most
// BroadcastRate times per second of now; deaths are published unpaced.
// pub may be nil.
func (s *Spectator) Advance(realDelta time.Duration, now time.Time, pub Publisher) int {
	n := s.driver.AdvanceDuration(realDelta, func(dt float64) {
		s.tick(dt, pub)
	})
	if n == 0 {
		return 0
	}
	metrics.RecordTicks(n)
	s.store()

	if pub != nil && s.pace.AllowN(now, 1) {
		pub.Publish("snapshot", s.Latest())
	}
	return n
}

func (s *Spectator) tick(dt float64, pub Publisher) {
	if s.world.Over() {
		s.deadFor += dt
		if s.deadFor >= s.cfg.RestartDelay.Seconds() {
			s.seed++
			s.newWorld()
		}
		return
	}

	res := s.world.Tick(dt, s.pilot.Decide(&s.current))
	s.current = s.world.Snapshot()

	for _, ev := range res.Events {
		metrics.RecordEvent(ev.Kind.String())
		s.logger.Debug("event", "kind", ev.Kind, "loop", ev.Loop, "x", ev.X)
	}

	if res.Over {
		stats := s.world.Stats()
		s.runs.Add(1)
		metrics.RecordRunFinished(stats.Loops)
		s.logger.Info("spectator run finished",
			"seed", s.seed,
			"loops", stats.Loops,
			"distance", int(stats.Distance),
			"ghosts", stats.Ghosts,
		)
		if pub != nil {
			pub.Publish("run:over", stats)
		}
	}
}

// Run drives the feed in real time until ctx is cancelled.
func (s *Spectator) Run(ctx context.Context, pub Publisher) {
	interval := time.Second / time.Duration(s.cfg.TickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("spectator feed started", "seed", s.seed, "tickRate", s.cfg.TickRate)
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("spectator feed stopped", "runs", s.Runs())
			return
		case now := <-ticker.C:
			s.Advance(now.Sub(last), now, pub)
			last = now
		}
	}
}
