package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/rewind-arcade/internal/audio"
	"github.com/vovakirdan/rewind-arcade/internal/config"
	"github.com/vovakirdan/rewind-arcade/internal/games/rewind"
	"github.com/vovakirdan/rewind-arcade/internal/games/rewind/sim"
	"github.com/vovakirdan/rewind-arcade/internal/storage"
)

var (
	flagSimTicks   int
	flagSimRuns    int
	flagSimWAV     string
	flagSimSave    bool
	flagSimVerbose bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the autopilot headless",
	Long: `Run the simulation without a terminal UI, steered by the autopilot.

Useful for balancing: every run logs its events and final statistics.
Runs are deterministic for a given --seed, config and difficulty.

Examples:
  rewind sim
  rewind sim --seed 7 --runs 20
  rewind sim --difficulty hard --ticks 7200 -v
  rewind sim --seed 7 --wav run.wav
  rewind sim --runs 5 --save`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 60*60*5, "Tick limit per run")
	simCmd.Flags().IntVar(&flagSimRuns, "runs", 1, "Number of runs (seeds increase by one)")
	simCmd.Flags().StringVar(&flagSimWAV, "wav", "", "Write the first run's sound effects to this WAV file")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record the runs in the runs database")
	simCmd.Flags().BoolVarP(&flagSimVerbose, "verbose", "v", false, "Log every jump and flip")
}

// simOutcome is one headless run.
type simOutcome struct {
	seed  int64
	stats sim.RunStats
	died  bool
	cues  []audio.Cue
}

func runSim(cmd *cobra.Command, args []string) error {
	logger := newLogger("rewind-sim")
	if flagSimVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	var store *storage.Store
	if flagSimSave {
		s, err := storage.Open(flagDBPath)
		if err != nil {
			return fmt.Errorf("cannot open runs database: %w", err)
		}
		store = s
		defer store.Close()
	}

	cfg := rewind.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var (
		totalLoops int
		best       simOutcome
	)
	for i := 0; i < flagSimRuns; i++ {
		out := simulate(cfg, seed+int64(i), flagSimTicks, float64(flagFPS), logger)
		totalLoops += out.stats.Loops
		if i == 0 || out.stats.Loops > best.stats.Loops {
			best = out
		}

		logger.Info("run finished",
			"seed", out.seed,
			"died", out.died,
			"loops", out.stats.Loops,
			"distance", fmt.Sprintf("%dm", int(out.stats.Distance)),
			"ghosts", out.stats.Ghosts,
			"maxSpeed", fmt.Sprintf("x%.1f", out.stats.MaxSpeed),
			"seconds", fmt.Sprintf("%.1f", out.stats.Duration),
		)

		if store != nil {
			rec := runRecord("autopilot", out.seed, difficultyName(), out.stats)
			if _, err := store.SaveRun(rec); err != nil {
				return err
			}
		}

		if i == 0 && flagSimWAV != "" {
			if err := audio.SaveTrack(flagSimWAV, out.cues, audio.DefaultConfig()); err != nil {
				return err
			}
			logger.Info("wrote sound track", "path", flagSimWAV, "effects", len(out.cues),
				"length", audio.TrackLength(out.cues).Round(time.Millisecond))
		}
	}

	if flagSimRuns > 1 {
		fmt.Printf("%d runs, average %.2f loops, best %d loops (seed %d)\n",
			flagSimRuns, float64(totalLoops)/float64(flagSimRuns), best.stats.Loops, best.seed)
	}
	return nil
}

// simulate plays one run with the autopilot until death or the tick limit.
func simulate(cfg config.RewindConfig, seed int64, limit int, fps float64, logger *log.Logger) simOutcome {
	world := sim.NewWorld(cfg, sim.NewRandom(seed))
	pilot := sim.NewAutopilot()
	dt := 1 / fps

	out := simOutcome{seed: seed}
	snap := world.Snapshot()
	for tick := 0; tick < limit; tick++ {
		res := world.Tick(dt, pilot.Decide(&snap))
		snap = world.Snapshot()

		at := time.Duration(float64(tick) * dt * float64(time.Second))
		for _, ev := range res.Events {
			logEvent(logger, ev)
			if s, ok := audio.ForEvent(ev.Kind); ok {
				out.cues = append(out.cues, audio.Cue{At: at, Sound: s})
			}
		}

		if res.Over {
			out.died = true
			break
		}
	}
	out.stats = world.Stats()
	return out
}

// runRecord converts the final stats of a run into a storage row.
func runRecord(player string, seed int64, difficulty string, st sim.RunStats) storage.RunRecord {
	return storage.RunRecord{
		Player:     player,
		Seed:       seed,
		Difficulty: difficulty,
		Loops:      st.Loops,
		Distance:   st.Distance,
		Ghosts:     st.Ghosts,
		MaxSpeed:   st.MaxSpeed,
		Duration:   st.Duration,
	}
}

func logEvent(logger *log.Logger, ev sim.Event) {
	switch ev.Kind {
	case sim.EventJump, sim.EventFlip:
		logger.Debug(ev.Kind.String(), "loop", ev.Loop, "x", int(ev.X))
	default:
		logger.Info(ev.Kind.String(), "loop", ev.Loop, "x", int(ev.X), "y", int(ev.Y))
	}
}
