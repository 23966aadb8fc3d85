package sim

import "time"

// Fixed-timestep defaults.
const (
	DefaultStep     = 1.0 / 60.0
	DefaultMaxDelta = 0.1
)

// Driver converts wall-clock time into whole fixed ticks. A single real
// delta is clamped to maxDelta, so a stall produces at most
// maxDelta/step catch-up ticks.
type Driver struct {
	step     float64
	maxDelta float64
	acc      float64
}

// NewDriver creates a driver. Non-positive arguments fall back to the defaults.
func NewDriver(step, maxDelta float64) *Driver {
	if step <= 0 {
		step = DefaultStep
	}
	if maxDelta <= 0 {
		maxDelta = DefaultMaxDelta
	}
	return &Driver{step: step, maxDelta: maxDelta}
}

// Step returns the fixed tick length in seconds.
func (d *Driver) Step() float64 { return d.step }

// MaxTicks returns the most ticks a single Advance call can run.
func (d *Driver) MaxTicks() int {
	return int(d.maxDelta/d.step + timerEpsilon)
}

// Advance accumulates realDelta seconds and calls tick once per whole step.
// It returns the number of ticks run.
func (d *Driver) Advance(realDelta float64, tick func(dt float64)) int {
	if realDelta < 0 {
		realDelta = 0
	}
	if realDelta > d.maxDelta {
		realDelta = d.maxDelta
	}
	d.acc += realDelta

	n := 0
	for d.acc+timerEpsilon >= d.step {
		d.acc -= d.step
		tick(d.step)
		n++
	}
	if d.acc < 0 {
		d.acc = 0
	}
	return n
}

// AdvanceDuration is Advance for a time.Duration.
func (d *Driver) AdvanceDuration(realDelta time.Duration, tick func(dt float64)) int {
	return d.Advance(realDelta.Seconds(), tick)
}

// Alpha returns the fraction of a step left in the accumulator.
func (d *Driver) Alpha() float64 {
	return d.acc / d.step
}

// Reset drops any accumulated time.
func (d *Driver) Reset() {
	d.acc = 0
}
