package sim

import (
	"testing"
	"time"
)

func TestDriverFixedTicks(t *testing.T) {
	tests := []struct {
		name   string
		deltas []float64
		want   int
	}{
		{"one step per frame", repeat(1.0/60, 60), 60},
		{"half steps", repeat(1.0/120, 10), 5},
		{"double steps", repeat(1.0/30, 10), 20},
		{"negative delta", []float64{-1}, 0},
		{"stall is clamped", []float64{5}, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDriver(DefaultStep, DefaultMaxDelta)
			total := 0
			for _, delta := range tt.deltas {
				total += d.Advance(delta, func(dt float64) {
					if dt != DefaultStep {
						t.Fatalf("tick called with dt %f", dt)
					}
				})
			}
			if total != tt.want {
				t.Errorf("ticks = %d, want %d", total, tt.want)
			}
		})
	}
}

func TestDriverBoundedCatchUp(t *testing.T) {
	d := NewDriver(0, 0)
	if d.Step() != DefaultStep {
		t.Errorf("step = %f, want default", d.Step())
	}

	n := d.AdvanceDuration(3*time.Second, func(float64) {})
	if n > d.MaxTicks() {
		t.Errorf("stall ran %d ticks, max %d", n, d.MaxTicks())
	}
	if d.Alpha() < 0 || d.Alpha() >= 1 {
		t.Errorf("alpha %f outside [0, 1)", d.Alpha())
	}

	d.Reset()
	if d.Alpha() != 0 {
		t.Error("Reset should drop accumulated time")
	}
}

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
