package sim

import (
	"testing"

	"github.com/vovakirdan/rewind-arcade/internal/config"
)

func newTestZones(rng Random) (*ZoneField, config.RewindConfig) {
	cfg := config.DefaultRewindConfig()
	return NewZoneField(cfg.Zones, cfg.Physics, rng), cfg
}

func oneZoneStepCamera(cfg config.RewindConfig) float64 {
	return cfg.Zones.StartX + 1 - cfg.Camera.ViewWidth - cfg.Zones.Lookahead
}

func TestZoneSpawnChance(t *testing.T) {
	f, _ := newTestZones(newSeq(0.5))

	tests := []struct {
		loops int
		want  float64
	}{
		{0, 0.3},
		{2, 0.5},
		{5, 0.8},
		{20, 0.8},
	}

	for _, tt := range tests {
		if got := f.SpawnChance(tt.loops); !approxEqual(got, tt.want, 1e-9) {
			t.Errorf("SpawnChance(%d) = %f, want %f", tt.loops, got, tt.want)
		}
	}
}

func TestZoneMinGap(t *testing.T) {
	f, _ := newTestZones(newSeq(0.5))

	tests := []struct {
		loops int
		want  float64
	}{
		{0, 200},
		{5, 150},
		{12, 80},
		{50, 80},
	}

	for _, tt := range tests {
		if got := f.MinGap(tt.loops); got != tt.want {
			t.Errorf("MinGap(%d) = %f, want %f", tt.loops, got, tt.want)
		}
	}
}

func TestZoneKindIsUniform(t *testing.T) {
	tests := []struct {
		draw float64
		want ZoneKind
	}{
		{0, ZoneHeavy},
		{0.24, ZoneHeavy},
		{0.25, ZoneLow},
		{0.5, ZoneSideways},
		{0.75, ZoneChaotic},
		{0.999, ZoneChaotic},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			// gap jitter, spawn roll, kind, width, height, y, dir
			f, cfg := newTestZones(newSeq(0, 0, tt.draw, 0, 0, 0, 0))
			if n := f.Extend(oneZoneStepCamera(cfg), cfg.Camera.ViewWidth, 0); n != 1 {
				t.Fatalf("Expected 1 zone, got %d", n)
			}
			z := f.Zones()[0]
			if z.Kind != tt.want {
				t.Errorf("draw %f: kind %s, want %s", tt.draw, z.Kind, tt.want)
			}
			if z.X != cfg.Zones.StartX+cfg.Zones.BaseGap {
				t.Errorf("zone at %f, want %f", z.X, cfg.Zones.StartX+cfg.Zones.BaseGap)
			}
			if z.W != cfg.Zones.MinWidth || z.H != cfg.Zones.MinHeight || z.Y != cfg.Physics.CeilY {
				t.Errorf("unexpected zone shape %+v", z)
			}
			if z.Dir != 1 {
				t.Errorf("dir = %f, want 1", z.Dir)
			}
		})
	}
}

func TestZoneSpawnRollMiss(t *testing.T) {
	f, cfg := newTestZones(newSeq(0, 0.9))
	if n := f.Extend(oneZoneStepCamera(cfg), cfg.Camera.ViewWidth, 0); n != 0 {
		t.Errorf("Expected no zone above spawn chance, got %d", n)
	}
	if f.Frontier() <= cfg.Zones.StartX {
		t.Error("frontier should advance even without a spawn")
	}
}

func TestZonesStayInsideArena(t *testing.T) {
	for loops := 0; loops <= 10; loops += 2 {
		f, cfg := newTestZones(NewRandom(int64(100 + loops)))
		f.Extend(20000, cfg.Camera.ViewWidth, loops)

		if len(f.Zones()) == 0 {
			t.Fatalf("loops %d: no zones spawned over a long stretch", loops)
		}
		last := -1.0
		for _, z := range f.Zones() {
			if z.Y < cfg.Physics.CeilY || z.Y+z.H > cfg.Physics.FloorY+1e-9 {
				t.Errorf("loops %d: zone y range [%f, %f] leaves arena", loops, z.Y, z.Y+z.H)
			}
			if z.W < cfg.Zones.MinWidth || z.W > cfg.Zones.MaxWidth {
				t.Errorf("loops %d: width %f out of range", loops, z.W)
			}
			if z.H < cfg.Zones.MinHeight || z.H > cfg.Zones.MaxHeight {
				t.Errorf("loops %d: height %f out of range", loops, z.H)
			}
			if z.Dir != 1 && z.Dir != -1 {
				t.Errorf("loops %d: dir %f", loops, z.Dir)
			}
			if z.X-last < f.MinGap(loops) && last >= 0 {
				t.Errorf("loops %d: zones %f apart, min gap %f", loops, z.X-last, f.MinGap(loops))
			}
			last = z.X
		}
	}
}

func TestZoneCull(t *testing.T) {
	f, cfg := newTestZones(NewRandom(9))
	f.Extend(4000, cfg.Camera.ViewWidth, 3)

	cameraX := 2500.0
	cutoff := cameraX - cfg.Zones.CullMargin
	want := 0
	for _, z := range f.Zones() {
		if ZoneBox(z).Right() > cutoff {
			want++
		}
	}

	f.Cull(cameraX)

	if len(f.Zones()) != want {
		t.Errorf("Expected %d zones after cull, got %d", want, len(f.Zones()))
	}
	for _, z := range f.Zones() {
		if ZoneBox(z).Right() <= cutoff {
			t.Errorf("zone behind cutoff survived: %+v", z)
		}
	}
}
