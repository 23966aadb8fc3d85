package audio

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/vovakirdan/rewind-arcade/internal/games/rewind/sim"
)

// drain streams s to the end and returns every sample.
func drain(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
}

func TestSweepLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	samples := drain(NewSweep(300, 600, 150*time.Millisecond, WaveSine, rate))

	if want := rate.N(150 * time.Millisecond); len(samples) != want {
		t.Errorf("Expected %d samples, got %d", want, len(samples))
	}
	for i, s := range samples {
		if s[0] < -1 || s[0] > 1 {
			t.Fatalf("Sample %d out of range: %f", i, s[0])
		}
	}
}

func TestSweepSquareValues(t *testing.T) {
	rate := beep.SampleRate(44100)
	samples := drain(NewSweep(1200, 100, 50*time.Millisecond, WaveSquare, rate))

	for i, s := range samples {
		if s[0] != -1.0 && s[0] != 1.0 {
			t.Fatalf("Square wave sample %d should be -1.0 or 1.0, got %f", i, s[0])
		}
	}
}

func TestDecayFades(t *testing.T) {
	rate := beep.SampleRate(44100)
	dur := 200 * time.Millisecond
	samples := drain(NewDecay(NewOscillator(0, dur, WaveSquare, rate), 0.5, dur, 0, rate))

	// A zero-frequency square is a constant 1, so samples are the gain.
	if math.Abs(samples[0][0]-0.5) > 1e-9 {
		t.Errorf("Expected peak 0.5 at start, got %f", samples[0][0])
	}
	last := samples[len(samples)-1][0]
	if last > floorGain*1.1 {
		t.Errorf("Expected gain near %f at end, got %f", floorGain, last)
	}
	for i := 1; i < len(samples); i++ {
		if samples[i][0] > samples[i-1][0]+1e-12 {
			t.Fatalf("Gain rose at sample %d", i)
		}
	}
}

func TestBuildLengths(t *testing.T) {
	cfg := DefaultConfig()
	rate := cfg.rate()

	for _, s := range Sounds {
		t.Run(s.String(), func(t *testing.T) {
			got := len(drain(Build(s, cfg)))
			want := rate.N(Length(s))
			// Mixed voices may differ by a sample of rounding.
			if got < want-1 || got > want+1 {
				t.Errorf("Expected about %d samples, got %d", want, got)
			}
		})
	}
}

func TestBuildRespectsVolume(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MasterVolume = 0

	for _, s := range drain(Build(SoundJump, cfg)) {
		if s[0] != 0 || s[1] != 0 {
			t.Fatal("Expected silence at zero master volume")
		}
	}
}

func TestForEvent(t *testing.T) {
	tests := []struct {
		kind sim.EventKind
		want Sound
		ok   bool
	}{
		{sim.EventJump, SoundJump, true},
		{sim.EventDeath, SoundDeath, true},
		{sim.EventRewind, SoundRewind, true},
		{sim.EventSpeedUp, SoundSpeedUp, true},
		{sim.EventFlip, 0, false},
		{sim.EventGhostSpawned, 0, false},
	}
	for _, tt := range tests {
		got, ok := ForEvent(tt.kind)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ForEvent(%v) = %v, %v; want %v, %v", tt.kind, got, ok, tt.want, tt.ok)
		}
		// Event and effect names agree so string events can be played.
		if ok {
			if s, found := ParseSound(tt.kind.String()); !found || s != got {
				t.Errorf("ParseSound(%q) = %v, %v", tt.kind.String(), s, found)
			}
		}
	}
}

func TestMixdownLength(t *testing.T) {
	cfg := DefaultConfig()
	cues := []Cue{
		{At: 0, Sound: SoundJump},
		{At: time.Second, Sound: SoundRewind},
	}

	want := TrackLength(cues)
	if want != time.Second+RewindDuration {
		t.Errorf("TrackLength = %v", want)
	}

	got := len(drain(Mixdown(cues, cfg)))
	if n := cfg.rate().N(want); got < n-1 || got > n+1 {
		t.Errorf("Expected about %d samples, got %d", n, got)
	}
}

func TestSaveWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jump.wav")
	if err := SaveWAV(path, SoundJump, DefaultConfig()); err != nil {
		t.Fatalf("SaveWAV() failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	s, format, err := wav.Decode(f)
	if err != nil {
		t.Fatalf("output is not a WAV: %v", err)
	}
	defer s.Close()
	if format.SampleRate != 44100 || format.NumChannels != 2 {
		t.Errorf("Unexpected format %+v", format)
	}
	if s.Len() == 0 {
		t.Error("Expected samples in WAV")
	}
}

func TestNilPlayerIsSilent(t *testing.T) {
	var p *Player
	p.Play(SoundJump)
	p.PlayNamed([]string{"jump", "flip"})
	p.SetEnabled(true)
	p.Close()
}
