// Package audio synthesizes the game's sound effects with beep.
// Nothing is loaded from disk: every effect is built from oscillators
// with frequency sweeps and decay envelopes.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// sweep is an oscillator whose frequency glides exponentially from one
// value to another over its duration.
type sweep struct {
	from, to float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewSweep creates an oscillator gliding from one frequency to another.
// Equal frequencies give a steady tone.
func NewSweep(from, to float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &sweep{
		from:     from,
		to:       to,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

// NewOscillator creates a steady tone.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

func (o *sweep) freq() float64 {
	if o.from == o.to || o.from <= 0 || o.to <= 0 || o.duration == 0 {
		return o.from
	}
	t := float64(o.position) / float64(o.duration)
	return o.from * math.Pow(o.to/o.from, t)
}

func (o *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq() / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *sweep) Err() error { return nil }

// floorGain is where decays end; exponential curves never reach zero.
const floorGain = 0.01

// decay ramps the gain exponentially from its peak to floorGain after a
// short linear attack.
type decay struct {
	streamer beep.Streamer
	peak     float64
	attack   int
	total    int
	position int
}

// NewDecay shapes a stream with a fast attack and an exponential fade.
func NewDecay(s beep.Streamer, peak float64, duration, attack time.Duration, rate beep.SampleRate) beep.Streamer {
	return &decay{
		streamer: s,
		peak:     peak,
		attack:   rate.N(attack),
		total:    rate.N(duration),
	}
}

func (d *decay) gain() float64 {
	if d.position < d.attack {
		return d.peak * float64(d.position) / float64(d.attack)
	}
	span := d.total - d.attack
	if span <= 0 || d.peak <= floorGain {
		return d.peak
	}
	t := float64(d.position-d.attack) / float64(span)
	return d.peak * math.Pow(floorGain/d.peak, t)
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if d.position >= d.total {
			return i, i > 0
		}
		g := d.gain()
		samples[i][0] *= g
		samples[i][1] *= g
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// newVolume wraps a stream in a linear volume control.
// math.Log2(0) is -Inf, so zero volume is mapped to silence.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// delayed starts a stream after a pause.
func delayed(s beep.Streamer, after time.Duration, rate beep.SampleRate) beep.Streamer {
	if after <= 0 {
		return s
	}
	return beep.Seq(beep.Silence(rate.N(after)), s)
}
