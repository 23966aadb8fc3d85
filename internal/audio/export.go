package audio

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// WriteWAV encodes a single effect as a WAV stream.
func WriteWAV(w io.WriteSeeker, s Sound, cfg Config) error {
	if err := wav.Encode(w, Build(s, cfg), cfg.Format()); err != nil {
		return fmt.Errorf("audio: cannot encode %s: %w", s, err)
	}
	return nil
}

// SaveWAV writes a single effect to a WAV file.
func SaveWAV(path string, s Sound, cfg Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("audio: cannot create %s: %w", path, err)
	}
	if err := WriteWAV(f, s, cfg); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Cue schedules an effect at an offset from the start of a track.
type Cue struct {
	At    time.Duration
	Sound Sound
}

// Mixdown lays cues out on one track. The track ends when the last
// effect finishes.
func Mixdown(cues []Cue, cfg Config) beep.Streamer {
	rate := cfg.rate()
	if len(cues) == 0 {
		return beep.Silence(0)
	}
	streams := make([]beep.Streamer, 0, len(cues))
	for _, c := range cues {
		streams = append(streams, delayed(Build(c.Sound, cfg), c.At, rate))
	}
	return beep.Mix(streams...)
}

// TrackLength returns the duration Mixdown produces for the cues.
func TrackLength(cues []Cue) time.Duration {
	var end time.Duration
	for _, c := range cues {
		end = max(end, c.At+Length(c.Sound))
	}
	return end
}

// SaveTrack writes a mixdown of the cues to a WAV file.
func SaveTrack(path string, cues []Cue, cfg Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("audio: cannot create %s: %w", path, err)
	}
	if err := wav.Encode(f, Mixdown(cues, cfg), cfg.Format()); err != nil {
		f.Close()
		return fmt.Errorf("audio: cannot encode track: %w", err)
	}
	return f.Close()
}
