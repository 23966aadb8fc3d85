package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rewind-arcade/internal/audio"
)

var (
	flagSfxDir    string
	flagSfxVolume float64
	flagSfxPlay   bool
)

var sfxCmd = &cobra.Command{
	Use:   "sfx [sound...]",
	Short: "Export the sound effects",
	Long: `Synthesize the game's sound effects and write each one as a WAV file.

Sounds: jump, death, rewind, speed-up. With no arguments all of them
are exported.

Examples:
  rewind sfx
  rewind sfx jump death --dir ./sounds
  rewind sfx rewind --play`,
	RunE: runSfx,
}

func init() {
	sfxCmd.Flags().StringVar(&flagSfxDir, "dir", ".", "Output directory")
	sfxCmd.Flags().Float64Var(&flagSfxVolume, "volume", 1, "Master volume (0..1)")
	sfxCmd.Flags().BoolVar(&flagSfxPlay, "play", false, "Play through the speaker instead of writing files")
}

func runSfx(cmd *cobra.Command, args []string) error {
	sounds := audio.Sounds
	if len(args) > 0 {
		sounds = nil
		for _, name := range args {
			s, ok := audio.ParseSound(name)
			if !ok {
				return fmt.Errorf("unknown sound %q (want jump, death, rewind or speed-up)", name)
			}
			sounds = append(sounds, s)
		}
	}

	cfg := audio.DefaultConfig()
	cfg.MasterVolume = flagSfxVolume

	if flagSfxPlay {
		p, err := audio.NewPlayer(cfg)
		if err != nil {
			return err
		}
		defer p.Close()
		for _, s := range sounds {
			fmt.Printf("Playing %s\n", s)
			p.Play(s)
			time.Sleep(audio.Length(s) + 150*time.Millisecond)
		}
		return nil
	}

	if err := os.MkdirAll(flagSfxDir, 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", flagSfxDir, err)
	}
	for _, s := range sounds {
		path := filepath.Join(flagSfxDir, s.String()+".wav")
		if err := audio.SaveWAV(path, s, cfg); err != nil {
			return err
		}
		fmt.Printf("Wrote %s (%s)\n", path, audio.Length(s).Round(time.Millisecond))
	}
	return nil
}
