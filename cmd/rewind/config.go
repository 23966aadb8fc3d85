package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rewind-arcade/internal/config"
	"github.com/vovakirdan/rewind-arcade/internal/games/rewind"
)

var (
	flagConfigInit  bool
	flagConfigForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print or install the default config",
	Long: `Print the default game config as YAML.

With --init the file is written to ~/.rewind/configs/rewind.yaml, where
it is picked up automatically. Edit only the keys you want to change.

Examples:
  rewind config > my-rewind.yaml
  rewind config --init`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigInit, "init", false, "Write the default config to ~/.rewind/configs/rewind.yaml")
	configCmd.Flags().BoolVar(&flagConfigForce, "force", false, "Overwrite an existing file with --init")
}

func runConfig(cmd *cobra.Command, args []string) error {
	data := config.GetDefaultYAML(rewind.GameID)
	if data == nil {
		return errors.New("no embedded config for " + rewind.GameID)
	}

	if !flagConfigInit {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("cannot find home directory: %w", err)
	}
	path := filepath.Join(home, ".rewind", "configs", "rewind.yaml")

	if _, err := os.Stat(path); err == nil && !flagConfigForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write config: %w", err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}
