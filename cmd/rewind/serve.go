package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rewind-arcade/internal/config"
	"github.com/vovakirdan/rewind-arcade/internal/games/rewind"
	"github.com/vovakirdan/rewind-arcade/internal/platform/tui"
	"github.com/vovakirdan/rewind-arcade/internal/platform/web"
	"github.com/vovakirdan/rewind-arcade/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagHTTPAddr    string
	flagCORSOrigins []string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server and the web spectator",
	Long: `Start an SSH server that lets users connect and play, and optionally
an HTTP server streaming an autopilot run to spectators.

Each SSH connection gets its own session with the menu. Runs are stored
per server, so all players share the same high score table.

HTTP endpoints (with --http):
  /healthz            - Liveness
  /metrics            - Prometheus metrics
  /api/runs           - High scores (?order=loops|distance&limit=N)
  /api/stats          - Aggregate run statistics
  /api/snapshot       - Latest spectator snapshot as JSON
  /api/snapshot.png   - Latest spectator snapshot as PNG (?scale=N)
  /ws/watch           - WebSocket feed of spectator snapshots

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.rewind/host_key

Examples:
  rewind serve                        # SSH on :23234
  rewind serve --ssh :2222            # SSH on port 2222
  rewind serve --http :8080           # SSH plus web spectator
  rewind serve --ssh "" --http :8080  # Web spectator only

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (empty disables SSH)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP spectator address (empty disables HTTP)")
	serveCmd.Flags().StringSliceVar(&flagCORSOrigins, "cors", nil, "Extra allowed browser origins for the spectator API")
}

func runServe(cmd *cobra.Command, _ []string) error {
	// .env is loaded after init, so environment defaults apply here.
	if !cmd.Flags().Changed("ssh") {
		flagSSHAddr = getEnv("REWIND_SSH_ADDR", flagSSHAddr)
	}
	if !cmd.Flags().Changed("http") {
		flagHTTPAddr = getEnv("REWIND_HTTP_ADDR", flagHTTPAddr)
	}
	if flagSSHAddr == "" && flagHTTPAddr == "" {
		return errors.New("nothing to serve: both --ssh and --http are empty")
	}
	logger := newLogger("rewind-serve")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var sshServer *tui.SSHServer
	var store *storage.Store
	if flagSSHAddr != "" {
		cfg := tui.SSHServerConfig{
			Address:     flagSSHAddr,
			HostKeyPath: flagHostKey,
			DBPath:      flagDBPath,
			IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
			Difficulty:  difficultyName(),
		}
		srv, err := tui.NewSSHServer(cfg)
		if err != nil {
			return fmt.Errorf("cannot create SSH server: %w", err)
		}
		sshServer = srv
		store = srv.Store()
	} else {
		s, err := storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("could not open runs database", "error", err)
		} else {
			store = s
			defer store.Close()
		}
	}

	errCh := make(chan error, 2)
	running := 0

	if flagHTTPAddr != "" {
		webCfg := web.DefaultServerConfig()
		webCfg.Address = flagHTTPAddr
		webCfg.CORSOrigins = flagCORSOrigins
		webCfg.Logger = logger
		webCfg.Spectator.Rewind = rewind.ConfigFor(difficultyName(), config.DefaultRewindConfig().Settings)
		webCfg.Spectator.Seed = flagSeed
		webCfg.Spectator.TickRate = flagFPS
		if store != nil {
			webCfg.Runs = store
		}

		webServer := web.NewServer(webCfg)
		running++
		go func() {
			errCh <- webServer.ListenAndServe(ctx)
		}()
		logger.Info("web spectator", "url", "http://localhost:"+portOf(flagHTTPAddr)+"/api/snapshot")
	}

	if sshServer != nil {
		running++
		go func() {
			errCh <- sshServer.Serve(ctx)
		}()
		logger.Info("connect with", "command", "ssh localhost -p "+portOf(flagSSHAddr))
	}

	// The first failure stops the other server too.
	var firstErr error
	for ; running > 0; running-- {
		if err := <-errCh; err != nil && firstErr == nil {
			firstErr = err
			stop()
		}
	}
	return firstErr
}

func portOf(addr string) string {
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return addr[i+1:]
		}
	}
	return addr
}
