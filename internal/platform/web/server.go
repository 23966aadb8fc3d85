package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// ServerConfig configures the spectator HTTP server.
type ServerConfig struct {
	Address     string
	Runs        RunSource
	Spectator   SpectatorConfig
	CORSOrigins []string
	RateLimit   RateLimitConfig
	Logger      *log.Logger
}

// DefaultServerConfig returns a server on :8080 with the default feed.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Address:   ":8080",
		Spectator: DefaultSpectatorConfig(),
		RateLimit: DefaultRateLimitConfig,
	}
}

// Server combines the router, WebSocket hub and spectator feed.
// Background goroutines start in ListenAndServe, not in NewServer.
type Server struct {
	config      ServerConfig
	router      http.Handler
	hub         *Hub
	spectator   *Spectator
	rateLimiter *IPRateLimiter
	logger      *log.Logger
}

// NewServer constructs the server.
func NewServer(cfg ServerConfig) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = newLogger()
	}
	if cfg.Spectator.Logger == nil {
		cfg.Spectator.Logger = logger
	}

	s := &Server{
		config:      cfg,
		hub:         NewHub(cfg.CORSOrigins, logger),
		spectator:   NewSpectator(cfg.Spectator),
		rateLimiter: NewIPRateLimiter(cfg.RateLimit),
		logger:      logger,
	}
	s.router = NewRouter(RouterConfig{
		Runs:        cfg.Runs,
		Snapshots:   s.spectator,
		Hub:         s.hub,
		RateLimiter: s.rateLimiter,
		CORSOrigins: cfg.CORSOrigins,
		Scanlines:   cfg.Spectator.Rewind.Settings.Scanlines,
	})
	return s
}

// Router returns the HTTP handler, for httptest.
func (s *Server) Router() http.Handler {
	return s.router
}

// Spectator returns the autopilot feed.
func (s *Server) Spectator() *Spectator {
	return s.spectator
}

// ListenAndServe starts the hub, the feed and the HTTP listener, and
// blocks until ctx is cancelled or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer s.rateLimiter.Stop()

	go s.hub.Run(ctx)
	go s.spectator.Run(ctx, s.hub)

	srv := &http.Server{
		Addr:              s.config.Address,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "address", s.config.Address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web: cannot serve: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down HTTP server...")
	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web: shutdown: %w", err)
	}
	return nil
}

func newLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "rewind-web",
	})
}
