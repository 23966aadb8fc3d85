// Package web serves the spectator feed, run history and metrics over HTTP.
package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/vovakirdan/rewind-arcade/internal/games/rewind/sim"
	"github.com/vovakirdan/rewind-arcade/internal/metrics"
	"github.com/vovakirdan/rewind-arcade/internal/storage"
)

// RunSource is the part of the runs database the API reads.
type RunSource interface {
	TopRuns(order storage.RunOrder, limit int) ([]storage.RunRecord, error)
	Stats() (*storage.RunStats, error)
}

// SnapshotSource provides the latest spectator snapshot.
type SnapshotSource interface {
	Latest() *sim.Snapshot
}

// RouterConfig holds the router's dependencies. Every field is optional;
// endpoints whose dependency is missing answer 503.
type RouterConfig struct {
	Runs      RunSource
	Snapshots SnapshotSource
	Hub       *Hub

	// RateLimiter is used as is. When nil one is created from
	// RateLimitConfig (or DefaultRateLimitConfig); the caller can no
	// longer Stop it, so long-lived servers should pass their own.
	RateLimiter     *IPRateLimiter
	RateLimitConfig *RateLimitConfig

	// CORSOrigins defaults to localhost on any port.
	CORSOrigins []string

	// Scanlines applies to /api/snapshot.png unless the query overrides it.
	Scanlines bool

	DisableLogging bool
}

type routerHandlers struct {
	runs      RunSource
	snapshots SnapshotSource
	scanlines bool
}

// NewRouter builds the HTTP router with middleware and routes.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	if !cfg.DisableLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(requestMetrics)

	// Rate limiting runs before CORS to reject early.
	rateLimiter := cfg.RateLimiter
	if rateLimiter == nil {
		rlCfg := DefaultRateLimitConfig
		if cfg.RateLimitConfig != nil {
			rlCfg = *cfg.RateLimitConfig
		}
		rateLimiter = NewIPRateLimiter(rlCfg)
	}
	r.Use(rateLimiter.Middleware)

	corsOrigins := cfg.CORSOrigins
	if corsOrigins == nil {
		corsOrigins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))

	h := &routerHandlers{
		runs:      cfg.Runs,
		snapshots: cfg.Snapshots,
		scanlines: cfg.Scanlines,
	}

	r.Get("/healthz", h.handleHealth)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/runs", h.handleRuns)
		r.Get("/stats", h.handleStats)
		r.Get("/snapshot", h.handleSnapshot)
		r.Get("/snapshot.png", h.handleSnapshotPNG)
	})

	if cfg.Hub != nil {
		r.Get("/ws/watch", cfg.Hub.HandleWebSocket)
	}

	return r
}

// requestMetrics records latency by route pattern, keeping label
// cardinality bounded.
func requestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		pattern := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			pattern = rctx.RoutePattern()
		}
		metrics.RecordRequest(r.Method, pattern, time.Since(start))
	})
}
