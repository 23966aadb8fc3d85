package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/vovakirdan/rewind-arcade/internal/games/rewind/sim"
	"github.com/vovakirdan/rewind-arcade/internal/platform/snapshot"
	"github.com/vovakirdan/rewind-arcade/internal/storage"
)

const (
	defaultRunsLimit = 10
	maxRunsLimit     = 100
	maxPNGScale      = 6
)

func (h *routerHandlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func (h *routerHandlers) handleRuns(w http.ResponseWriter, r *http.Request) {
	if h.runs == nil {
		writeError(w, "run history unavailable", http.StatusServiceUnavailable)
		return
	}

	order := storage.ParseRunOrder(r.URL.Query().Get("order"))
	limit := defaultRunsLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = min(n, maxRunsLimit)
	}

	runs, err := h.runs.TopRuns(order, limit)
	if err != nil {
		writeError(w, "cannot load runs", http.StatusInternalServerError)
		return
	}
	if runs == nil {
		runs = []storage.RunRecord{}
	}

	writeJSON(w, map[string]any{
		"order": order.String(),
		"runs":  runs,
	})
}

func (h *routerHandlers) handleStats(w http.ResponseWriter, r *http.Request) {
	if h.runs == nil {
		writeError(w, "run history unavailable", http.StatusServiceUnavailable)
		return
	}
	st, err := h.runs.Stats()
	if err != nil {
		writeError(w, "cannot load stats", http.StatusInternalServerError)
		return
	}
	writeJSON(w, st)
}

func (h *routerHandlers) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap := h.latest()
	if snap == nil {
		writeError(w, "no spectator feed", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, snap)
}

// handleSnapshotPNG renders the latest snapshot. Query: scale (1..6),
// scanlines (bool).
func (h *routerHandlers) handleSnapshotPNG(w http.ResponseWriter, r *http.Request) {
	snap := h.latest()
	if snap == nil {
		writeError(w, "no spectator feed", http.StatusServiceUnavailable)
		return
	}

	opts := snapshot.Options{Scanlines: h.scanlines}
	q := r.URL.Query()
	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil || scale <= 0 || scale > maxPNGScale {
			writeError(w, "scale must be in (0, 6]", http.StatusBadRequest)
			return
		}
		opts.Scale = scale
	}
	if v := q.Get("scanlines"); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, "scanlines must be a boolean", http.StatusBadRequest)
			return
		}
		opts.Scanlines = on
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	//nolint:errcheck // The client may hang up mid-write
	snapshot.WritePNG(w, snap, opts)
}

func (h *routerHandlers) latest() *sim.Snapshot {
	if h.snapshots == nil {
		return nil
	}
	return h.snapshots.Latest()
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	//nolint:errcheck // Headers are already sent
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	//nolint:errcheck // Headers are already sent
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
