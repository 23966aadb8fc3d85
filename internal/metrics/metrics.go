// Package metrics holds the process-wide Prometheus collectors.
// Labels are bounded: no per-player or per-session values.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Simulation
	ticksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rewind_ticks_total",
		Help: "Simulation ticks executed",
	})

	eventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rewind_events_total",
		Help: "Simulation events emitted",
	}, []string{"kind"}) // Bounded: the sim event kinds

	runsFinished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rewind_runs_finished_total",
		Help: "Runs that ended in death",
	})

	loopsSurvived = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "rewind_run_loops",
		Help:    "Loops survived per finished run",
		Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
	})

	// Sessions
	sshSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rewind_ssh_sessions_active",
		Help: "Currently connected SSH players",
	})

	spectators = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rewind_spectators_active",
		Help: "Currently connected WebSocket spectators",
	})

	wsMessagesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rewind_websocket_messages_total",
		Help: "Snapshot messages sent to spectators",
	})

	// HTTP
	connectionRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rewind_connection_rejected_total",
		Help: "Connections rejected by rate limiter or origin check",
	}, []string{"reason"}) // Bounded: "rate_limit", "origin", "ws_limit"

	requestLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rewind_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "endpoint"}) // endpoint is the route pattern
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordTicks adds executed simulation ticks.
func RecordTicks(n int) {
	if n > 0 {
		ticksTotal.Add(float64(n))
	}
}

// RecordEvent counts one simulation event by name.
func RecordEvent(kind string) {
	eventsTotal.WithLabelValues(kind).Inc()
}

// RecordRunFinished records a finished run's loop count.
func RecordRunFinished(loops int) {
	runsFinished.Inc()
	loopsSurvived.Observe(float64(loops))
}

// SSHSessionStarted and SSHSessionEnded track connected players.
func SSHSessionStarted() { sshSessions.Inc() }

func SSHSessionEnded() { sshSessions.Dec() }

// UpdateSpectators sets the spectator gauge.
func UpdateSpectators(n int) {
	spectators.Set(float64(n))
}

// IncrementWSMessages counts one message fanned out to a spectator.
func IncrementWSMessages() {
	wsMessagesTotal.Inc()
}

// RecordConnectionRejected increments the rejection counter.
// reason must be one of: "rate_limit", "origin", "ws_limit"
func RecordConnectionRejected(reason string) {
	connectionRejected.WithLabelValues(reason).Inc()
}

// RecordRequest records HTTP request latency.
func RecordRequest(method, endpoint string, d time.Duration) {
	requestLatency.WithLabelValues(method, endpoint).Observe(d.Seconds())
}
