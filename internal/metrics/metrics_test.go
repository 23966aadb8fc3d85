package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(ticksTotal)
	RecordTicks(3)
	RecordTicks(0)
	if got := testutil.ToFloat64(ticksTotal) - before; got != 3 {
		t.Errorf("ticks delta = %v, want 3", got)
	}

	rewinds := eventsTotal.WithLabelValues("rewind")
	before = testutil.ToFloat64(rewinds)
	RecordEvent("rewind")
	if got := testutil.ToFloat64(rewinds) - before; got != 1 {
		t.Errorf("rewind delta = %v, want 1", got)
	}
}

func TestSessionGauge(t *testing.T) {
	before := testutil.ToFloat64(sshSessions)
	SSHSessionStarted()
	SSHSessionStarted()
	SSHSessionEnded()
	if got := testutil.ToFloat64(sshSessions) - before; got != 1 {
		t.Errorf("session delta = %v, want 1", got)
	}
	SSHSessionEnded()
}

func TestHandlerExposesMetrics(t *testing.T) {
	RecordRunFinished(4)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "rewind_runs_finished_total") {
		t.Error("runs counter missing from exposition")
	}
}
