package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestInitIdempotent(t *testing.T) {
	Init()
	Init() // second call must not re-register
	if UpstreamRequests == nil || UpstreamDuration == nil || CommandsHandled == nil || TeamResolvedGauge == nil {
		t.Fatalf("metrics not initialized")
	}
}

func TestObserveUpstream(t *testing.T) {
	Init()
	before := testutil.ToFloat64(UpstreamRequests.WithLabelValues("testprov", OutcomeOK))
	ObserveUpstream("testprov", OutcomeOK, 50*time.Millisecond)
	after := testutil.ToFloat64(UpstreamRequests.WithLabelValues("testprov", OutcomeOK))
	if after != before+1 {
		t.Errorf("counter = %v, want %v", after, before+1)
	}
}

func TestCountCommand(t *testing.T) {
	Init()
	before := testutil.ToFloat64(CommandsHandled.WithLabelValues("status"))
	CountCommand("status")
	after := testutil.ToFloat64(CommandsHandled.WithLabelValues("status"))
	if after != before+1 {
		t.Errorf("counter = %v, want %v", after, before+1)
	}
}

func TestSetTeamResolved(t *testing.T) {
	Init()
	SetTeamResolved(true)
	if got := testutil.ToFloat64(TeamResolvedGauge); got != 1 {
		t.Errorf("gauge = %v, want 1", got)
	}
	SetTeamResolved(false)
	if got := testutil.ToFloat64(TeamResolvedGauge); got != 0 {
		t.Errorf("gauge = %v, want 0", got)
	}
}

func TestCorrelationHelpers(t *testing.T) {
	ctx := context.Background()
	if got := GetCorrelation(ctx); got != "" {
		t.Errorf("GetCorrelation(empty ctx) = %q, want empty", got)
	}
	ctx = WithCorrelation(ctx, "abc-123")
	if got := GetCorrelation(ctx); got != "abc-123" {
		t.Errorf("GetCorrelation() = %q, want abc-123", got)
	}
	if LoggerWithCorr(ctx) == nil {
		t.Errorf("LoggerWithCorr() = nil")
	}
}
