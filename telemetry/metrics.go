// Package telemetry provides Prometheus metrics and correlation-id aware logging helpers.
package telemetry

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for UpstreamRequests.
const (
	OutcomeOK        = "ok"
	OutcomeTransport = "transport_error"
	OutcomeStatus    = "bad_status"
	OutcomeShape     = "bad_shape"
)

var (
	once sync.Once

	// UpstreamRequests counts outbound API calls by provider and outcome.
	UpstreamRequests *prometheus.CounterVec

	// UpstreamDuration observes outbound call latency per provider (seconds).
	UpstreamDuration *prometheus.HistogramVec

	// CommandsHandled counts chat commands by name.
	CommandsHandled *prometheus.CounterVec

	// TeamResolvedGauge is 1 once the team identity resolved, else 0.
	TeamResolvedGauge prometheus.Gauge
)

// Init registers metrics (idempotent).
func Init() {
	once.Do(func() {
		UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "matchbot_upstream_requests_total",
			Help: "Outbound upstream API requests by provider and outcome",
		}, []string{"provider", "outcome"})
		UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "matchbot_upstream_request_duration_seconds",
			Help:    "Outbound upstream API request duration seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"})
		CommandsHandled = promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "matchbot_commands_total",
			Help: "Chat commands handled by command name",
		}, []string{"command"})
		TeamResolvedGauge = promauto.NewGauge(prometheus.GaugeOpts{
			Name: "matchbot_team_resolved",
			Help: "Team identity resolved=1 unresolved=0",
		})
	})
}

// ObserveUpstream records one upstream call. Safe to call before Init (no-op).
func ObserveUpstream(provider, outcome string, d time.Duration) {
	if UpstreamRequests != nil {
		UpstreamRequests.WithLabelValues(provider, outcome).Inc()
	}
	if UpstreamDuration != nil {
		UpstreamDuration.WithLabelValues(provider).Observe(d.Seconds())
	}
}

// CountCommand increments the per-command counter. Safe before Init (no-op).
func CountCommand(name string) {
	if CommandsHandled != nil {
		CommandsHandled.WithLabelValues(name).Inc()
	}
}

// SetTeamResolved flips the resolution gauge. Safe before Init (no-op).
func SetTeamResolved(ok bool) {
	if TeamResolvedGauge == nil {
		return
	}
	if ok {
		TeamResolvedGauge.Set(1)
	} else {
		TeamResolvedGauge.Set(0)
	}
}

// Correlation ID helpers ----------------------------------------------------
type corrKeyType struct{}

var corrKey corrKeyType

// WithCorrelation returns a new context embedding the correlation id.
func WithCorrelation(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, corrKey, id)
}

// GetCorrelation returns correlation id or empty string.
func GetCorrelation(ctx context.Context) string {
	if s, ok := ctx.Value(corrKey).(string); ok {
		return s
	}
	return ""
}

// LoggerWithCorr returns a logger with corr attribute if present.
func LoggerWithCorr(ctx context.Context) *slog.Logger {
	if id := GetCorrelation(ctx); id != "" {
		return slog.Default().With(slog.String("corr", id))
	}
	return slog.Default()
}
