package pandascore

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/furiafans/matchbot/telemetry"
)

// TeamIdentity is the provider-assigned identifier for one team, together
// with the provider's name for it. Immutable once resolved.
type TeamIdentity struct {
	ID   int
	Name string
}

// Resolver resolves a team name to its TeamIdentity at most once per process.
// A failed resolution is final: every later Resolve call reports absent
// without retrying, so all team-scoped features stay degraded for the
// process lifetime.
type Resolver struct {
	Client *Client
	Name   string

	once sync.Once

	mu       sync.RWMutex
	identity TeamIdentity
	ok       bool
}

// Resolved reports the current resolution state without triggering a lookup.
func (r *Resolver) Resolved() (TeamIdentity, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.identity, r.ok
}

// Resolve returns the resolved identity, performing the search request on the
// first call only. The match is a case-insensitive substring check against the
// provider's ordered results, first hit wins. That tolerates suffixes and
// branding in provider data, but may over-match when several teams share a
// name fragment; kept as-is on purpose.
func (r *Resolver) Resolve(ctx context.Context) (TeamIdentity, bool) {
	r.once.Do(func() {
		teams, err := r.Client.SearchTeams(ctx, r.Name)
		if err != nil {
			telemetry.LoggerWithCorr(ctx).Warn("team resolution failed",
				slog.String("team", r.Name), slog.Any("err", err))
			return
		}
		needle := strings.ToLower(r.Name)
		for _, t := range teams {
			if strings.Contains(strings.ToLower(t.Name), needle) {
				r.mu.Lock()
				r.identity = TeamIdentity{ID: t.ID, Name: t.Name}
				r.ok = true
				r.mu.Unlock()
				telemetry.SetTeamResolved(true)
				slog.Info("team resolved",
					slog.String("team", t.Name), slog.Int("id", t.ID))
				return
			}
		}
		telemetry.LoggerWithCorr(ctx).Warn("team not found in search results",
			slog.String("team", r.Name), slog.Int("candidates", len(teams)))
	})
	return r.Resolved()
}
