// Package matches is the match query service: it turns raw PandaScore match
// payloads into display-ready records and collapses every failure to an
// absent or empty result the presentation layer can render without
// special-casing. Failure causes are only distinguished in logs.
package matches

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/furiafans/matchbot/pandascore"
	"github.com/furiafans/matchbot/telemetry"
)

// LiveMatch is a fully populated live score. Never partially filled: records
// with fewer than two opponents or two scores are dropped, not padded.
type LiveMatch struct {
	Label  string
	TeamA  string
	TeamB  string
	ScoreA int
	ScoreB int
}

// UpcomingMatch is one scheduled match. When is a timezone-naive display
// string truncated to minute precision, exactly as the provider returned it.
type UpcomingMatch struct {
	When  string
	Label string
	TeamA string
	TeamB string
}

// DefaultHistory is the canned recent-results list served by RecentResults.
// Static data, not a live query; a known limitation of this bot.
var DefaultHistory = []string{
	"2025-04-08 – FURIA 0–2 The MongolZ (PGL Bucharest 2025)",
	"2025-04-07 – FURIA 0–2 Virtus.pro (PGL Bucharest 2025)",
	"2025-04-06 – FURIA 1–2 Complexity (PGL Bucharest 2025)",
}

// Service answers live, upcoming, and recent-result queries for one team.
type Service struct {
	Client   *pandascore.Client
	Resolver *pandascore.Resolver

	// History overrides DefaultHistory when non-nil.
	History []string
}

// Live returns the current running match, or nil when there is none, the
// feature is unconfigured, the team is unresolved, or the upstream call
// failed. All of those render identically as "no live match".
func (s *Service) Live(ctx context.Context) *LiveMatch {
	id, ok := s.Resolver.Resolve(ctx)
	if !ok {
		return nil
	}
	ms, err := s.Client.ListMatches(ctx, pandascore.StatusRunning, id.ID, 1)
	if err != nil {
		logUnavailable(ctx, "live match", err)
		return nil
	}
	if len(ms) == 0 {
		return nil
	}
	m := ms[0]
	names := m.OpponentNames()
	scores := m.Scores()
	if len(names) < 2 || len(scores) < 2 {
		return nil
	}
	label := m.Name
	if label == "" {
		label = "Partida ao vivo"
	}
	return &LiveMatch{
		Label:  label,
		TeamA:  names[0],
		TeamB:  names[1],
		ScoreA: scores[0],
		ScoreB: scores[1],
	}
}

// Upcoming returns up to limit scheduled matches in provider order. Matches
// with fewer than two named opponents are skipped. Failures return an empty
// slice; callers treat "no games" and "fetch failed" identically.
func (s *Service) Upcoming(ctx context.Context, limit int) []UpcomingMatch {
	id, ok := s.Resolver.Resolve(ctx)
	if !ok {
		return nil
	}
	ms, err := s.Client.ListMatches(ctx, pandascore.StatusNotStarted, id.ID, limit)
	if err != nil {
		logUnavailable(ctx, "upcoming matches", err)
		return nil
	}
	out := make([]UpcomingMatch, 0, len(ms))
	for _, m := range ms {
		names := m.OpponentNames()
		if len(names) < 2 {
			continue
		}
		out = append(out, UpcomingMatch{
			When:  FormatBeginAt(m.BeginAt),
			Label: m.Name,
			TeamA: names[0],
			TeamB: names[1],
		})
		if len(out) == limit {
			break
		}
	}
	return out
}

// RecentResults returns the first limit entries of the static history.
func (s *Service) RecentResults(limit int) []string {
	hist := s.History
	if hist == nil {
		hist = DefaultHistory
	}
	if limit > len(hist) {
		limit = len(hist)
	}
	if limit < 0 {
		limit = 0
	}
	return hist[:limit]
}

// FormatBeginAt truncates a provider start-time string to minute precision
// and replaces the date/time separator with a space. Display convenience
// only; no timezone conversion is attempted.
func FormatBeginAt(beginAt string) string {
	if len(beginAt) > 16 {
		beginAt = beginAt[:16]
	}
	return strings.Replace(beginAt, "T", " ", 1)
}

func logUnavailable(ctx context.Context, op string, err error) {
	l := telemetry.LoggerWithCorr(ctx)
	if errors.Is(err, pandascore.ErrNotConfigured) {
		l.Debug("match data unconfigured", slog.String("op", op))
		return
	}
	l.Warn("match data unavailable", slog.String("op", op), slog.Any("err", err))
}
