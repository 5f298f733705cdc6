// Package pandascore contains minimal helpers to interact with the PandaScore
// CS:GO API for team search and match listing, using a static bearer token.
package pandascore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/furiafans/matchbot/telemetry"
)

const defaultBaseURL = "https://api.pandascore.co/csgo"

// Match statuses accepted by ListMatches.
const (
	StatusRunning    = "running"
	StatusNotStarted = "not_started"
)

// Sentinel errors so callers can distinguish failure causes for logging while
// still collapsing everything to an absent result at the boundary.
var (
	ErrNotConfigured = errors.New("pandascore: missing api token")
	ErrBadStatus     = errors.New("pandascore: unexpected status")
	ErrBadShape      = errors.New("pandascore: unexpected payload")
)

// Team is one entry from the team-search endpoint.
type Team struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Match is the raw shape returned by the matches endpoint. Only the fields the
// services normalize are decoded.
type Match struct {
	Name      string `json:"name"`
	BeginAt   string `json:"begin_at"`
	Opponents []struct {
		Opponent struct {
			Name string `json:"name"`
		} `json:"opponent"`
	} `json:"opponents"`
	Results []struct {
		Score int `json:"score"`
	} `json:"results"`
}

// OpponentNames returns the opponent names in provider order.
func (m *Match) OpponentNames() []string {
	names := make([]string, 0, len(m.Opponents))
	for _, o := range m.Opponents {
		if o.Opponent.Name != "" {
			names = append(names, o.Opponent.Name)
		}
	}
	return names
}

// Scores returns the result scores in provider order.
func (m *Match) Scores() []int {
	scores := make([]int, 0, len(m.Results))
	for _, r := range m.Results {
		scores = append(scores, r.Score)
	}
	return scores
}

// Client provides the minimal PandaScore surface needed by the bot.
type Client struct {
	Token      string
	BaseURL    string // defaults to the public CS:GO API
	HTTPClient *http.Client
}

var defaultHTTPClient = &http.Client{Timeout: 10 * time.Second}

func (c *Client) http() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return defaultHTTPClient
}

func (c *Client) base() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return defaultBaseURL
}

// get performs one authorized GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	if c.Token == "" {
		return ErrNotConfigured
	}
	ctx, span := telemetry.StartSpan(ctx, "pandascore", "GET "+path)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base()+path, nil)
	if err != nil {
		return err
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Authorization", "Bearer "+c.Token)

	start := time.Now()
	resp, err := c.http().Do(req)
	if err != nil {
		telemetry.ObserveUpstream("pandascore", telemetry.OutcomeTransport, time.Since(start))
		telemetry.RecordError(span, err)
		return err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Warn("failed to close response body", slog.Any("err", err))
		}
	}()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		telemetry.ObserveUpstream("pandascore", telemetry.OutcomeStatus, time.Since(start))
		err := fmt.Errorf("%w: %s", ErrBadStatus, resp.Status)
		telemetry.RecordError(span, err)
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		telemetry.ObserveUpstream("pandascore", telemetry.OutcomeShape, time.Since(start))
		err = fmt.Errorf("%w: %v", ErrBadShape, err)
		telemetry.RecordError(span, err)
		return err
	}
	telemetry.ObserveUpstream("pandascore", telemetry.OutcomeOK, time.Since(start))
	telemetry.SetSpanSuccess(span)
	return nil
}

// SearchTeams queries the team-search endpoint filtered by name.
func (c *Client) SearchTeams(ctx context.Context, name string) ([]Team, error) {
	q := url.Values{}
	q.Set("search[name]", name)
	var teams []Team
	if err := c.get(ctx, "/teams", q, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// ListMatches queries the matches endpoint filtered to one status and one
// opponent, sorted by start time ascending (delegated to the provider).
func (c *Client) ListMatches(ctx context.Context, status string, teamID, pageSize int) ([]Match, error) {
	q := url.Values{}
	q.Set("filter[status]", status)
	q.Set("filter[opponents]", fmt.Sprintf("%d", teamID))
	q.Set("sort", "begin_at")
	q.Set("page[size]", fmt.Sprintf("%d", pageSize))
	var out []Match
	if err := c.get(ctx, "/matches", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}
