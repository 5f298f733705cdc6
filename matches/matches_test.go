package matches

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/furiafans/matchbot/pandascore"
)

// matchServer serves /teams plus a configurable /matches payload.
func matchServer(t *testing.T, matchesBody any) (*httptest.Server, *int) {
	t.Helper()
	matchCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/teams", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{{"id": 3243, "name": "FURIA"}})
	})
	mux.HandleFunc("/matches", func(w http.ResponseWriter, r *http.Request) {
		matchCalls++
		_ = json.NewEncoder(w).Encode(matchesBody)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, &matchCalls
}

func newService(t *testing.T, matchesBody any) (*Service, *int) {
	t.Helper()
	server, calls := matchServer(t, matchesBody)
	client := &pandascore.Client{Token: "ps-token", BaseURL: server.URL}
	return &Service{
		Client:   client,
		Resolver: &pandascore.Resolver{Client: client, Name: "furia"},
	}, calls
}

func liveMatchBody(opponents []string, scores []int) []map[string]any {
	ops := make([]map[string]any, 0, len(opponents))
	for _, n := range opponents {
		ops = append(ops, map[string]any{"opponent": map[string]any{"name": n}})
	}
	res := make([]map[string]any, 0, len(scores))
	for _, s := range scores {
		res = append(res, map[string]any{"score": s})
	}
	return []map[string]any{{
		"name":      "FURIA vs NAVI",
		"begin_at":  "2025-05-06T18:00:00Z",
		"opponents": ops,
		"results":   res,
	}}
}

func TestLiveMatch(t *testing.T) {
	svc, _ := newService(t, liveMatchBody([]string{"FURIA", "NAVI"}, []int{1, 0}))
	live := svc.Live(context.Background())
	if live == nil {
		t.Fatalf("Live() = nil, want match")
	}
	if live.TeamA != "FURIA" || live.TeamB != "NAVI" || live.ScoreA != 1 || live.ScoreB != 0 {
		t.Errorf("Live() = %+v", live)
	}
	if live.Label != "FURIA vs NAVI" {
		t.Errorf("Label = %q", live.Label)
	}
}

func TestLiveMatchDropsPartialRecords(t *testing.T) {
	tests := []struct {
		name      string
		opponents []string
		scores    []int
	}{
		{name: "one opponent", opponents: []string{"FURIA"}, scores: []int{1, 0}},
		{name: "one score", opponents: []string{"FURIA", "NAVI"}, scores: []int{1}},
		{name: "empty lists", opponents: nil, scores: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService(t, liveMatchBody(tt.opponents, tt.scores))
			if live := svc.Live(context.Background()); live != nil {
				t.Errorf("Live() = %+v, want nil for partial record", live)
			}
		})
	}
}

func TestLiveMatchAbsentWithoutCredential(t *testing.T) {
	calls := 0
	client := &pandascore.Client{
		Token: "",
		HTTPClient: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			calls++
			return http.DefaultTransport.RoundTrip(r)
		})},
	}
	svc := &Service{Client: client, Resolver: &pandascore.Resolver{Client: client, Name: "furia"}}
	if live := svc.Live(context.Background()); live != nil {
		t.Errorf("Live() = %+v, want nil without credential", live)
	}
	if calls != 0 {
		t.Errorf("expected 0 HTTP calls without credential, got %d", calls)
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestUpcomingSkipsShortOpponentLists(t *testing.T) {
	body := []map[string]any{
		{
			"name":     "FURIA vs NAVI",
			"begin_at": "2025-05-06T18:00:00Z",
			"opponents": []map[string]any{
				{"opponent": map[string]any{"name": "FURIA"}},
				{"opponent": map[string]any{"name": "NAVI"}},
			},
		},
		{
			"name":      "TBD match",
			"begin_at":  "2025-05-07T18:00:00Z",
			"opponents": []map[string]any{{"opponent": map[string]any{"name": "FURIA"}}},
		},
	}
	svc, _ := newService(t, body)
	games := svc.Upcoming(context.Background(), 5)
	if len(games) != 1 {
		t.Fatalf("Upcoming() returned %d records, want 1", len(games))
	}
	g := games[0]
	if g.When != "2025-05-06 18:00" {
		t.Errorf("When = %q, want 2025-05-06 18:00", g.When)
	}
	if g.TeamA != "FURIA" || g.TeamB != "NAVI" {
		t.Errorf("teams = %q vs %q", g.TeamA, g.TeamB)
	}
}

func TestUpcomingNeverExceedsLimit(t *testing.T) {
	var body []map[string]any
	for i := 0; i < 3; i++ {
		body = append(body, map[string]any{
			"name":     "match",
			"begin_at": "2025-05-06T18:00:00Z",
			"opponents": []map[string]any{
				{"opponent": map[string]any{"name": "A"}},
				{"opponent": map[string]any{"name": "B"}},
			},
		})
	}
	svc, _ := newService(t, body)
	if games := svc.Upcoming(context.Background(), 2); len(games) > 2 {
		t.Errorf("Upcoming(2) returned %d records", len(games))
	}
}

func TestUpcomingEmptyOnFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/teams", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{{"id": 1, "name": "FURIA"}})
	})
	mux.HandleFunc("/matches", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := &pandascore.Client{Token: "t", BaseURL: server.URL}
	svc := &Service{Client: client, Resolver: &pandascore.Resolver{Client: client, Name: "furia"}}
	if games := svc.Upcoming(context.Background(), 5); len(games) != 0 {
		t.Errorf("Upcoming() = %v, want empty on failure", games)
	}
	if live := svc.Live(context.Background()); live != nil {
		t.Errorf("Live() = %+v, want nil on failure", live)
	}
}

func TestRecentResults(t *testing.T) {
	svc := &Service{History: []string{"r1", "r2", "r3"}}
	got := svc.RecentResults(2)
	if len(got) != 2 || got[0] != "r1" || got[1] != "r2" {
		t.Errorf("RecentResults(2) = %v, want first 2 in order", got)
	}
	if got := svc.RecentResults(10); len(got) != 3 {
		t.Errorf("RecentResults(10) = %v, want all 3", got)
	}
	if got := svc.RecentResults(0); len(got) != 0 {
		t.Errorf("RecentResults(0) = %v, want empty", got)
	}
}

func TestFormatBeginAt(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "2025-05-06T18:00:00Z", want: "2025-05-06 18:00"},
		{in: "2025-05-06T18:00:00-03:00", want: "2025-05-06 18:00"},
		{in: "", want: ""},
		{in: "2025-05-06", want: "2025-05-06"},
	}
	for _, tt := range tests {
		if got := FormatBeginAt(tt.in); got != tt.want {
			t.Errorf("FormatBeginAt(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
