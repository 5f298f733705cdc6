package pandascore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResolverResolvesOnce(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": 3243, "name": "FURIA Esports"},
		})
	}))
	defer server.Close()

	r := &Resolver{
		Client: &Client{Token: "ps-token", BaseURL: server.URL},
		Name:   "furia",
	}

	id1, ok := r.Resolve(context.Background())
	if !ok {
		t.Fatalf("Resolve() not ok")
	}
	if id1.ID != 3243 || id1.Name != "FURIA Esports" {
		t.Errorf("Resolve() = %+v", id1)
	}

	id2, ok := r.Resolve(context.Background())
	if !ok || id2 != id1 {
		t.Errorf("second Resolve() = %+v ok=%v, want same identity", id2, ok)
	}
	if calls != 1 {
		t.Errorf("expected 1 search request, got %d", calls)
	}
}

func TestResolverSubstringMatch(t *testing.T) {
	// Contains, not equals: the first entry whose name contains the search
	// string wins, whatever branding the provider appends.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": 1, "name": "Unrelated Team"},
			{"id": 2, "name": "FURIA fe"},
			{"id": 3, "name": "FURIA"},
		})
	}))
	defer server.Close()

	r := &Resolver{Client: &Client{Token: "t", BaseURL: server.URL}, Name: "furia"}
	id, ok := r.Resolve(context.Background())
	if !ok || id.ID != 2 {
		t.Errorf("Resolve() = %+v ok=%v, want first containing match (id 2)", id, ok)
	}
}

func TestResolverFailureIsFinal(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	r := &Resolver{Client: &Client{Token: "t", BaseURL: server.URL}, Name: "furia"}
	if _, ok := r.Resolve(context.Background()); ok {
		t.Fatalf("Resolve() ok on upstream failure")
	}
	// No retry path: a failed resolution stays absent for the process lifetime.
	if _, ok := r.Resolve(context.Background()); ok {
		t.Fatalf("second Resolve() ok, want still absent")
	}
	if calls != 1 {
		t.Errorf("expected 1 search request, got %d", calls)
	}
}

func TestResolverUnconfigured(t *testing.T) {
	r := &Resolver{Client: &Client{Token: ""}, Name: "furia"}
	if _, ok := r.Resolve(context.Background()); ok {
		t.Errorf("Resolve() ok without token")
	}
	if _, ok := r.Resolved(); ok {
		t.Errorf("Resolved() ok without token")
	}
}
