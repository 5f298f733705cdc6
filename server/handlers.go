package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/furiafans/matchbot/config"
	"github.com/furiafans/matchbot/pandascore"
)

// Handlers serves health and status requests.
type Handlers struct {
	Cfg      *config.Config
	Resolver *pandascore.Resolver
	Started  time.Time
}

// NewHandlers wires the handler dependencies.
func NewHandlers(cfg *config.Config, resolver *pandascore.Resolver) *Handlers {
	return &Handlers{Cfg: cfg, Resolver: resolver, Started: time.Now()}
}

// HandleHealthz responds to liveness probe requests. The bot holds no
// persistent connections worth checking here; reachability is the signal.
func (h *Handlers) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type statusResponse struct {
	Status        string          `json:"status"`
	UptimeSeconds int64           `json:"uptime_seconds"`
	Features      map[string]bool `json:"features"`
	Team          teamStatus      `json:"team"`
}

type teamStatus struct {
	Resolved bool   `json:"resolved"`
	ID       int    `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
}

// HandleStatus reports which features are configured and whether the team
// identity resolved. It never triggers a resolution attempt itself.
func (h *Handlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	identity, resolved := h.Resolver.Resolved()
	resp := statusResponse{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(h.Started).Seconds()),
		Features: map[string]bool{
			"match_data":    h.Cfg.MatchDataReady(),
			"stream_lookup": h.Cfg.StreamReady(),
			"chat":          h.Cfg.ValidateChatReady() == nil,
		},
		Team: teamStatus{Resolved: resolved, ID: identity.ID, Name: identity.Name},
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
