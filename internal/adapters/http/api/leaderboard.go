// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	rank "github.com/okian/mealmax/internal/domain/rank"
)

// LeaderboardDependencies defines the interface for leaderboard reads.
type LeaderboardDependencies interface {
	Leaderboard(ctx context.Context, by rank.Metric) ([]rank.Entry, error)
}

// LeaderboardHandler handles leaderboard requests.
type LeaderboardHandler struct {
	deps LeaderboardDependencies
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(deps LeaderboardDependencies) *LeaderboardHandler {
	return &LeaderboardHandler{deps: deps}
}

type leaderboardResponse struct {
	Leaderboard []rank.Entry `json:"leaderboard"`
}

// HandleGetLeaderboard handles GET /leaderboard?sort=wins|win_pct requests.
func (h *LeaderboardHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	metric, err := rank.ParseMetric(r.URL.Query().Get("sort"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	entries, err := h.deps.Leaderboard(r.Context(), metric)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, leaderboardResponse{Leaderboard: entries})
}
