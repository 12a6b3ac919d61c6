// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	battle "github.com/okian/mealmax/internal/domain/battle"
)

// BattleDependencies defines the interface for battle resolution.
type BattleDependencies interface {
	Battle(ctx context.Context) (battle.Result, error)
}

// BattleHandler handles battle requests.
type BattleHandler struct {
	deps BattleDependencies
}

// NewBattleHandler creates a new battle handler.
func NewBattleHandler(deps BattleDependencies) *BattleHandler {
	return &BattleHandler{deps: deps}
}

// battleResponse mirrors the JSON shape of a resolved battle.
type battleResponse struct {
	BattleID    string  `json:"battle_id"`
	Winner      string  `json:"winner"`
	Loser       string  `json:"loser"`
	WinnerScore float64 `json:"winner_score"`
	LoserScore  float64 `json:"loser_score"`
}

// HandleBattle handles POST /battle requests.
func (h *BattleHandler) HandleBattle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	res, err := h.deps.Battle(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, battleResponse{
		BattleID:    res.ID,
		Winner:      res.Winner.Name,
		Loser:       res.Loser.Name,
		WinnerScore: res.WinnerScore,
		LoserScore:  res.LoserScore,
	})
}
