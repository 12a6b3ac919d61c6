// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	meal "github.com/okian/mealmax/internal/domain/meal"
)

// CombatantDependencies defines the interface for roster operations.
type CombatantDependencies interface {
	PrepCombatant(ctx context.Context, name string) ([]meal.Meal, error)
	Combatants(ctx context.Context) []meal.Meal
	ClearCombatants(ctx context.Context)
}

// CombatantsHandler handles roster requests.
type CombatantsHandler struct {
	deps CombatantDependencies
}

// NewCombatantsHandler creates a new combatants handler.
func NewCombatantsHandler(deps CombatantDependencies) *CombatantsHandler {
	return &CombatantsHandler{deps: deps}
}

// prepRequest mirrors the JSON shape of POST /prep-combatant.
type prepRequest struct {
	Name string `json:"meal"`
}

type combatantsResponse struct {
	Combatants []mealSummary `json:"combatants"`
}

// HandlePrep handles POST /prep-combatant requests.
func (h *CombatantsHandler) HandlePrep(w http.ResponseWriter, r *http.Request) {
	const op = "api.prep_combatant"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req prepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("missing meal")))
		return
	}
	staged, err := h.deps.PrepCombatant(r.Context(), req.Name)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, combatantsResponse{Combatants: toSummaries(staged)})
}

// HandleClear handles DELETE /clear-combatants requests.
func (h *CombatantsHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.NotFound(w, r)
		return
	}
	h.deps.ClearCombatants(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"status": "combatants cleared"})
}

// HandleGet handles GET /combatants requests.
func (h *CombatantsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, combatantsResponse{Combatants: toSummaries(h.deps.Combatants(r.Context()))})
}
