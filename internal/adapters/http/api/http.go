// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/mealmax/internal/adapters/randomness"
	"github.com/okian/mealmax/internal/adapters/storage"
	battle "github.com/okian/mealmax/internal/domain/battle"
	meal "github.com/okian/mealmax/internal/domain/meal"
	rank "github.com/okian/mealmax/internal/domain/rank"
)

// Dependencies required by HTTP handlers. Using an interface bundle
// keeps the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	CreateMeal(ctx context.Context, name, cuisine string, price float64, difficulty string) (meal.Meal, error)
	Meal(ctx context.Context, id int64) (meal.Meal, error)
	MealByName(ctx context.Context, name string) (meal.Meal, error)
	DeleteMeal(ctx context.Context, id int64) error

	PrepCombatant(ctx context.Context, name string) ([]meal.Meal, error)
	Combatants(ctx context.Context) []meal.Meal
	ClearCombatants(ctx context.Context)
	Battle(ctx context.Context) (battle.Result, error)

	Leaderboard(ctx context.Context, by rank.Metric) ([]rank.Entry, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	mealsHandler       *MealsHandler
	combatantsHandler  *CombatantsHandler
	battleHandler      *BattleHandler
	leaderboardHandler *LeaderboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		mealsHandler:       NewMealsHandler(deps),
		combatantsHandler:  NewCombatantsHandler(deps),
		battleHandler:      NewBattleHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/meals", MetricsMiddleware(s.mealsHandler.HandleMeals, "meals"))
	mux.HandleFunc("/meals/", MetricsMiddleware(s.mealsHandler.HandleMealByPath, "meals"))
	mux.HandleFunc("/prep-combatant", MetricsMiddleware(s.combatantsHandler.HandlePrep, "prep_combatant"))
	mux.HandleFunc("/clear-combatants", MetricsMiddleware(s.combatantsHandler.HandleClear, "clear_combatants"))
	mux.HandleFunc("/combatants", MetricsMiddleware(s.combatantsHandler.HandleGet, "combatants"))
	mux.HandleFunc("/battle", MetricsMiddleware(s.battleHandler.HandleBattle, "battle"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
}

// mealSummary mirrors the JSON shape of a catalog meal.
type mealSummary struct {
	ID         int64   `json:"id"`
	Name       string  `json:"meal"`
	Cuisine    string  `json:"cuisine"`
	Price      float64 `json:"price"`
	Difficulty string  `json:"difficulty"`
	Battles    int64   `json:"battles"`
	Wins       int64   `json:"wins"`
}

func toSummary(m meal.Meal) mealSummary {
	return mealSummary{
		ID:         m.ID,
		Name:       m.Name,
		Cuisine:    m.Cuisine,
		Price:      m.Price,
		Difficulty: string(m.Difficulty),
		Battles:    m.Battles,
		Wins:       m.Wins,
	}
}

func toSummaries(meals []meal.Meal) []mealSummary {
	out := make([]mealSummary, len(meals))
	for i, m := range meals {
		out[i] = toSummary(m)
	}
	return out
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError translates domain error kinds to HTTP status codes
// and stable code strings. Every kind is recovered here; none escape as
// a crash.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, storage.ErrDuplicateName):
		writeError(w, http.StatusConflict, "duplicate_meal", err)
	case errors.Is(err, meal.ErrInvalidState):
		writeError(w, http.StatusBadRequest, "invalid_meal_state", err)
	case errors.Is(err, battle.ErrInsufficientCombatants):
		writeError(w, http.StatusBadRequest, "insufficient_combatants", err)
	case errors.Is(err, battle.ErrDuplicateCombatant):
		writeError(w, http.StatusBadRequest, "duplicate_combatant", err)
	case errors.Is(err, battle.ErrRosterFull):
		writeError(w, http.StatusBadRequest, "roster_full", err)
	case errors.Is(err, rank.ErrInvalidMetric):
		writeError(w, http.StatusBadRequest, "invalid_metric", err)
	case errors.Is(err, randomness.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "resolution_unavailable", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
