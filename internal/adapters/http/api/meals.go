// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	meal "github.com/okian/mealmax/internal/domain/meal"
)

// MealDependencies defines the interface for catalog operations.
type MealDependencies interface {
	CreateMeal(ctx context.Context, name, cuisine string, price float64, difficulty string) (meal.Meal, error)
	Meal(ctx context.Context, id int64) (meal.Meal, error)
	MealByName(ctx context.Context, name string) (meal.Meal, error)
	DeleteMeal(ctx context.Context, id int64) error
}

// MealsHandler handles catalog CRUD requests.
type MealsHandler struct {
	deps MealDependencies
}

// NewMealsHandler creates a new meals handler.
func NewMealsHandler(deps MealDependencies) *MealsHandler {
	return &MealsHandler{deps: deps}
}

// createMealRequest mirrors the JSON shape of POST /meals.
type createMealRequest struct {
	Name       string  `json:"meal"`
	Cuisine    string  `json:"cuisine"`
	Price      float64 `json:"price"`
	Difficulty string  `json:"difficulty"`
}

func (r createMealRequest) validate() error {
	switch {
	case strings.TrimSpace(r.Name) == "":
		return errors.New("missing meal")
	case strings.TrimSpace(r.Cuisine) == "":
		return errors.New("missing cuisine")
	case strings.TrimSpace(r.Difficulty) == "":
		return errors.New("missing difficulty")
	}
	return nil
}

// HandleMeals handles POST /meals requests.
func (h *MealsHandler) HandleMeals(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_meal"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req createMealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	created, err := h.deps.CreateMeal(r.Context(), req.Name, req.Cuisine, req.Price, req.Difficulty)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSummary(created))
}

// HandleMealByPath handles GET and DELETE /meals/{id} requests, plus
// GET /meals/by-name/{name}.
func (h *MealsHandler) HandleMealByPath(w http.ResponseWriter, r *http.Request) {
	const op = "api.meal_by_path"
	path := strings.TrimPrefix(r.URL.Path, "/meals/")
	if path == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	if name, ok := strings.CutPrefix(path, "by-name/"); ok {
		if r.Method != http.MethodGet || name == "" {
			http.NotFound(w, r)
			return
		}
		m, err := h.deps.MealByName(r.Context(), name)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSummary(m))
		return
	}

	id, err := strconv.ParseInt(path, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	switch r.Method {
	case http.MethodGet:
		m, err := h.deps.Meal(r.Context(), id)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSummary(m))
	case http.MethodDelete:
		if err := h.deps.DeleteMeal(r.Context(), id); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "meal deleted"})
	default:
		http.NotFound(w, r)
	}
}
