package arenasim

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"

	"github.com/okian/mealmax/pkg/logger"

	"github.com/google/uuid"
)

// Cuisine pool for seeded meals. Name lengths vary so seeded catalogs
// cover a spread of scores.
var cuisines = []string{
	"Thai",
	"Greek",
	"French",
	"Mexican",
	"Italian",
	"Japanese",
	"Ethiopian",
	"Vietnamese",
}

var difficulties = []string{"LOW", "MED", "HIGH"}

// seedMeals creates cfg.Meals catalog entries with unique names and
// returns the names of the created meals.
func seedMeals(ctx context.Context, cfg *Config, client *httpClient, rng *rand.Rand, stats *Stats) ([]string, error) {
	url := cfg.BaseURL + "/meals"
	names := make([]string, 0, cfg.Meals)

	for i := 0; i < cfg.Meals; i++ {
		payload := mealPayload{
			Meal:       fmt.Sprintf("sim-meal-%s", uuid.New().String()[:8]),
			Cuisine:    cuisines[rng.Intn(len(cuisines))],
			Price:      1 + rng.Float64()*49,
			Difficulty: difficulties[rng.Intn(len(difficulties))],
		}

		resp, err := client.Post(ctx, url, payload)
		if err != nil {
			return nil, fmt.Errorf("failed to create meal %q: %w", payload.Meal, err)
		}
		status := resp.StatusCode
		drainResponse(resp)
		if status != http.StatusCreated {
			return nil, fmt.Errorf("unexpected status %d creating meal %q", status, payload.Meal)
		}

		names = append(names, payload.Meal)
		stats.MealsSeeded++

		if cfg.Verbose {
			logger.Get().Debug(ctx, "seeded meal",
				logger.String("meal", payload.Meal),
				logger.String("cuisine", payload.Cuisine),
				logger.Float64("price", payload.Price),
				logger.String("difficulty", payload.Difficulty))
		}
	}

	logger.Get().Info(ctx, "catalog seeded", logger.Int("meals", len(names)))
	return names, nil
}
