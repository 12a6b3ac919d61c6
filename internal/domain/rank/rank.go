// Package rank derives sorted leaderboard views over catalog meals.
package rank

import (
	"fmt"
	"sort"
	"strings"

	meal "github.com/okian/mealmax/internal/domain/meal"
)

// Metric selects how the leaderboard is ordered.
type Metric string

// Supported leaderboard metrics.
const (
	MetricWins   Metric = "wins"
	MetricWinPct Metric = "win_pct"
)

// ParseMetric parses a leaderboard metric name.
func ParseMetric(s string) (Metric, error) {
	switch Metric(strings.ToLower(strings.TrimSpace(s))) {
	case MetricWins, "":
		return MetricWins, nil
	case MetricWinPct:
		return MetricWinPct, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMetric, s)
	}
}

// Entry is one leaderboard row.
type Entry struct {
	Rank       int             `json:"rank"`
	ID         int64           `json:"id"`
	Name       string          `json:"meal"`
	Cuisine    string          `json:"cuisine"`
	Price      float64         `json:"price"`
	Difficulty meal.Difficulty `json:"difficulty"`
	Battles    int64           `json:"battles"`
	Wins       int64           `json:"wins"`
	WinPct     float64         `json:"win_pct"`
}

// Leaderboard ranks the given meals by the chosen metric. Deleted meals
// are excluded; ordering is descending by metric with ties broken by
// ascending id so output is reproducible. The input is not mutated.
func Leaderboard(meals []meal.Meal, by Metric) []Entry {
	entries := make([]Entry, 0, len(meals))
	for _, m := range meals {
		if m.Deleted {
			continue
		}
		entries = append(entries, Entry{
			ID:         m.ID,
			Name:       m.Name,
			Cuisine:    m.Cuisine,
			Price:      m.Price,
			Difficulty: m.Difficulty,
			Battles:    m.Battles,
			Wins:       m.Wins,
			WinPct:     m.WinPct(),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		var ka, kb float64
		switch by {
		case MetricWinPct:
			ka, kb = a.WinPct, b.WinPct
		default:
			ka, kb = float64(a.Wins), float64(b.Wins)
		}
		if ka != kb {
			return ka > kb
		}
		return a.ID < b.ID
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
