// Package meal contains the catalog meal model shared across layers.
package meal

import (
	"fmt"
	"strings"
)

// Difficulty is the preparation difficulty tier of a meal.
// HIGH is harder to prepare and acts as a handicap in battle scoring.
type Difficulty string

// Recognized difficulty tiers, ordered from easiest to hardest.
const (
	DifficultyLow  Difficulty = "LOW"
	DifficultyMed  Difficulty = "MED"
	DifficultyHigh Difficulty = "HIGH"
)

// ParseDifficulty parses a difficulty tier, accepting any casing.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(strings.ToUpper(strings.TrimSpace(s))) {
	case DifficultyLow:
		return DifficultyLow, nil
	case DifficultyMed:
		return DifficultyMed, nil
	case DifficultyHigh:
		return DifficultyHigh, nil
	default:
		return "", fmt.Errorf("%w: difficulty must be LOW, MED, or HIGH, got %q", ErrInvalidState, s)
	}
}

// Valid reports whether d is a recognized tier.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyLow, DifficultyMed, DifficultyHigh:
		return true
	}
	return false
}

// Meal is a catalog item. Counters are owned by the meal store and are
// mutated only through it; Deleted is a one-way soft-delete marker.
type Meal struct {
	ID         int64
	Name       string
	Cuisine    string
	Price      float64
	Difficulty Difficulty
	Deleted    bool
	Battles    int64
	Wins       int64
}

// Validate checks the attribute invariants: positive price and a
// recognized difficulty tier.
func (m Meal) Validate() error {
	if m.Price <= 0 {
		return fmt.Errorf("%w: price must be positive, got %v", ErrInvalidState, m.Price)
	}
	if !m.Difficulty.Valid() {
		return fmt.Errorf("%w: difficulty must be LOW, MED, or HIGH, got %q", ErrInvalidState, m.Difficulty)
	}
	return nil
}

// WinPct returns wins over battles fought, or 0 when the meal has not
// fought yet. The result is always within [0,1].
func (m Meal) WinPct() float64 {
	if m.Battles == 0 {
		return 0
	}
	return float64(m.Wins) / float64(m.Battles)
}
