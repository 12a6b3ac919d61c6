// Package scoring computes a meal's fighting strength from its attributes.
package scoring

import (
	meal "github.com/okian/mealmax/internal/domain/meal"
)

// Default scoring policy constants. The weights are tunable policy; the
// ordering LOW < MED < HIGH of the penalties is what battle fairness
// depends on (harder dishes fight at a handicap).
const (
	defaultCuisineWeight = 1.0
	defaultLowPenalty    = 1.0
	defaultMedPenalty    = 2.0
	defaultHighPenalty   = 3.0
)

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithCuisineWeight sets the multiplier applied to the cuisine length feature.
func WithCuisineWeight(w float64) Option {
	return func(s *Scorer) {
		if w > 0 {
			s.cuisineWeight = w
		}
	}
}

// WithDifficultyPenalties sets per-tier strength penalties from a
// configuration map keyed by tier name. Entries that would break the
// LOW < MED < HIGH ordering are rejected as a whole.
func WithDifficultyPenalties(penalties map[string]float64) Option {
	return func(s *Scorer) {
		low, okLow := penalties[string(meal.DifficultyLow)]
		med, okMed := penalties[string(meal.DifficultyMed)]
		high, okHigh := penalties[string(meal.DifficultyHigh)]
		if !okLow || !okMed || !okHigh {
			return
		}
		if !(low < med && med < high) {
			return
		}
		s.penalties = map[meal.Difficulty]float64{
			meal.DifficultyLow:  low,
			meal.DifficultyMed:  med,
			meal.DifficultyHigh: high,
		}
	}
}

// Scorer computes a deterministic, side-effect-free battle score.
type Scorer struct {
	cuisineWeight float64
	penalties     map[meal.Difficulty]float64
}

// New creates a Scorer with the default policy, then applies options.
func New(opts ...Option) *Scorer {
	s := &Scorer{
		cuisineWeight: defaultCuisineWeight,
		penalties: map[meal.Difficulty]float64{
			meal.DifficultyLow:  defaultLowPenalty,
			meal.DifficultyMed:  defaultMedPenalty,
			meal.DifficultyHigh: defaultHighPenalty,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score computes the fighting strength of a meal:
//
//	price * cuisineWeight * len(cuisine) - penalty(difficulty)
//
// The result is monotone non-decreasing in price and strictly ordered
// LOW > MED > HIGH across difficulty tiers for fixed price and cuisine.
// Invalid attribute values fail with meal.ErrInvalidState; the catalog
// should never hand such a meal over, but the function defends anyway.
func (s *Scorer) Score(m meal.Meal) (float64, error) {
	if err := m.Validate(); err != nil {
		return 0, err
	}
	base := m.Price * s.cuisineWeight * float64(len(m.Cuisine))
	return base - s.penalties[m.Difficulty], nil
}
