package battle

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	meal "github.com/okian/mealmax/internal/domain/meal"
)

// defaultScale is the score gap at which the stronger meal's win
// probability saturates at (just under) certainty.
const defaultScale = 100.0

// maxDelta caps the normalized score gap below 1 so the weaker meal
// keeps a non-zero upset probability even at saturation.
const maxDelta = 0.99

// Scorer computes a meal's fighting strength.
type Scorer interface {
	Score(m meal.Meal) (float64, error)
}

// Randomness supplies uniform values in [0,1) for outcome draws.
type Randomness interface {
	Next(ctx context.Context) (float64, error)
}

// Result is the ephemeral outcome of a single battle. It is returned to
// the caller and consumed by the stats update; it is never persisted.
type Result struct {
	ID          string
	Winner      meal.Meal
	Loser       meal.Meal
	WinnerScore float64
	LoserScore  float64
	Delta       float64
	Roll        float64
}

// Option applies a configuration option to the Resolver.
type Option func(*Resolver)

// WithScale sets the score-gap normalization constant. Larger values
// flatten the bias toward the stronger meal.
func WithScale(scale float64) Option {
	return func(r *Resolver) {
		if scale > 0 {
			r.scale = scale
		}
	}
}

// Resolver decides battles between two staged meals. The decision is a
// single uniform draw against a threshold derived from the score gap:
//
//	delta     = min(|scoreA - scoreB| / scale, maxDelta)
//	threshold = 0.5 + sign(scoreA - scoreB) * delta / 2
//
// Meal A wins when the draw lands below the threshold. Equal scores are
// a fair coin flip, the bias grows continuously with the gap, swapping
// slot order mirrors the threshold, and the weaker meal always keeps a
// non-zero chance as long as the draw spans [0,1).
type Resolver struct {
	scorer Scorer
	rng    Randomness
	scale  float64
}

// NewResolver creates a Resolver using the given scorer and randomness
// source.
func NewResolver(scorer Scorer, rng Randomness, opts ...Option) *Resolver {
	r := &Resolver{
		scorer: scorer,
		rng:    rng,
		scale:  defaultScale,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve runs a single battle between a and b. It has no side effects:
// the caller owns applying the result to catalog counters and roster
// state. A randomness failure aborts the battle with the source's error
// and mutates nothing.
func (r *Resolver) Resolve(ctx context.Context, a, b meal.Meal) (Result, error) {
	if a.ID == b.ID {
		return Result{}, fmt.Errorf("%w: %q staged twice", ErrDuplicateCombatant, a.Name)
	}
	if a.Deleted || b.Deleted {
		return Result{}, ErrInsufficientCombatants
	}

	scoreA, err := r.scorer.Score(a)
	if err != nil {
		return Result{}, err
	}
	scoreB, err := r.scorer.Score(b)
	if err != nil {
		return Result{}, err
	}

	delta := math.Min(math.Abs(scoreA-scoreB)/r.scale, maxDelta)
	threshold := 0.5
	switch {
	case scoreA > scoreB:
		threshold += delta / 2
	case scoreB > scoreA:
		threshold -= delta / 2
	}

	roll, err := r.rng.Next(ctx)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		ID:    uuid.NewString(),
		Delta: delta,
		Roll:  roll,
	}
	if roll < threshold {
		res.Winner, res.WinnerScore = a, scoreA
		res.Loser, res.LoserScore = b, scoreB
	} else {
		res.Winner, res.WinnerScore = b, scoreB
		res.Loser, res.LoserScore = a, scoreA
	}
	return res, nil
}
