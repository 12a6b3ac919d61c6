// Package storage defines the meal catalog store contract and errors.
package storage

import (
	"context"

	meal "github.com/okian/mealmax/internal/domain/meal"
)

// Store is the durable meal catalog. It owns the battle counters and
// the soft-delete flag; all battle-relevant mutation flows through it.
type Store interface {
	// Create inserts a new meal. It fails with ErrDuplicateName when the
	// name is taken (including by a soft-deleted meal) and with
	// meal.ErrInvalidState on bad attributes.
	Create(ctx context.Context, name, cuisine string, price float64, difficulty meal.Difficulty) (meal.Meal, error)

	// GetByID returns a non-deleted meal by id, or ErrNotFound.
	GetByID(ctx context.Context, id int64) (meal.Meal, error)

	// GetByName returns a non-deleted meal by name, or ErrNotFound.
	GetByName(ctx context.Context, name string) (meal.Meal, error)

	// SoftDelete marks a meal deleted, retaining its counters. Missing
	// or already deleted meals fail with ErrNotFound.
	SoftDelete(ctx context.Context, id int64) error

	// List returns the catalog, optionally including deleted meals.
	List(ctx context.Context, includeDeleted bool) ([]meal.Meal, error)

	// IncrementStats adds one fought battle to a meal, and one win when
	// won is true.
	IncrementStats(ctx context.Context, id int64, won bool) error

	// ApplyResult commits a battle outcome atomically: both meals gain a
	// fought battle, the winner gains a win, and the loser is
	// soft-deleted. Either everything commits or nothing does. The
	// updated winner snapshot is returned.
	ApplyResult(ctx context.Context, winnerID, loserID int64) (meal.Meal, error)

	// ActiveCount returns the number of non-deleted meals.
	ActiveCount(ctx context.Context) (int, error)

	// Close releases the underlying resources.
	Close() error
}
