// Package battle stages combatants and resolves probabilistic battles
// between two meals.
package battle

import (
	"fmt"

	meal "github.com/okian/mealmax/internal/domain/meal"
)

// Capacity is the maximum number of staged combatants.
const Capacity = 2

// Roster is an ordered staging area for upcoming battles. It holds at
// most Capacity distinct, non-deleted meals. The roster itself is not
// safe for concurrent use; the owning service serializes access to it
// together with the affected meals.
type Roster struct {
	slots []meal.Meal
}

// NewRoster creates an empty roster.
func NewRoster() *Roster {
	return &Roster{slots: make([]meal.Meal, 0, Capacity)}
}

// Prep stages a meal for battle. It rejects deleted meals, meals already
// occupying a slot, and any meal beyond the capacity, leaving existing
// slots untouched.
func (r *Roster) Prep(m meal.Meal) error {
	if m.Deleted {
		return fmt.Errorf("%w: %q is deleted", meal.ErrInvalidState, m.Name)
	}
	if len(r.slots) >= Capacity {
		return ErrRosterFull
	}
	for _, staged := range r.slots {
		if staged.ID == m.ID {
			return fmt.Errorf("%w: %q", ErrDuplicateCombatant, m.Name)
		}
	}
	r.slots = append(r.slots, m)
	return nil
}

// Combatants returns a copy of the staged meals in staging order.
func (r *Roster) Combatants() []meal.Meal {
	out := make([]meal.Meal, len(r.slots))
	copy(out, r.slots)
	return out
}

// Len returns the number of staged combatants.
func (r *Roster) Len() int {
	return len(r.slots)
}

// Clear removes all staged combatants.
func (r *Roster) Clear() {
	r.slots = r.slots[:0]
}

// Remove unstages the meal with the given id, preserving the order of
// the remaining slot.
func (r *Roster) Remove(id int64) error {
	for i, staged := range r.slots {
		if staged.ID == id {
			r.slots = append(r.slots[:i], r.slots[i+1:]...)
			return nil
		}
	}
	return ErrCombatantNotStaged
}

// Refresh replaces the staged copy of a meal with a fresh snapshot,
// matched by id. Used after counters change so the staged winner
// reflects its updated stats.
func (r *Roster) Refresh(m meal.Meal) {
	for i, staged := range r.slots {
		if staged.ID == m.ID {
			r.slots[i] = m
			return
		}
	}
}
