package battle

import "errors"

// Sentinel kinds for roster and resolution errors.
var (
	ErrRosterFull             = errors.New("combatant list is full")
	ErrDuplicateCombatant     = errors.New("combatant is already staged")
	ErrInsufficientCombatants = errors.New("two combatants must be prepped for a battle")
	ErrCombatantNotStaged     = errors.New("combatant is not staged")
)
