// Package randomness supplies uniform random values for battle outcome
// draws. Sources are substitutable so battles stay deterministic under
// test.
package randomness

import "context"

// Source produces uniformly distributed values in [0,1).
//
// A draw is the only operation in a battle that may wait on an external
// resource; implementations must bound that wait and surface failures
// as ErrUnavailable so the battle can abort without mutating state.
type Source interface {
	Next(ctx context.Context) (float64, error)
}
