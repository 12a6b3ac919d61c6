package randomness

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// LocalSource draws from an in-process PRNG. It exists for offline runs
// and tests; a seeded instance replays the same sequence.
type LocalSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewLocalSource creates a PRNG-backed source. A zero seed means a
// time-based one.
func NewLocalSource(seed int64) *LocalSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &LocalSource{
		rng: rand.New(rand.NewSource(seed)), //nolint:gosec // battle outcomes are not security-sensitive
	}
}

// Next returns a uniform value in [0,1).
func (s *LocalSource) Next(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64(), nil
}
