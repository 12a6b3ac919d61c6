package rank

import "errors"

// Sentinel kinds for leaderboard errors.
var (
	ErrInvalidMetric = errors.New("invalid leaderboard metric")
)
