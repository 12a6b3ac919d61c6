package randomness

import "errors"

// Sentinel kinds for randomness errors.
var (
	ErrUnavailable = errors.New("randomness source unavailable")
)
