package meal

import "errors"

// Sentinel kinds for meal state errors.
var (
	ErrInvalidState = errors.New("invalid meal state")
)
