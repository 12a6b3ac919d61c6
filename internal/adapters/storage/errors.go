package storage

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrNotFound      = errors.New("meal not found")
	ErrDuplicateName = errors.New("meal name already exists")
)
