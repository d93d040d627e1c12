package storage

import "errors"

// Sentinel errors for storage operations.
var (
	// ErrNotFound is returned when a translation does not exist or has been
	// deleted.
	ErrNotFound = errors.New("translation not found")

	// ErrConflict is returned when a translation with the given ID already
	// exists.
	ErrConflict = errors.New("translation already exists")
)
