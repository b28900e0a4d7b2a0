package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrConcurrentModification is returned when a conditional update lost
	// a race with another writer.
	ErrConcurrentModification = errors.New("entity modified concurrently")
)
