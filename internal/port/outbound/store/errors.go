package store

import "errors"

var (
	// ErrNotFound is returned when a game record does not exist or has expired.
	ErrNotFound = errors.New("game not found")

	// ErrVersionConflict is returned when a conditional update lost a race.
	ErrVersionConflict = errors.New("version conflict")

	// ErrInsufficientSupply is returned when the pool holds fewer digits than requested.
	ErrInsufficientSupply = errors.New("insufficient supply")
)
