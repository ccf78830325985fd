package store

import (
	"context"
)

// SupplyPool is the shared FIFO buffer of pre-generated digits.
type SupplyPool interface {
	// Allocate atomically removes and returns the first n digits.
	// Returns ErrInsufficientSupply and leaves the pool untouched when fewer than n are available.
	Allocate(ctx context.Context, n int) ([]int, error)

	// Replenish atomically appends digits to the back of the pool.
	// An empty slice is a no-op.
	Replenish(ctx context.Context, digits []int) error

	// Size returns the current number of digits. The value is advisory.
	Size(ctx context.Context) (int64, error)
}
