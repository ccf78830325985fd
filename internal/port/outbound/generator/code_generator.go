package generator

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when the generator cannot produce numbers.
var ErrUnavailable = errors.New("generator unavailable")

// CodeGenerator is a source of random integers.
type CodeGenerator interface {
	// Generate returns qty integers drawn uniformly from [min, max].
	Generate(ctx context.Context, qty, min, max int) ([]int, error)

	// Quota returns the remaining allowance reported by the source.
	Quota(ctx context.Context) (int64, error)
}
