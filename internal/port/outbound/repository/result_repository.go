package repository

import (
	"context"

	"github.com/0xsj/overwatch-mastermind/internal/domain/model"
)

// ResultRepository archives finished games.
type ResultRepository interface {
	// Record stores a finished game. Recording the same session twice is a no-op.
	Record(ctx context.Context, result model.GameResult) error

	// Summary aggregates every archived result.
	Summary(ctx context.Context) (model.ResultSummary, error)
}
