package query

import (
	"context"

	"github.com/0xsj/overwatch-pkg/types"

	"github.com/0xsj/overwatch-mastermind/internal/domain/model"
)

// GetStats retrieves the progress of a session without revealing its code.
type GetStats struct {
	SessionID types.ID
}

func (q GetStats) QueryName() string {
	return "mastermind.get_stats"
}

// GetStatsResult contains the public view of a session.
type GetStatsResult struct {
	SessionID         types.ID
	AttemptsRemaining int
	MaxAttempts       int
	CodeLength        int
	State             model.GameState
	History           []model.GuessRecord
	ExpiresAt         types.Timestamp
}

// GetStatsHandler handles the GetStats query.
type GetStatsHandler interface {
	Handle(ctx context.Context, qry GetStats) (GetStatsResult, error)
}
