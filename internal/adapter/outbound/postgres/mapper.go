package postgres

import (
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/0xsj/overwatch-pkg/types"

	"github.com/0xsj/overwatch-mastermind/internal/domain/model"
)

// ResultRow represents a game_results row in the database.
type ResultRow struct {
	SessionID    string
	Outcome      string
	CodeLength   int32
	MaxAttempts  int32
	AttemptsUsed int32
	StartedAt    pgtype.Timestamptz
	FinishedAt   pgtype.Timestamptz
}

// --- pgtype helpers ---

func timestampToPgTimestamptz(ts types.Timestamp) pgtype.Timestamptz {
	if ts.IsZero() {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: ts.Time(), Valid: true}
}

func float8OrZero(f pgtype.Float8) float64 {
	if !f.Valid {
		return 0
	}
	return f.Float64
}

// --- Result ---

// ToResultRow converts a GameResult to its row form.
func ToResultRow(r model.GameResult) ResultRow {
	return ResultRow{
		SessionID:    r.SessionID.String(),
		Outcome:      r.Outcome.String(),
		CodeLength:   int32(r.CodeLength),
		MaxAttempts:  int32(r.MaxAttempts),
		AttemptsUsed: int32(r.AttemptsUsed),
		StartedAt:    timestampToPgTimestamptz(r.StartedAt),
		FinishedAt:   timestampToPgTimestamptz(r.FinishedAt),
	}
}
