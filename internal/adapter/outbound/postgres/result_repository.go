package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/0xsj/overwatch-mastermind/internal/domain/model"
	"github.com/0xsj/overwatch-mastermind/internal/port/outbound/repository"
)

const insertResult = `
INSERT INTO game_results (session_id, outcome, code_length, max_attempts, attempts_used, started_at, finished_at)
VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7, NOW()))
ON CONFLICT (session_id) DO NOTHING
`

const summarizeResults = `
SELECT
    COUNT(*),
    COUNT(*) FILTER (WHERE outcome = 'won'),
    COUNT(*) FILTER (WHERE outcome = 'lost'),
    COUNT(*) FILTER (WHERE outcome = 'abandoned'),
    AVG(attempts_used) FILTER (WHERE outcome = 'won')::float8
FROM game_results
`

// resultRepository implements repository.ResultRepository.
type resultRepository struct {
	pool *pgxpool.Pool
}

// NewResultRepository creates a new ResultRepository.
func NewResultRepository(pool *pgxpool.Pool) repository.ResultRepository {
	return &resultRepository{pool: pool}
}

func (r *resultRepository) Record(ctx context.Context, result model.GameResult) error {
	row := ToResultRow(result)
	_, err := r.pool.Exec(ctx, insertResult,
		row.SessionID,
		row.Outcome,
		row.CodeLength,
		row.MaxAttempts,
		row.AttemptsUsed,
		row.StartedAt,
		row.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record game result: %w", err)
	}
	return nil
}

func (r *resultRepository) Summary(ctx context.Context) (model.ResultSummary, error) {
	var (
		s   model.ResultSummary
		avg pgtype.Float8
	)
	err := r.pool.QueryRow(ctx, summarizeResults).Scan(&s.Total, &s.Won, &s.Lost, &s.Abandoned, &avg)
	if err != nil {
		return model.ResultSummary{}, fmt.Errorf("failed to summarize game results: %w", err)
	}
	s.AvgAttemptsToWin = float8OrZero(avg)
	return s, nil
}
