package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const createGameResultsTable = `
CREATE TABLE IF NOT EXISTS game_results (
    session_id VARCHAR(26) PRIMARY KEY,
    outcome VARCHAR(16) NOT NULL CHECK (outcome IN ('won', 'lost', 'abandoned')),
    code_length INTEGER NOT NULL CHECK (code_length > 0),
    max_attempts INTEGER NOT NULL CHECK (max_attempts > 0),
    attempts_used INTEGER NOT NULL CHECK (attempts_used >= 0),
    started_at TIMESTAMPTZ NOT NULL,
    finished_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_game_results_outcome ON game_results(outcome);
CREATE INDEX IF NOT EXISTS idx_game_results_finished_at ON game_results(finished_at);
`

// Migrate creates the archive schema if it does not exist.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	migrations := []string{
		createGameResultsTable,
	}

	for _, migration := range migrations {
		if _, err := pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}
