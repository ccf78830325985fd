package model

import (
	"github.com/0xsj/overwatch-pkg/types"
)

// GameOutcome is how a finished game ended.
type GameOutcome string

const (
	GameOutcomeWon       GameOutcome = "won"
	GameOutcomeLost      GameOutcome = "lost"
	GameOutcomeAbandoned GameOutcome = "abandoned"
)

func (o GameOutcome) String() string {
	return string(o)
}

func (o GameOutcome) IsValid() bool {
	switch o {
	case GameOutcomeWon, GameOutcomeLost, GameOutcomeAbandoned:
		return true
	default:
		return false
	}
}

// GameResult is the archived record of a finished game.
type GameResult struct {
	SessionID    types.ID
	Outcome      GameOutcome
	CodeLength   int
	MaxAttempts  int
	AttemptsUsed int
	StartedAt    types.Timestamp
	FinishedAt   types.Timestamp
}

// NewGameResult captures the final state of game with the given outcome.
func NewGameResult(game *GameSession, outcome GameOutcome) GameResult {
	return GameResult{
		SessionID:    game.ID(),
		Outcome:      outcome,
		CodeLength:   game.CodeLength(),
		MaxAttempts:  game.MaxAttempts(),
		AttemptsUsed: game.AttemptsUsed(),
		StartedAt:    game.CreatedAt(),
		FinishedAt:   types.Now(),
	}
}

// ResultSummary aggregates archived results.
type ResultSummary struct {
	Total            int64
	Won              int64
	Lost             int64
	Abandoned        int64
	AvgAttemptsToWin float64
}

// WinRate returns the share of finished games that were won.
func (s ResultSummary) WinRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Won) / float64(s.Total)
}
