package command

import (
	"context"

	"github.com/0xsj/overwatch-pkg/types"

	"github.com/0xsj/overwatch-mastermind/internal/domain/model"
)

// SubmitGuess scores a guess against a session's secret code.
type SubmitGuess struct {
	SessionID types.ID
	Guess     []int
}

func (c SubmitGuess) CommandName() string {
	return "mastermind.submit_guess"
}

// SubmitGuessResult carries the feedback for one guess.
// SecretCode is only set once the game is won or lost.
type SubmitGuessResult struct {
	CorrectCount         int
	CorrectPositionCount int
	AttemptsRemaining    int
	State                model.GameState
	SecretCode           []int
}

// SubmitGuessHandler handles the SubmitGuess command.
type SubmitGuessHandler interface {
	Handle(ctx context.Context, cmd SubmitGuess) (SubmitGuessResult, error)
}
