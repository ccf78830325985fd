package command

import (
	"context"

	"github.com/0xsj/overwatch-pkg/types"
)

// EndGame abandons an active session and reveals its code.
type EndGame struct {
	SessionID types.ID
}

func (c EndGame) CommandName() string {
	return "mastermind.end_game"
}

// EndGameResult reveals the secret code of the removed session.
type EndGameResult struct {
	SecretCode   []int
	AttemptsUsed int
}

// EndGameHandler handles the EndGame command.
type EndGameHandler interface {
	Handle(ctx context.Context, cmd EndGame) (EndGameResult, error)
}
