package command

import (
	"context"

	"github.com/0xsj/overwatch-pkg/types"
)

// StartGame allocates a secret code from the supply pool and opens a new session.
type StartGame struct {
	TotalDigits int
	MaxAttempts int
}

func (c StartGame) CommandName() string {
	return "mastermind.start_game"
}

// StartGameResult identifies the new session.
type StartGameResult struct {
	SessionID   types.ID
	CodeLength  int
	MaxAttempts int
	ExpiresAt   types.Timestamp
}

// StartGameHandler handles the StartGame command.
type StartGameHandler interface {
	Handle(ctx context.Context, cmd StartGame) (StartGameResult, error)
}
