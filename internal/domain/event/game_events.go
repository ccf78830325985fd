package event

import (
	"github.com/0xsj/overwatch-pkg/types"
)

// GameStarted is emitted when a session is created with a freshly allocated code.
type GameStarted struct {
	BaseEvent
	SessionID   types.ID
	CodeLength  int
	MaxAttempts int
	ExpiresAt   types.Timestamp
}

// NewGameStarted creates a new GameStarted event.
func NewGameStarted(sessionID types.ID, codeLength, maxAttempts int, expiresAt types.Timestamp) GameStarted {
	return GameStarted{
		BaseEvent:   NewBaseEvent(EventTypeGameStarted, sessionID, AggregateTypeGame),
		SessionID:   sessionID,
		CodeLength:  codeLength,
		MaxAttempts: maxAttempts,
		ExpiresAt:   expiresAt,
	}
}

// GameGuessed is emitted for every scored guess that leaves the game in progress.
type GameGuessed struct {
	BaseEvent
	SessionID            types.ID
	CorrectCount         int
	CorrectPositionCount int
	AttemptsRemaining    int
}

// NewGameGuessed creates a new GameGuessed event.
func NewGameGuessed(sessionID types.ID, correct, correctPosition, attemptsRemaining int) GameGuessed {
	return GameGuessed{
		BaseEvent:            NewBaseEvent(EventTypeGameGuessed, sessionID, AggregateTypeGame),
		SessionID:            sessionID,
		CorrectCount:         correct,
		CorrectPositionCount: correctPosition,
		AttemptsRemaining:    attemptsRemaining,
	}
}

// GameWon is emitted when a guess matches the secret code.
type GameWon struct {
	BaseEvent
	SessionID    types.ID
	AttemptsUsed int
}

// NewGameWon creates a new GameWon event.
func NewGameWon(sessionID types.ID, attemptsUsed int) GameWon {
	return GameWon{
		BaseEvent:    NewBaseEvent(EventTypeGameWon, sessionID, AggregateTypeGame),
		SessionID:    sessionID,
		AttemptsUsed: attemptsUsed,
	}
}

// GameLost is emitted when the last attempt is used without a match.
type GameLost struct {
	BaseEvent
	SessionID    types.ID
	AttemptsUsed int
}

// NewGameLost creates a new GameLost event.
func NewGameLost(sessionID types.ID, attemptsUsed int) GameLost {
	return GameLost{
		BaseEvent:    NewBaseEvent(EventTypeGameLost, sessionID, AggregateTypeGame),
		SessionID:    sessionID,
		AttemptsUsed: attemptsUsed,
	}
}

// GameEnded is emitted when a player abandons an active game.
type GameEnded struct {
	BaseEvent
	SessionID    types.ID
	AttemptsUsed int
}

// NewGameEnded creates a new GameEnded event.
func NewGameEnded(sessionID types.ID, attemptsUsed int) GameEnded {
	return GameEnded{
		BaseEvent:    NewBaseEvent(EventTypeGameEnded, sessionID, AggregateTypeGame),
		SessionID:    sessionID,
		AttemptsUsed: attemptsUsed,
	}
}
