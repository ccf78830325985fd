package model

import (
	"time"

	"github.com/0xsj/overwatch-pkg/types"

	domainerror "github.com/0xsj/overwatch-mastermind/internal/domain/error"
)

// GameState is the lifecycle state of a game session.
// Removal is not a state of the aggregate; a removed session is simply absent from the store.
type GameState string

const (
	GameStateActive GameState = "in_progress"
	GameStateWon    GameState = "won"
	GameStateLost   GameState = "lost"
)

func (s GameState) String() string {
	return string(s)
}

func (s GameState) IsTerminal() bool {
	return s == GameStateWon || s == GameStateLost
}

// GuessRecord is one entry of a session's history.
type GuessRecord struct {
	Guess                []int
	CorrectCount         int
	CorrectPositionCount int
	AttemptsRemaining    int
	GuessedAt            types.Timestamp
}

// GameConfig holds configuration for game creation.
type GameConfig struct {
	DigitBase        int
	MaxCodeLength    int
	MaxAttemptsLimit int
	SessionTTL       time.Duration
}

// DefaultGameConfig returns default game configuration.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		DigitBase:        DefaultDigitBase,
		MaxCodeLength:    MaxCodeLength,
		MaxAttemptsLimit: 100,
		SessionTTL:       5 * time.Minute,
	}
}

// ValidateParameters checks requested game parameters against the configured bounds.
func (c GameConfig) ValidateParameters(totalDigits, maxAttempts int) error {
	if totalDigits < 1 || totalDigits > c.MaxCodeLength {
		return domainerror.ErrInvalidParameters
	}
	if maxAttempts < 1 || maxAttempts > c.MaxAttemptsLimit {
		return domainerror.ErrInvalidParameters
	}
	return nil
}

// GameSession is a single Mastermind game.
// The secret code is fixed at creation; only Guess mutates the session.
type GameSession struct {
	id                types.ID
	secretCode        Code
	digitBase         int
	maxAttempts       int
	attemptsRemaining int
	victory           bool
	history           []GuessRecord
	createdAt         types.Timestamp
	expiresAt         types.Timestamp
	version           int64
}

// NewGameSession creates a new active GameSession.
func NewGameSession(secretCode Code, maxAttempts int, config GameConfig) (*GameSession, error) {
	if secretCode.IsEmpty() {
		return nil, domainerror.ErrSecretCodeRequired
	}
	if maxAttempts < 1 {
		return nil, domainerror.ErrMaxAttemptsRequired
	}

	now := types.Now()

	return &GameSession{
		id:                types.NewID(),
		secretCode:        secretCode,
		digitBase:         config.DigitBase,
		maxAttempts:       maxAttempts,
		attemptsRemaining: maxAttempts,
		victory:           false,
		history:           []GuessRecord{},
		createdAt:         now,
		expiresAt:         now.Add(config.SessionTTL),
		version:           0,
	}, nil
}

// ReconstructGameSession creates a GameSession from persisted data.
func ReconstructGameSession(
	id types.ID,
	secretCode Code,
	digitBase int,
	maxAttempts int,
	attemptsRemaining int,
	victory bool,
	history []GuessRecord,
	createdAt types.Timestamp,
	expiresAt types.Timestamp,
	version int64,
) *GameSession {
	if history == nil {
		history = []GuessRecord{}
	}
	return &GameSession{
		id:                id,
		secretCode:        secretCode,
		digitBase:         digitBase,
		maxAttempts:       maxAttempts,
		attemptsRemaining: attemptsRemaining,
		victory:           victory,
		history:           history,
		createdAt:         createdAt,
		expiresAt:         expiresAt,
		version:           version,
	}
}

// Getters

func (g *GameSession) ID() types.ID               { return g.id }
func (g *GameSession) SecretCode() Code           { return g.secretCode }
func (g *GameSession) DigitBase() int             { return g.digitBase }
func (g *GameSession) MaxAttempts() int           { return g.maxAttempts }
func (g *GameSession) AttemptsRemaining() int     { return g.attemptsRemaining }
func (g *GameSession) Victory() bool              { return g.victory }
func (g *GameSession) CreatedAt() types.Timestamp { return g.createdAt }
func (g *GameSession) ExpiresAt() types.Timestamp { return g.expiresAt }
func (g *GameSession) Version() int64             { return g.version }

// History returns a copy of the guess history.
func (g *GameSession) History() []GuessRecord {
	out := make([]GuessRecord, len(g.history))
	copy(out, g.history)
	return out
}

// SetVersion records the version token assigned by the store after a successful write.
func (g *GameSession) SetVersion(version int64) {
	g.version = version
}

// Commands

// Guess scores digits against the secret code and records the attempt.
// Terminal sessions reject every guess without scoring.
func (g *GameSession) Guess(digits []int) (GuessRecord, error) {
	if g.IsOver() {
		return GuessRecord{}, domainerror.ErrGameOver
	}
	if len(digits) != g.secretCode.Len() {
		return GuessRecord{}, domainerror.ErrInvalidGuess
	}
	guess, err := NewCode(digits, g.digitBase)
	if err != nil {
		return GuessRecord{}, domainerror.ErrInvalidGuess
	}

	feedback, err := Score(g.secretCode, guess)
	if err != nil {
		return GuessRecord{}, err
	}

	g.attemptsRemaining--
	if feedback.IsFullMatch(g.secretCode.Len()) {
		g.victory = true
	}

	record := GuessRecord{
		Guess:                guess.Digits(),
		CorrectCount:         feedback.CorrectCount,
		CorrectPositionCount: feedback.CorrectPositionCount,
		AttemptsRemaining:    g.attemptsRemaining,
		GuessedAt:            types.Now(),
	}
	g.history = append(g.history, record)

	return record, nil
}

// Queries

func (g *GameSession) State() GameState {
	switch {
	case g.victory:
		return GameStateWon
	case g.attemptsRemaining <= 0:
		return GameStateLost
	default:
		return GameStateActive
	}
}

func (g *GameSession) IsOver() bool {
	return g.State().IsTerminal()
}

func (g *GameSession) IsExpired() bool {
	return types.Now().After(g.expiresAt)
}

func (g *GameSession) AttemptsUsed() int {
	return g.maxAttempts - g.attemptsRemaining
}

func (g *GameSession) CodeLength() int {
	return g.secretCode.Len()
}

func (g *GameSession) TimeUntilExpiry() time.Duration {
	return g.expiresAt.Time().Sub(types.Now().Time())
}
