// Package testutil provides testing utilities for the mastermind service.
package testutil

import (
	"time"

	"github.com/0xsj/overwatch-pkg/log"
	"github.com/0xsj/overwatch-pkg/types"

	"github.com/0xsj/overwatch-mastermind/internal/domain/model"
)

// Fixtures provides builders for domain models in tests.
var Fixtures = &fixtures{}

type fixtures struct{}

// Logger returns a logger suitable for tests.
func (f *fixtures) Logger() log.Logger {
	return log.NewPretty(log.DefaultConfig())
}

// Code creates a Code over the default digit base.
func (f *fixtures) Code(digits ...int) model.Code {
	code, err := model.NewCode(digits, model.DefaultDigitBase)
	if err != nil {
		panic("fixtures: failed to create code: " + err.Error())
	}
	return code
}

// Game creates an active game with the given secret and attempt limit.
func (f *fixtures) Game(maxAttempts int, secret ...int) *model.GameSession {
	game, err := model.NewGameSession(f.Code(secret...), maxAttempts, model.DefaultGameConfig())
	if err != nil {
		panic("fixtures: failed to create game: " + err.Error())
	}
	return game
}

// GameBuilder returns a builder for customizing game state.
func (f *fixtures) GameBuilder() *GameBuilder {
	now := types.Now()
	return &GameBuilder{
		id:                types.NewID(),
		secret:            []int{1, 2, 3, 4},
		maxAttempts:       10,
		attemptsRemaining: 10,
		createdAt:         now,
		expiresAt:         now.Add(5 * time.Minute),
		version:           1,
	}
}

// GameBuilder builds games in arbitrary states.
type GameBuilder struct {
	id                types.ID
	secret            []int
	maxAttempts       int
	attemptsRemaining int
	victory           bool
	createdAt         types.Timestamp
	expiresAt         types.Timestamp
	version           int64
}

func (b *GameBuilder) WithSecret(digits ...int) *GameBuilder {
	b.secret = digits
	return b
}

func (b *GameBuilder) WithAttempts(max, remaining int) *GameBuilder {
	b.maxAttempts = max
	b.attemptsRemaining = remaining
	return b
}

func (b *GameBuilder) Won() *GameBuilder {
	b.victory = true
	return b
}

func (b *GameBuilder) Lost() *GameBuilder {
	b.attemptsRemaining = 0
	return b
}

func (b *GameBuilder) Expired() *GameBuilder {
	b.expiresAt = types.FromTime(time.Now().Add(-time.Second))
	return b
}

func (b *GameBuilder) Build() *model.GameSession {
	return model.ReconstructGameSession(
		b.id,
		Fixtures.Code(b.secret...),
		model.DefaultDigitBase,
		b.maxAttempts,
		b.attemptsRemaining,
		b.victory,
		nil,
		b.createdAt,
		b.expiresAt,
		b.version,
	)
}
