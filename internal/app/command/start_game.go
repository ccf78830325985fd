package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/0xsj/overwatch-pkg/log"

	domainerror "github.com/0xsj/overwatch-mastermind/internal/domain/error"
	"github.com/0xsj/overwatch-mastermind/internal/domain/event"
	"github.com/0xsj/overwatch-mastermind/internal/domain/model"
	"github.com/0xsj/overwatch-mastermind/internal/port/inbound/command"
	"github.com/0xsj/overwatch-mastermind/internal/port/outbound/messaging"
	"github.com/0xsj/overwatch-mastermind/internal/port/outbound/store"
)

// startGameHandler implements command.StartGameHandler.
type startGameHandler struct {
	pool      store.SupplyPool
	games     store.GameStore
	publisher messaging.EventPublisher
	config    model.GameConfig
	logger    log.Logger
}

// NewStartGameHandler creates a new StartGameHandler.
func NewStartGameHandler(
	pool store.SupplyPool,
	games store.GameStore,
	publisher messaging.EventPublisher,
	config model.GameConfig,
	logger log.Logger,
) command.StartGameHandler {
	return &startGameHandler{
		pool:      pool,
		games:     games,
		publisher: publisher,
		config:    config,
		logger:    logger,
	}
}

func (h *startGameHandler) Handle(ctx context.Context, cmd command.StartGame) (command.StartGameResult, error) {
	if err := h.config.ValidateParameters(cmd.TotalDigits, cmd.MaxAttempts); err != nil {
		return command.StartGameResult{}, err
	}

	digits, err := h.pool.Allocate(ctx, cmd.TotalDigits)
	if err != nil {
		if errors.Is(err, store.ErrInsufficientSupply) {
			return command.StartGameResult{}, domainerror.ErrInsufficientSupply
		}
		return command.StartGameResult{}, fmt.Errorf("failed to allocate secret code: %w", err)
	}

	code, err := model.NewCode(digits, h.config.DigitBase)
	if err != nil {
		return command.StartGameResult{}, fmt.Errorf("supply pool returned an invalid code: %w", err)
	}

	game, err := model.NewGameSession(code, cmd.MaxAttempts, h.config)
	if err != nil {
		return command.StartGameResult{}, err
	}

	if err := h.games.Create(ctx, game); err != nil {
		// Give the digits back so a failed write does not drain the pool.
		if rerr := h.pool.Replenish(ctx, digits); rerr != nil {
			h.logger.Error("failed to return digits to pool",
				log.String("session_id", game.ID().String()),
				log.Any("error", rerr),
			)
		}
		return command.StartGameResult{}, fmt.Errorf("failed to store game: %w", err)
	}

	_ = h.publisher.Publish(ctx, event.NewGameStarted(game.ID(), game.CodeLength(), game.MaxAttempts(), game.ExpiresAt()))

	return command.StartGameResult{
		SessionID:   game.ID(),
		CodeLength:  game.CodeLength(),
		MaxAttempts: game.MaxAttempts(),
		ExpiresAt:   game.ExpiresAt(),
	}, nil
}
