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
	"github.com/0xsj/overwatch-mastermind/internal/port/outbound/repository"
	"github.com/0xsj/overwatch-mastermind/internal/port/outbound/store"
)

// endGameHandler implements command.EndGameHandler.
type endGameHandler struct {
	games     store.GameStore
	results   repository.ResultRepository
	publisher messaging.EventPublisher
	logger    log.Logger
}

// NewEndGameHandler creates a new EndGameHandler.
func NewEndGameHandler(
	games store.GameStore,
	results repository.ResultRepository,
	publisher messaging.EventPublisher,
	logger log.Logger,
) command.EndGameHandler {
	return &endGameHandler{
		games:     games,
		results:   results,
		publisher: publisher,
		logger:    logger,
	}
}

func (h *endGameHandler) Handle(ctx context.Context, cmd command.EndGame) (command.EndGameResult, error) {
	if cmd.SessionID.IsEmpty() {
		return command.EndGameResult{}, domainerror.ErrSessionIDRequired
	}

	game, err := h.games.Get(ctx, cmd.SessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return command.EndGameResult{}, domainerror.ErrGameNotFound
		}
		return command.EndGameResult{}, fmt.Errorf("failed to load game: %w", err)
	}

	// Whoever deletes the record owns the outcome; a concurrent finisher loses here.
	deleted, err := h.games.Delete(ctx, game.ID())
	if err != nil {
		return command.EndGameResult{}, fmt.Errorf("failed to delete game: %w", err)
	}
	if !deleted || game.IsOver() {
		return command.EndGameResult{}, domainerror.ErrGameNotFound
	}

	if err := h.results.Record(ctx, model.NewGameResult(game, model.GameOutcomeAbandoned)); err != nil {
		h.logger.Error("failed to archive game result",
			log.String("session_id", game.ID().String()),
			log.String("outcome", model.GameOutcomeAbandoned.String()),
			log.Any("error", err),
		)
	}

	_ = h.publisher.Publish(ctx, event.NewGameEnded(game.ID(), game.AttemptsUsed()))

	return command.EndGameResult{
		SecretCode:   game.SecretCode().Digits(),
		AttemptsUsed: game.AttemptsUsed(),
	}, nil
}
