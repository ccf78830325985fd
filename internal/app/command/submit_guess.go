package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/0xsj/overwatch-pkg/log"
	"github.com/cenkalti/backoff/v5"

	domainerror "github.com/0xsj/overwatch-mastermind/internal/domain/error"
	"github.com/0xsj/overwatch-mastermind/internal/domain/event"
	"github.com/0xsj/overwatch-mastermind/internal/domain/model"
	"github.com/0xsj/overwatch-mastermind/internal/port/inbound/command"
	"github.com/0xsj/overwatch-mastermind/internal/port/outbound/messaging"
	"github.com/0xsj/overwatch-mastermind/internal/port/outbound/repository"
	"github.com/0xsj/overwatch-mastermind/internal/port/outbound/store"
)

// submitGuessHandler implements command.SubmitGuessHandler.
type submitGuessHandler struct {
	games     store.GameStore
	results   repository.ResultRepository
	publisher messaging.EventPublisher
	retry     RetryConfig
	logger    log.Logger
}

// NewSubmitGuessHandler creates a new SubmitGuessHandler.
func NewSubmitGuessHandler(
	games store.GameStore,
	results repository.ResultRepository,
	publisher messaging.EventPublisher,
	retry RetryConfig,
	logger log.Logger,
) command.SubmitGuessHandler {
	return &submitGuessHandler{
		games:     games,
		results:   results,
		publisher: publisher,
		retry:     retry,
		logger:    logger,
	}
}

func (h *submitGuessHandler) Handle(ctx context.Context, cmd command.SubmitGuess) (command.SubmitGuessResult, error) {
	if cmd.SessionID.IsEmpty() {
		return command.SubmitGuessResult{}, domainerror.ErrSessionIDRequired
	}

	// Load, score and write back as one unit; a lost race reloads the latest state.
	game, err := backoff.Retry(ctx,
		func() (*model.GameSession, error) {
			return h.guessOnce(ctx, cmd)
		},
		backoff.WithBackOff(h.retry.backOff()),
		backoff.WithMaxTries(uint(h.retry.MaxTries)),
		backoff.WithNotify(func(err error, next time.Duration) {
			h.logger.Warn("guess lost a concurrent update, retrying",
				log.String("session_id", cmd.SessionID.String()),
				log.Any("retry_in", next.String()),
			)
		}),
	)
	if err != nil {
		var permanent *backoff.PermanentError
		if errors.As(err, &permanent) {
			err = permanent.Unwrap()
		}
		return command.SubmitGuessResult{}, err
	}

	last := game.History()[len(game.History())-1]
	result := command.SubmitGuessResult{
		CorrectCount:         last.CorrectCount,
		CorrectPositionCount: last.CorrectPositionCount,
		AttemptsRemaining:    game.AttemptsRemaining(),
		State:                game.State(),
	}

	switch game.State() {
	case model.GameStateWon:
		result.SecretCode = game.SecretCode().Digits()
		h.finish(ctx, game, model.GameOutcomeWon, event.NewGameWon(game.ID(), game.AttemptsUsed()))
	case model.GameStateLost:
		result.SecretCode = game.SecretCode().Digits()
		h.finish(ctx, game, model.GameOutcomeLost, event.NewGameLost(game.ID(), game.AttemptsUsed()))
	default:
		_ = h.publisher.Publish(ctx, event.NewGameGuessed(game.ID(), last.CorrectCount, last.CorrectPositionCount, last.AttemptsRemaining))
	}

	return result, nil
}

// guessOnce runs a single load, score and conditional write.
// Only a version conflict is returned as retryable.
func (h *submitGuessHandler) guessOnce(ctx context.Context, cmd command.SubmitGuess) (*model.GameSession, error) {
	game, err := h.games.Get(ctx, cmd.SessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, backoff.Permanent(domainerror.ErrGameNotFound)
		}
		return nil, backoff.Permanent(fmt.Errorf("failed to load game: %w", err))
	}

	// A finished game that was not removed yet is treated as gone.
	if game.IsOver() {
		if _, err := h.games.Delete(ctx, game.ID()); err != nil {
			h.logger.Error("failed to remove finished game",
				log.String("session_id", game.ID().String()),
				log.Any("error", err),
			)
		}
		return nil, backoff.Permanent(domainerror.ErrGameNotFound)
	}

	if _, err := game.Guess(cmd.Guess); err != nil {
		if errors.Is(err, domainerror.ErrGameOver) {
			return nil, backoff.Permanent(domainerror.ErrGameNotFound)
		}
		return nil, backoff.Permanent(err)
	}

	if err := h.games.Update(ctx, game); err != nil {
		switch {
		case errors.Is(err, store.ErrVersionConflict):
			return nil, domainerror.ErrVersionConflict
		case errors.Is(err, store.ErrNotFound):
			return nil, backoff.Permanent(domainerror.ErrGameNotFound)
		default:
			return nil, backoff.Permanent(fmt.Errorf("failed to update game: %w", err))
		}
	}

	return game, nil
}

// finish removes a terminal game and records its outcome.
func (h *submitGuessHandler) finish(ctx context.Context, game *model.GameSession, outcome model.GameOutcome, evt event.Event) {
	if _, err := h.games.Delete(ctx, game.ID()); err != nil {
		h.logger.Error("failed to remove finished game",
			log.String("session_id", game.ID().String()),
			log.Any("error", err),
		)
	}

	if err := h.results.Record(ctx, model.NewGameResult(game, outcome)); err != nil {
		h.logger.Error("failed to archive game result",
			log.String("session_id", game.ID().String()),
			log.String("outcome", outcome.String()),
			log.Any("error", err),
		)
	}

	_ = h.publisher.Publish(ctx, evt)
}
