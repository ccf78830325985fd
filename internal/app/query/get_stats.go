package query

import (
	"context"
	"errors"
	"fmt"

	domainerror "github.com/0xsj/overwatch-mastermind/internal/domain/error"
	"github.com/0xsj/overwatch-mastermind/internal/port/inbound/query"
	"github.com/0xsj/overwatch-mastermind/internal/port/outbound/store"
)

// getStatsHandler implements query.GetStatsHandler.
type getStatsHandler struct {
	games store.GameStore
}

// NewGetStatsHandler creates a new GetStatsHandler.
func NewGetStatsHandler(games store.GameStore) query.GetStatsHandler {
	return &getStatsHandler{games: games}
}

func (h *getStatsHandler) Handle(ctx context.Context, qry query.GetStats) (query.GetStatsResult, error) {
	if qry.SessionID.IsEmpty() {
		return query.GetStatsResult{}, domainerror.ErrSessionIDRequired
	}

	game, err := h.games.Get(ctx, qry.SessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return query.GetStatsResult{}, domainerror.ErrGameNotFound
		}
		return query.GetStatsResult{}, fmt.Errorf("failed to load game: %w", err)
	}

	// Finished games are about to be removed and are reported as gone.
	if game.IsOver() {
		return query.GetStatsResult{}, domainerror.ErrGameNotFound
	}

	return query.GetStatsResult{
		SessionID:         game.ID(),
		AttemptsRemaining: game.AttemptsRemaining(),
		MaxAttempts:       game.MaxAttempts(),
		CodeLength:        game.CodeLength(),
		State:             game.State(),
		History:           game.History(),
		ExpiresAt:         game.ExpiresAt(),
	}, nil
}
