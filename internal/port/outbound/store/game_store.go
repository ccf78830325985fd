package store

import (
	"context"

	"github.com/0xsj/overwatch-pkg/types"

	"github.com/0xsj/overwatch-mastermind/internal/domain/model"
)

// GameStore persists game sessions until their expiry deadline.
type GameStore interface {
	// Create stores a new game. The record expires at game.ExpiresAt().
	// On success the game's version is set to the stored version.
	Create(ctx context.Context, game *model.GameSession) error

	// Get retrieves a game. Returns ErrNotFound if absent or expired.
	Get(ctx context.Context, id types.ID) (*model.GameSession, error)

	// Update replaces a game only if the stored version equals game.Version().
	// Returns ErrVersionConflict on mismatch and ErrNotFound if the record vanished.
	// The expiry deadline is preserved and the game's version is advanced.
	Update(ctx context.Context, game *model.GameSession) error

	// Delete removes a game and reports whether it existed.
	Delete(ctx context.Context, id types.ID) (bool, error)
}
