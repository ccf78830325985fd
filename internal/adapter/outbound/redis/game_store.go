package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/0xsj/overwatch-pkg/types"

	"github.com/0xsj/overwatch-mastermind/internal/domain/model"
	"github.com/0xsj/overwatch-mastermind/internal/port/outbound/store"
)

const (
	gameKeyPrefix = "mastermind:game:"

	fieldVersion = "version"
	fieldData    = "data"
)

// updateScript replaces the game data if the stored version matches ARGV[1].
// Returns -1 when the key is gone, 0 on version mismatch, 1 on success.
// HSET leaves the key's expiry untouched.
var updateScript = redis.NewScript(`
local current = redis.call('HGET', KEYS[1], 'version')
if not current then
	return -1
end
if current ~= ARGV[1] then
	return 0
end
redis.call('HSET', KEYS[1], 'version', ARGV[2], 'data', ARGV[3])
return 1
`)

// gameStore implements store.GameStore on Redis hashes.
type gameStore struct {
	client *redis.Client
}

// NewGameStore creates a new GameStore.
func NewGameStore(client *redis.Client) store.GameStore {
	return &gameStore{client: client}
}

func (s *gameStore) Create(ctx context.Context, game *model.GameSession) error {
	data, err := json.Marshal(newStoredGame(game))
	if err != nil {
		return fmt.Errorf("failed to marshal game: %w", err)
	}

	const version int64 = 1
	key := gameKey(game.ID())
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, fieldVersion, version, fieldData, data)
		pipe.ExpireAt(ctx, key, game.ExpiresAt().Time())
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store game: %w", err)
	}

	game.SetVersion(version)
	return nil
}

func (s *gameStore) Get(ctx context.Context, id types.ID) (*model.GameSession, error) {
	fields, err := s.client.HGetAll(ctx, gameKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	if len(fields) == 0 {
		return nil, store.ErrNotFound
	}

	version, err := strconv.ParseInt(fields[fieldVersion], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse game version: %w", err)
	}

	var stored storedGame
	if err := json.Unmarshal([]byte(fields[fieldData]), &stored); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	game, err := stored.toModel(version)
	if err != nil {
		return nil, err
	}

	// Key expiry is second-granular; never hand out a game past its deadline.
	if game.IsExpired() {
		return nil, store.ErrNotFound
	}
	return game, nil
}

func (s *gameStore) Update(ctx context.Context, game *model.GameSession) error {
	data, err := json.Marshal(newStoredGame(game))
	if err != nil {
		return fmt.Errorf("failed to marshal game: %w", err)
	}

	next := game.Version() + 1
	res, err := updateScript.Run(ctx, s.client, []string{gameKey(game.ID())}, game.Version(), next, data).Int64()
	if err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	switch res {
	case -1:
		return store.ErrNotFound
	case 0:
		return store.ErrVersionConflict
	}

	game.SetVersion(next)
	return nil
}

func (s *gameStore) Delete(ctx context.Context, id types.ID) (bool, error) {
	count, err := s.client.Del(ctx, gameKey(id)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to delete game: %w", err)
	}
	return count > 0, nil
}

// Key helpers

func gameKey(id types.ID) string {
	return gameKeyPrefix + id.String()
}

// Stored game structure for JSON serialization

type storedGame struct {
	ID                string        `json:"id"`
	SecretCode        []int         `json:"secret_code"`
	DigitBase         int           `json:"digit_base"`
	MaxAttempts       int           `json:"max_attempts"`
	AttemptsRemaining int           `json:"attempts_remaining"`
	Victory           bool          `json:"victory"`
	History           []storedGuess `json:"history"`
	CreatedAt         int64         `json:"created_at"`
	ExpiresAt         int64         `json:"expires_at"`
}

type storedGuess struct {
	Guess                []int `json:"guess"`
	CorrectCount         int   `json:"correct_count"`
	CorrectPositionCount int   `json:"correct_position_count"`
	AttemptsRemaining    int   `json:"attempts_remaining"`
	GuessedAt            int64 `json:"guessed_at"`
}

func newStoredGame(g *model.GameSession) storedGame {
	history := g.History()
	guesses := make([]storedGuess, len(history))
	for i, h := range history {
		guesses[i] = storedGuess{
			Guess:                h.Guess,
			CorrectCount:         h.CorrectCount,
			CorrectPositionCount: h.CorrectPositionCount,
			AttemptsRemaining:    h.AttemptsRemaining,
			GuessedAt:            h.GuessedAt.Time().UnixMilli(),
		}
	}

	return storedGame{
		ID:                g.ID().String(),
		SecretCode:        g.SecretCode().Digits(),
		DigitBase:         g.DigitBase(),
		MaxAttempts:       g.MaxAttempts(),
		AttemptsRemaining: g.AttemptsRemaining(),
		Victory:           g.Victory(),
		History:           guesses,
		CreatedAt:         g.CreatedAt().Time().UnixMilli(),
		ExpiresAt:         g.ExpiresAt().Time().UnixMilli(),
	}
}

func (s storedGame) toModel(version int64) (*model.GameSession, error) {
	id, err := types.ParseID(s.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse game id: %w", err)
	}

	code, err := model.NewCode(s.SecretCode, s.DigitBase)
	if err != nil {
		return nil, fmt.Errorf("stored secret code is invalid: %w", err)
	}

	history := make([]model.GuessRecord, len(s.History))
	for i, h := range s.History {
		history[i] = model.GuessRecord{
			Guess:                h.Guess,
			CorrectCount:         h.CorrectCount,
			CorrectPositionCount: h.CorrectPositionCount,
			AttemptsRemaining:    h.AttemptsRemaining,
			GuessedAt:            types.FromTime(time.UnixMilli(h.GuessedAt)),
		}
	}

	return model.ReconstructGameSession(
		id,
		code,
		s.DigitBase,
		s.MaxAttempts,
		s.AttemptsRemaining,
		s.Victory,
		history,
		types.FromTime(time.UnixMilli(s.CreatedAt)),
		types.FromTime(time.UnixMilli(s.ExpiresAt)),
		version,
	), nil
}

