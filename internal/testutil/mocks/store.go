package mocks

import (
	"context"
	"sync"

	"github.com/0xsj/overwatch-pkg/types"

	"github.com/0xsj/overwatch-mastermind/internal/domain/model"
	"github.com/0xsj/overwatch-mastermind/internal/port/outbound/store"
)

// --- SupplyPool Mock ---

// SupplyPool is a mock implementation of store.SupplyPool backed by a slice.
type SupplyPool struct {
	mu sync.Mutex

	digits []int

	// Call tracking
	Calls struct {
		Allocate  int
		Replenish int
		Size      int
	}

	// Error injection
	Errors struct {
		Allocate  error
		Replenish error
		Size      error
	}

	// PanicOnSize makes Size panic, for exercising recovery paths.
	PanicOnSize bool
}

// NewSupplyPool creates a new mock SupplyPool holding digits.
func NewSupplyPool(digits ...int) *SupplyPool {
	return &SupplyPool{digits: append([]int{}, digits...)}
}

func (m *SupplyPool) Allocate(ctx context.Context, n int) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.Allocate++

	if m.Errors.Allocate != nil {
		return nil, m.Errors.Allocate
	}
	if len(m.digits) < n {
		return nil, store.ErrInsufficientSupply
	}

	out := append([]int{}, m.digits[:n]...)
	m.digits = m.digits[n:]
	return out, nil
}

func (m *SupplyPool) Replenish(ctx context.Context, digits []int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.Replenish++

	if m.Errors.Replenish != nil {
		return m.Errors.Replenish
	}
	m.digits = append(m.digits, digits...)
	return nil
}

func (m *SupplyPool) Size(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.Size++

	if m.PanicOnSize {
		panic("mock: size exploded")
	}
	if m.Errors.Size != nil {
		return 0, m.Errors.Size
	}
	return int64(len(m.digits)), nil
}

// Digits returns a copy of the pooled digits.
func (m *SupplyPool) Digits() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int{}, m.digits...)
}

// --- GameStore Mock ---

// GameStore is a mock implementation of store.GameStore with
// version checking and expiry, storing snapshots rather than pointers.
type GameStore struct {
	mu sync.Mutex

	games map[string]*model.GameSession

	// Call tracking
	Calls struct {
		Create int
		Get    int
		Update int
		Delete int
	}

	// Error injection
	Errors struct {
		Create error
		Get    error
		Update error
		Delete error
	}

	// Conflicts makes the next n updates fail with store.ErrVersionConflict.
	Conflicts int

	// BeforeUpdate runs inside Update before the version check, without the lock held.
	BeforeUpdate func()
}

// NewGameStore creates a new mock GameStore.
func NewGameStore() *GameStore {
	return &GameStore{games: make(map[string]*model.GameSession)}
}

func (m *GameStore) Create(ctx context.Context, game *model.GameSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.Create++

	if m.Errors.Create != nil {
		return m.Errors.Create
	}

	game.SetVersion(1)
	m.games[game.ID().String()] = snapshot(game)
	return nil
}

func (m *GameStore) Get(ctx context.Context, id types.ID) (*model.GameSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.Get++

	if m.Errors.Get != nil {
		return nil, m.Errors.Get
	}

	game, ok := m.games[id.String()]
	if !ok || game.IsExpired() {
		return nil, store.ErrNotFound
	}
	return snapshot(game), nil
}

func (m *GameStore) Update(ctx context.Context, game *model.GameSession) error {
	if m.BeforeUpdate != nil {
		m.BeforeUpdate()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.Update++

	if m.Errors.Update != nil {
		return m.Errors.Update
	}
	if m.Conflicts > 0 {
		m.Conflicts--
		return store.ErrVersionConflict
	}

	stored, ok := m.games[game.ID().String()]
	if !ok || stored.IsExpired() {
		return store.ErrNotFound
	}
	if stored.Version() != game.Version() {
		return store.ErrVersionConflict
	}

	game.SetVersion(game.Version() + 1)
	m.games[game.ID().String()] = snapshot(game)
	return nil
}

func (m *GameStore) Delete(ctx context.Context, id types.ID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.Delete++

	if m.Errors.Delete != nil {
		return false, m.Errors.Delete
	}

	_, ok := m.games[id.String()]
	delete(m.games, id.String())
	return ok, nil
}

// Put stores game as is, bypassing version assignment.
func (m *GameStore) Put(game *model.GameSession) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[game.ID().String()] = snapshot(game)
}

// Stored returns the stored snapshot of a game, or nil.
func (m *GameStore) Stored(id types.ID) *model.GameSession {
	m.mu.Lock()
	defer m.mu.Unlock()

	game, ok := m.games[id.String()]
	if !ok {
		return nil
	}
	return snapshot(game)
}

// Count returns the number of stored games.
func (m *GameStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.games)
}

func snapshot(g *model.GameSession) *model.GameSession {
	return model.ReconstructGameSession(
		g.ID(),
		g.SecretCode(),
		g.DigitBase(),
		g.MaxAttempts(),
		g.AttemptsRemaining(),
		g.Victory(),
		g.History(),
		g.CreatedAt(),
		g.ExpiresAt(),
		g.Version(),
	)
}
