package command_test

import (
	"context"
	"errors"
	"testing"

	appcommand "github.com/0xsj/overwatch-mastermind/internal/app/command"
	domainerror "github.com/0xsj/overwatch-mastermind/internal/domain/error"
	"github.com/0xsj/overwatch-mastermind/internal/domain/event"
	"github.com/0xsj/overwatch-mastermind/internal/domain/model"
	"github.com/0xsj/overwatch-mastermind/internal/port/inbound/command"
	"github.com/0xsj/overwatch-mastermind/internal/testutil"
	"github.com/0xsj/overwatch-mastermind/internal/testutil/mocks"
)

func newStartGameHandler(pool *mocks.SupplyPool, games *mocks.GameStore, publisher *mocks.EventPublisher) command.StartGameHandler {
	return appcommand.NewStartGameHandler(pool, games, publisher, model.DefaultGameConfig(), testutil.Fixtures.Logger())
}

func TestStartGame_Success(t *testing.T) {
	ctx := context.Background()
	pool := mocks.NewSupplyPool(1, 2, 3, 4, 5, 6)
	games := mocks.NewGameStore()
	publisher := mocks.NewEventPublisher()
	handler := newStartGameHandler(pool, games, publisher)

	result, err := handler.Handle(ctx, command.StartGame{TotalDigits: 4, MaxAttempts: 10})

	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if result.SessionID.IsEmpty() {
		t.Error("SessionID should be set")
	}
	if result.CodeLength != 4 || result.MaxAttempts != 10 {
		t.Errorf("result = %+v, want length 4 and 10 attempts", result)
	}
	if result.ExpiresAt.IsZero() {
		t.Error("ExpiresAt should be set")
	}

	stored := games.Stored(result.SessionID)
	if stored == nil {
		t.Fatal("game should be stored")
	}
	if got := stored.SecretCode().Digits(); !equalDigits(got, []int{1, 2, 3, 4}) {
		t.Errorf("secret = %v, want the first four pooled digits", got)
	}
	if got := pool.Digits(); !equalDigits(got, []int{5, 6}) {
		t.Errorf("pool = %v, want [5 6]", got)
	}
	if !publisher.HasEvent(event.EventTypeGameStarted) {
		t.Error("expected game.started event")
	}
}

func TestStartGame_InvalidParameters(t *testing.T) {
	tests := []struct {
		name string
		cmd  command.StartGame
	}{
		{"zero digits", command.StartGame{TotalDigits: 0, MaxAttempts: 10}},
		{"zero attempts", command.StartGame{TotalDigits: 4, MaxAttempts: 0}},
		{"too many digits", command.StartGame{TotalDigits: model.MaxCodeLength + 1, MaxAttempts: 10}},
		{"too many attempts", command.StartGame{TotalDigits: 4, MaxAttempts: 101}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := mocks.NewSupplyPool(1, 2, 3, 4)
			handler := newStartGameHandler(pool, mocks.NewGameStore(), mocks.NewEventPublisher())

			_, err := handler.Handle(context.Background(), tt.cmd)

			if err != domainerror.ErrInvalidParameters {
				t.Errorf("error = %v, want %v", err, domainerror.ErrInvalidParameters)
			}
			if pool.Calls.Allocate != 0 {
				t.Error("pool should not be touched for invalid parameters")
			}
		})
	}
}

func TestStartGame_InsufficientSupply(t *testing.T) {
	pool := mocks.NewSupplyPool(1, 2, 3)
	games := mocks.NewGameStore()
	handler := newStartGameHandler(pool, games, mocks.NewEventPublisher())

	_, err := handler.Handle(context.Background(), command.StartGame{TotalDigits: 4, MaxAttempts: 10})

	if err != domainerror.ErrInsufficientSupply {
		t.Errorf("error = %v, want %v", err, domainerror.ErrInsufficientSupply)
	}
	if len(pool.Digits()) != 3 {
		t.Error("pool should be left intact")
	}
	if games.Count() != 0 {
		t.Error("no game should be created")
	}
}

func TestStartGame_StoreFailureReturnsDigits(t *testing.T) {
	pool := mocks.NewSupplyPool(1, 2, 3, 4)
	games := mocks.NewGameStore()
	games.Errors.Create = errors.New("redis down")
	handler := newStartGameHandler(pool, games, mocks.NewEventPublisher())

	_, err := handler.Handle(context.Background(), command.StartGame{TotalDigits: 4, MaxAttempts: 10})

	if err == nil || errors.Is(err, domainerror.ErrInsufficientSupply) {
		t.Fatalf("error = %v, want a wrapped store error", err)
	}
	if len(pool.Digits()) != 4 {
		t.Errorf("pool size = %d, want the digits returned", len(pool.Digits()))
	}
}

func TestStartGame_AllocatorFailure(t *testing.T) {
	pool := mocks.NewSupplyPool(1, 2, 3, 4)
	pool.Errors.Allocate = errors.New("connection refused")
	handler := newStartGameHandler(pool, mocks.NewGameStore(), mocks.NewEventPublisher())

	_, err := handler.Handle(context.Background(), command.StartGame{TotalDigits: 4, MaxAttempts: 10})

	if err == nil || errors.Is(err, domainerror.ErrInsufficientSupply) {
		t.Errorf("error = %v, want a wrapped store error", err)
	}
}

func equalDigits(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
