package command_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	appcommand "github.com/0xsj/overwatch-mastermind/internal/app/command"
	domainerror "github.com/0xsj/overwatch-mastermind/internal/domain/error"
	"github.com/0xsj/overwatch-mastermind/internal/domain/event"
	"github.com/0xsj/overwatch-mastermind/internal/domain/model"
	"github.com/0xsj/overwatch-mastermind/internal/port/inbound/command"
	"github.com/0xsj/overwatch-mastermind/internal/testutil"
	"github.com/0xsj/overwatch-mastermind/internal/testutil/mocks"
)

type guessFixture struct {
	games     *mocks.GameStore
	results   *mocks.ResultRepository
	publisher *mocks.EventPublisher
	handler   command.SubmitGuessHandler
}

func newGuessFixture() *guessFixture {
	f := &guessFixture{
		games:     mocks.NewGameStore(),
		results:   mocks.NewResultRepository(),
		publisher: mocks.NewEventPublisher(),
	}
	retry := appcommand.RetryConfig{MaxTries: 5, InitialInterval: time.Millisecond, MaxInterval: 5 * time.Millisecond}
	f.handler = appcommand.NewSubmitGuessHandler(f.games, f.results, f.publisher, retry, testutil.Fixtures.Logger())
	return f
}

func (f *guessFixture) start(t *testing.T, maxAttempts int, secret ...int) *model.GameSession {
	t.Helper()
	game := testutil.Fixtures.Game(maxAttempts, secret...)
	if err := f.games.Create(context.Background(), game); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return game
}

func TestSubmitGuess_Feedback(t *testing.T) {
	f := newGuessFixture()
	game := f.start(t, 10, 2, 2, 3, 4)

	result, err := f.handler.Handle(context.Background(), command.SubmitGuess{SessionID: game.ID(), Guess: []int{2, 3, 3, 3}})

	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if result.CorrectCount != 2 || result.CorrectPositionCount != 2 {
		t.Errorf("feedback = (%d, %d), want (2, 2)", result.CorrectCount, result.CorrectPositionCount)
	}
	if result.AttemptsRemaining != 9 {
		t.Errorf("AttemptsRemaining = %d, want 9", result.AttemptsRemaining)
	}
	if result.State != model.GameStateActive {
		t.Errorf("State = %v, want %v", result.State, model.GameStateActive)
	}
	if result.SecretCode != nil {
		t.Error("secret code must not be revealed while in progress")
	}

	stored := f.games.Stored(game.ID())
	if stored == nil || len(stored.History()) != 1 {
		t.Fatal("stored game should carry one history entry")
	}
	if stored.Version() != 2 {
		t.Errorf("Version = %d, want 2", stored.Version())
	}
	if !f.publisher.HasEvent(event.EventTypeGameGuessed) {
		t.Error("expected game.guessed event")
	}
}

func TestSubmitGuess_Win(t *testing.T) {
	f := newGuessFixture()
	game := f.start(t, 10, 1, 2, 3, 4)

	result, err := f.handler.Handle(context.Background(), command.SubmitGuess{SessionID: game.ID(), Guess: []int{1, 2, 3, 4}})

	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if result.State != model.GameStateWon {
		t.Errorf("State = %v, want %v", result.State, model.GameStateWon)
	}
	if result.CorrectCount != 4 || result.CorrectPositionCount != 4 {
		t.Errorf("feedback = (%d, %d), want (4, 4)", result.CorrectCount, result.CorrectPositionCount)
	}
	if !equalDigits(result.SecretCode, []int{1, 2, 3, 4}) {
		t.Errorf("SecretCode = %v, want [1 2 3 4]", result.SecretCode)
	}
	if f.games.Count() != 0 {
		t.Error("won game should be removed")
	}
	if !f.publisher.HasEvent(event.EventTypeGameWon) {
		t.Error("expected game.won event")
	}

	results := f.results.Results()
	if len(results) != 1 || results[0].Outcome != model.GameOutcomeWon || results[0].AttemptsUsed != 1 {
		t.Errorf("archived results = %+v, want one win after 1 attempt", results)
	}
}

func TestSubmitGuess_SingleAttemptLifecycle(t *testing.T) {
	f := newGuessFixture()
	ctx := context.Background()
	game := f.start(t, 1, 1, 2, 3, 4)

	result, err := f.handler.Handle(ctx, command.SubmitGuess{SessionID: game.ID(), Guess: []int{0, 0, 0, 0}})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if result.State != model.GameStateLost {
		t.Errorf("State = %v, want %v", result.State, model.GameStateLost)
	}
	if !equalDigits(result.SecretCode, []int{1, 2, 3, 4}) {
		t.Errorf("SecretCode = %v, want revealed code", result.SecretCode)
	}
	if !f.publisher.HasEvent(event.EventTypeGameLost) {
		t.Error("expected game.lost event")
	}

	_, err = f.handler.Handle(ctx, command.SubmitGuess{SessionID: game.ID(), Guess: []int{1, 2, 3, 4}})
	if err != domainerror.ErrGameNotFound {
		t.Errorf("second guess error = %v, want %v", err, domainerror.ErrGameNotFound)
	}
}

func TestSubmitGuess_NotFound(t *testing.T) {
	f := newGuessFixture()

	t.Run("unknown session", func(t *testing.T) {
		_, err := f.handler.Handle(context.Background(), command.SubmitGuess{SessionID: "01UNKNOWN", Guess: []int{1}})
		if err != domainerror.ErrGameNotFound {
			t.Errorf("error = %v, want %v", err, domainerror.ErrGameNotFound)
		}
	})

	t.Run("expired session", func(t *testing.T) {
		game := testutil.Fixtures.GameBuilder().Expired().Build()
		f.games.Put(game)

		_, err := f.handler.Handle(context.Background(), command.SubmitGuess{SessionID: game.ID(), Guess: []int{1, 2, 3, 4}})
		if err != domainerror.ErrGameNotFound {
			t.Errorf("error = %v, want %v", err, domainerror.ErrGameNotFound)
		}
	})

	t.Run("terminal record not yet removed", func(t *testing.T) {
		game := testutil.Fixtures.GameBuilder().Lost().Build()
		f.games.Put(game)

		_, err := f.handler.Handle(context.Background(), command.SubmitGuess{SessionID: game.ID(), Guess: []int{1, 2, 3, 4}})
		if err != domainerror.ErrGameNotFound {
			t.Errorf("error = %v, want %v", err, domainerror.ErrGameNotFound)
		}
		if f.games.Stored(game.ID()) != nil {
			t.Error("terminal record should be removed")
		}
	})

	t.Run("empty session id", func(t *testing.T) {
		_, err := f.handler.Handle(context.Background(), command.SubmitGuess{Guess: []int{1}})
		if err != domainerror.ErrSessionIDRequired {
			t.Errorf("error = %v, want %v", err, domainerror.ErrSessionIDRequired)
		}
	})
}

func TestSubmitGuess_InvalidGuess(t *testing.T) {
	f := newGuessFixture()
	game := f.start(t, 10, 1, 2, 3, 4)

	tests := []struct {
		name  string
		guess []int
	}{
		{"too short", []int{1, 2, 3}},
		{"too long", []int{1, 2, 3, 4, 5}},
		{"digit out of range", []int{1, 2, 3, 8}},
		{"negative digit", []int{-1, 2, 3, 4}},
		{"empty", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.handler.Handle(context.Background(), command.SubmitGuess{SessionID: game.ID(), Guess: tt.guess})
			if err != domainerror.ErrInvalidGuess {
				t.Errorf("error = %v, want %v", err, domainerror.ErrInvalidGuess)
			}
		})
	}

	if stored := f.games.Stored(game.ID()); stored.AttemptsRemaining() != 10 {
		t.Errorf("AttemptsRemaining = %d, want 10", stored.AttemptsRemaining())
	}
}

func TestSubmitGuess_RetriesVersionConflicts(t *testing.T) {
	f := newGuessFixture()
	game := f.start(t, 10, 1, 2, 3, 4)
	f.games.Conflicts = 2

	result, err := f.handler.Handle(context.Background(), command.SubmitGuess{SessionID: game.ID(), Guess: []int{0, 0, 0, 0}})

	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if result.AttemptsRemaining != 9 {
		t.Errorf("AttemptsRemaining = %d, want 9", result.AttemptsRemaining)
	}
	if f.games.Calls.Update != 3 {
		t.Errorf("Update calls = %d, want 3", f.games.Calls.Update)
	}
	if f.games.Calls.Get != 3 {
		t.Errorf("Get calls = %d, want 3 (reload per attempt)", f.games.Calls.Get)
	}
}

func TestSubmitGuess_ConflictRetriesExhausted(t *testing.T) {
	f := newGuessFixture()
	game := f.start(t, 10, 1, 2, 3, 4)
	f.games.Conflicts = 100

	_, err := f.handler.Handle(context.Background(), command.SubmitGuess{SessionID: game.ID(), Guess: []int{0, 0, 0, 0}})

	if err != domainerror.ErrVersionConflict {
		t.Errorf("error = %v, want %v", err, domainerror.ErrVersionConflict)
	}
	if f.games.Calls.Update != 5 {
		t.Errorf("Update calls = %d, want 5", f.games.Calls.Update)
	}
}

// A concurrent writer lands between load and write; the guess must be re-scored on the newer state.
func TestSubmitGuess_InterleavedWriterIsNotLost(t *testing.T) {
	f := newGuessFixture()
	ctx := context.Background()
	game := f.start(t, 10, 1, 2, 3, 4)

	fired := false
	f.games.BeforeUpdate = func() {
		if fired {
			return
		}
		fired = true
		other, _ := f.games.Get(ctx, game.ID())
		_, _ = other.Guess([]int{7, 7, 7, 7})
		_ = f.games.Update(ctx, other)
	}

	result, err := f.handler.Handle(ctx, command.SubmitGuess{SessionID: game.ID(), Guess: []int{0, 0, 0, 0}})

	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if result.AttemptsRemaining != 8 {
		t.Errorf("AttemptsRemaining = %d, want 8", result.AttemptsRemaining)
	}
	if stored := f.games.Stored(game.ID()); len(stored.History()) != 2 {
		t.Errorf("history length = %d, want both guesses recorded", len(stored.History()))
	}
}

func TestSubmitGuess_ConcurrentGuessesSerialize(t *testing.T) {
	f := newGuessFixture()
	game := f.start(t, 50, 1, 2, 3, 4)

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.handler.Handle(context.Background(), command.SubmitGuess{SessionID: game.ID(), Guess: []int{0, 0, 0, 0}})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domainerror.ErrVersionConflict):
		default:
			t.Errorf("unexpected error = %v", err)
		}
	}

	stored := f.games.Stored(game.ID())
	if len(stored.History()) != succeeded {
		t.Errorf("history length = %d, want %d (one per successful guess)", len(stored.History()), succeeded)
	}
	if stored.AttemptsRemaining() != 50-succeeded {
		t.Errorf("AttemptsRemaining = %d, want %d", stored.AttemptsRemaining(), 50-succeeded)
	}
}

func TestSubmitGuess_StoreFailureIsNotRetried(t *testing.T) {
	f := newGuessFixture()
	game := f.start(t, 10, 1, 2, 3, 4)
	f.games.Errors.Update = errors.New("connection reset")

	_, err := f.handler.Handle(context.Background(), command.SubmitGuess{SessionID: game.ID(), Guess: []int{0, 0, 0, 0}})

	if err == nil || errors.Is(err, domainerror.ErrVersionConflict) {
		t.Fatalf("error = %v, want wrapped store error", err)
	}
	if f.games.Calls.Update != 1 {
		t.Errorf("Update calls = %d, want 1", f.games.Calls.Update)
	}
}

func TestSubmitGuess_ArchiveFailureDoesNotFailGuess(t *testing.T) {
	f := newGuessFixture()
	f.results.Errors.Record = errors.New("postgres down")
	game := f.start(t, 3, 5, 5)

	result, err := f.handler.Handle(context.Background(), command.SubmitGuess{SessionID: game.ID(), Guess: []int{5, 5}})

	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if result.State != model.GameStateWon {
		t.Errorf("State = %v, want %v", result.State, model.GameStateWon)
	}
}
