package mocks

import (
	"context"
	"sync"

	"github.com/0xsj/overwatch-mastermind/internal/domain/model"
)

// ResultRepository is a mock implementation of repository.ResultRepository.
type ResultRepository struct {
	mu sync.Mutex

	results map[string]model.GameResult

	// Call tracking
	Calls struct {
		Record  int
		Summary int
	}

	// Error injection
	Errors struct {
		Record  error
		Summary error
	}
}

// NewResultRepository creates a new mock ResultRepository.
func NewResultRepository() *ResultRepository {
	return &ResultRepository{results: make(map[string]model.GameResult)}
}

func (m *ResultRepository) Record(ctx context.Context, result model.GameResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.Record++

	if m.Errors.Record != nil {
		return m.Errors.Record
	}
	if _, ok := m.results[result.SessionID.String()]; !ok {
		m.results[result.SessionID.String()] = result
	}
	return nil
}

func (m *ResultRepository) Summary(ctx context.Context) (model.ResultSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.Summary++

	if m.Errors.Summary != nil {
		return model.ResultSummary{}, m.Errors.Summary
	}

	var s model.ResultSummary
	var winAttempts int
	for _, r := range m.results {
		s.Total++
		switch r.Outcome {
		case model.GameOutcomeWon:
			s.Won++
			winAttempts += r.AttemptsUsed
		case model.GameOutcomeLost:
			s.Lost++
		case model.GameOutcomeAbandoned:
			s.Abandoned++
		}
	}
	if s.Won > 0 {
		s.AvgAttemptsToWin = float64(winAttempts) / float64(s.Won)
	}
	return s, nil
}

// Results returns every recorded result.
func (m *ResultRepository) Results() []model.GameResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.GameResult, 0, len(m.results))
	for _, r := range m.results {
		out = append(out, r)
	}
	return out
}
