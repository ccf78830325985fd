package mocks

import (
	"context"
	"sync"
)

// CodeGenerator is a mock implementation of generator.CodeGenerator.
// Generate cycles through min..max deterministically.
type CodeGenerator struct {
	mu sync.Mutex

	QuotaValue int64

	// Call tracking
	Calls struct {
		Generate int
		Quota    int
	}

	// Error injection
	Errors struct {
		Generate error
		Quota    error
	}

	// Block makes Generate wait for context cancellation.
	Block bool

	// LastRange is the [min, max] requested by the last Generate call.
	LastRange [2]int
}

// NewCodeGenerator creates a new mock CodeGenerator.
func NewCodeGenerator() *CodeGenerator {
	return &CodeGenerator{QuotaValue: 1000000}
}

func (m *CodeGenerator) Generate(ctx context.Context, qty, min, max int) ([]int, error) {
	m.mu.Lock()
	m.Calls.Generate++
	m.LastRange = [2]int{min, max}
	block := m.Block
	genErr := m.Errors.Generate
	m.mu.Unlock()

	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if genErr != nil {
		return nil, genErr
	}

	out := make([]int, qty)
	for i := range out {
		out[i] = min + i%(max-min+1)
	}
	return out, nil
}

func (m *CodeGenerator) Quota(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.Quota++

	if m.Errors.Quota != nil {
		return 0, m.Errors.Quota
	}
	return m.QuotaValue, nil
}
