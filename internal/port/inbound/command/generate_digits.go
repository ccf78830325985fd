package command

import (
	"context"
)

// GenerateDigits fetches digits from the generator and appends them to the pool.
type GenerateDigits struct {
	Quantity int
}

func (c GenerateDigits) CommandName() string {
	return "mastermind.generate_digits"
}

// GenerateDigitsResult reports how many digits were added.
type GenerateDigitsResult struct {
	Added int
	Size  int64
}

// GenerateDigitsHandler handles the GenerateDigits command.
type GenerateDigitsHandler interface {
	Handle(ctx context.Context, cmd GenerateDigits) (GenerateDigitsResult, error)
}
