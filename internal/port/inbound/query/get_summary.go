package query

import (
	"context"

	"github.com/0xsj/overwatch-mastermind/internal/domain/model"
)

// GetSummary aggregates archived game results.
type GetSummary struct{}

func (q GetSummary) QueryName() string {
	return "mastermind.get_summary"
}

// GetSummaryResult contains the aggregate.
type GetSummaryResult struct {
	Summary model.ResultSummary
}

// GetSummaryHandler handles the GetSummary query.
type GetSummaryHandler interface {
	Handle(ctx context.Context, qry GetSummary) (GetSummaryResult, error)
}
