package query

import (
	"context"
	"fmt"

	"github.com/0xsj/overwatch-mastermind/internal/port/inbound/query"
	"github.com/0xsj/overwatch-mastermind/internal/port/outbound/repository"
)

// getSummaryHandler implements query.GetSummaryHandler.
type getSummaryHandler struct {
	results repository.ResultRepository
}

// NewGetSummaryHandler creates a new GetSummaryHandler.
func NewGetSummaryHandler(results repository.ResultRepository) query.GetSummaryHandler {
	return &getSummaryHandler{results: results}
}

func (h *getSummaryHandler) Handle(ctx context.Context, _ query.GetSummary) (query.GetSummaryResult, error) {
	summary, err := h.results.Summary(ctx)
	if err != nil {
		return query.GetSummaryResult{}, fmt.Errorf("failed to summarize results: %w", err)
	}
	return query.GetSummaryResult{Summary: summary}, nil
}
