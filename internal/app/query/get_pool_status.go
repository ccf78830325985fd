package query

import (
	"context"
	"fmt"

	"github.com/0xsj/overwatch-mastermind/internal/port/inbound/query"
	"github.com/0xsj/overwatch-mastermind/internal/port/outbound/store"
)

// getPoolStatusHandler implements query.GetPoolStatusHandler.
type getPoolStatusHandler struct {
	pool               store.SupplyPool
	lowWatermark       int64
	autoRegenWatermark int64
}

// NewGetPoolStatusHandler creates a new GetPoolStatusHandler.
func NewGetPoolStatusHandler(pool store.SupplyPool, lowWatermark, autoRegenWatermark int64) query.GetPoolStatusHandler {
	return &getPoolStatusHandler{
		pool:               pool,
		lowWatermark:       lowWatermark,
		autoRegenWatermark: autoRegenWatermark,
	}
}

func (h *getPoolStatusHandler) Handle(ctx context.Context, _ query.GetPoolStatus) (query.GetPoolStatusResult, error) {
	size, err := h.pool.Size(ctx)
	if err != nil {
		return query.GetPoolStatusResult{}, fmt.Errorf("failed to read pool size: %w", err)
	}

	return query.GetPoolStatusResult{
		Size:               size,
		LowWatermark:       h.lowWatermark,
		AutoRegenWatermark: h.autoRegenWatermark,
		Low:                size < h.lowWatermark,
	}, nil
}
