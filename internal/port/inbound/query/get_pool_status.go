package query

import (
	"context"
)

// GetPoolStatus reports the supply pool size against its watermarks.
type GetPoolStatus struct{}

func (q GetPoolStatus) QueryName() string {
	return "mastermind.get_pool_status"
}

// GetPoolStatusResult contains the pool size and thresholds.
type GetPoolStatusResult struct {
	Size               int64
	LowWatermark       int64
	AutoRegenWatermark int64
	Low                bool
}

// GetPoolStatusHandler handles the GetPoolStatus query.
type GetPoolStatusHandler interface {
	Handle(ctx context.Context, qry GetPoolStatus) (GetPoolStatusResult, error)
}
