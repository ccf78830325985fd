package query

import (
	"context"
)

// GetQuota reports the remaining generator allowance.
type GetQuota struct{}

func (q GetQuota) QueryName() string {
	return "mastermind.get_quota"
}

// GetQuotaResult contains the remaining quota.
type GetQuotaResult struct {
	Quota int64
}

// GetQuotaHandler handles the GetQuota query.
type GetQuotaHandler interface {
	Handle(ctx context.Context, qry GetQuota) (GetQuotaResult, error)
}
