package query

import (
	"context"

	"github.com/0xsj/overwatch-pkg/log"

	domainerror "github.com/0xsj/overwatch-mastermind/internal/domain/error"
	"github.com/0xsj/overwatch-mastermind/internal/port/inbound/query"
	"github.com/0xsj/overwatch-mastermind/internal/port/outbound/generator"
)

// getQuotaHandler implements query.GetQuotaHandler.
type getQuotaHandler struct {
	generator generator.CodeGenerator
	logger    log.Logger
}

// NewGetQuotaHandler creates a new GetQuotaHandler.
func NewGetQuotaHandler(gen generator.CodeGenerator, logger log.Logger) query.GetQuotaHandler {
	return &getQuotaHandler{generator: gen, logger: logger}
}

func (h *getQuotaHandler) Handle(ctx context.Context, _ query.GetQuota) (query.GetQuotaResult, error) {
	quota, err := h.generator.Quota(ctx)
	if err != nil {
		h.logger.Error("quota check failed", log.Any("error", err))
		return query.GetQuotaResult{}, domainerror.ErrGeneratorUnavailable
	}
	return query.GetQuotaResult{Quota: quota}, nil
}
