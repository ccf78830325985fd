package command

import (
	"context"
	"fmt"

	"github.com/0xsj/overwatch-pkg/log"

	domainerror "github.com/0xsj/overwatch-mastermind/internal/domain/error"
	"github.com/0xsj/overwatch-mastermind/internal/domain/event"
	"github.com/0xsj/overwatch-mastermind/internal/port/inbound/command"
	"github.com/0xsj/overwatch-mastermind/internal/port/outbound/generator"
	"github.com/0xsj/overwatch-mastermind/internal/port/outbound/messaging"
	"github.com/0xsj/overwatch-mastermind/internal/port/outbound/store"
)

// MaxGenerateQuantity bounds a single on-demand generation request.
const MaxGenerateQuantity = 1000

// generateDigitsHandler implements command.GenerateDigitsHandler.
type generateDigitsHandler struct {
	pool      store.SupplyPool
	generator generator.CodeGenerator
	publisher messaging.EventPublisher
	digitBase int
	logger    log.Logger
}

// NewGenerateDigitsHandler creates a new GenerateDigitsHandler.
func NewGenerateDigitsHandler(
	pool store.SupplyPool,
	gen generator.CodeGenerator,
	publisher messaging.EventPublisher,
	digitBase int,
	logger log.Logger,
) command.GenerateDigitsHandler {
	return &generateDigitsHandler{
		pool:      pool,
		generator: gen,
		publisher: publisher,
		digitBase: digitBase,
		logger:    logger,
	}
}

func (h *generateDigitsHandler) Handle(ctx context.Context, cmd command.GenerateDigits) (command.GenerateDigitsResult, error) {
	if cmd.Quantity < 1 || cmd.Quantity > MaxGenerateQuantity {
		return command.GenerateDigitsResult{}, domainerror.ErrInvalidQuantity
	}

	digits, err := h.generator.Generate(ctx, cmd.Quantity, 0, h.digitBase-1)
	if err != nil {
		h.logger.Error("on-demand generation failed",
			log.Any("quantity", cmd.Quantity),
			log.Any("error", err),
		)
		_ = h.publisher.Publish(ctx, event.NewPoolReplenishFailed(cmd.Quantity, err.Error(), event.TriggerManual))
		return command.GenerateDigitsResult{}, domainerror.ErrInsufficientSupply
	}

	before, err := h.pool.Size(ctx)
	if err != nil {
		return command.GenerateDigitsResult{}, fmt.Errorf("failed to read pool size: %w", err)
	}

	if err := h.pool.Replenish(ctx, digits); err != nil {
		return command.GenerateDigitsResult{}, fmt.Errorf("failed to replenish pool: %w", err)
	}

	_ = h.publisher.Publish(ctx, event.NewPoolReplenished(len(digits), before, event.TriggerManual))

	return command.GenerateDigitsResult{
		Added: len(digits),
		Size:  before + int64(len(digits)),
	}, nil
}
