package query

import (
	"context"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/0xsj/overwatch-mastermind/internal/port/inbound/query"
)

type tracedHandler[Q query.Query, R any] struct {
	next   query.Handler[Q, R]
	tracer trace.Tracer
}

// WithTracing decorates next so every Handle call runs inside a span.
func WithTracing[Q query.Query, R any](next query.Handler[Q, R], tracer trace.Tracer) query.Handler[Q, R] {
	return &tracedHandler[Q, R]{next: next, tracer: tracer}
}

func (h *tracedHandler[Q, R]) Handle(ctx context.Context, qry Q) (R, error) {
	ctx, span := h.tracer.Start(ctx, qry.QueryName())
	defer span.End()

	res, err := h.next.Handle(ctx, qry)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return res, err
}
