package command

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/0xsj/overwatch-mastermind/internal/port/inbound/command"
)

// tracedHandler wraps a handler in a span named after the command.
type tracedHandler[C command.Command, R any] struct {
	next   command.Handler[C, R]
	tracer trace.Tracer
}

// WithTracing decorates next so every Handle call runs inside a span.
func WithTracing[C command.Command, R any](next command.Handler[C, R], tracer trace.Tracer) command.Handler[C, R] {
	return &tracedHandler[C, R]{next: next, tracer: tracer}
}

func (h *tracedHandler[C, R]) Handle(ctx context.Context, cmd C) (R, error) {
	ctx, span := h.tracer.Start(ctx, cmd.CommandName(),
		trace.WithAttributes(attribute.String("mastermind.command", cmd.CommandName())),
	)
	defer span.End()

	res, err := h.next.Handle(ctx, cmd)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return res, err
}
