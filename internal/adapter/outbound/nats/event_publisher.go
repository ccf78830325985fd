package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/0xsj/overwatch-mastermind/internal/domain/event"
	"github.com/0xsj/overwatch-mastermind/internal/port/outbound/messaging"
)

const (
	headerEventType = "Mastermind-Event-Type"
	headerMsgID     = "Nats-Msg-Id"
)

// eventPublisher implements messaging.EventPublisher.
type eventPublisher struct {
	conn          *nats.Conn
	subjectPrefix string
}

// NewEventPublisher creates a new EventPublisher.
func NewEventPublisher(conn *nats.Conn, subjectPrefix string) messaging.EventPublisher {
	if subjectPrefix == "" {
		subjectPrefix = "overwatch"
	}
	return &eventPublisher{
		conn:          conn,
		subjectPrefix: subjectPrefix,
	}
}

func (p *eventPublisher) Publish(ctx context.Context, evt event.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(newEnvelope(evt))
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := nats.NewMsg(p.subjectForEvent(evt))
	msg.Data = data
	msg.Header.Set(headerEventType, evt.EventType())
	msg.Header.Set(headerMsgID, evt.EventID().String())

	if err := p.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", evt.EventType(), err)
	}

	return nil
}

func (p *eventPublisher) PublishAll(ctx context.Context, events []event.Event) error {
	for _, evt := range events {
		if err := p.Publish(ctx, evt); err != nil {
			return err
		}
	}
	return nil
}

func (p *eventPublisher) subjectForEvent(evt event.Event) string {
	return fmt.Sprintf("%s.%s", p.subjectPrefix, messaging.TopicForEvent(evt))
}

// eventEnvelope wraps an event with metadata for transport.
type eventEnvelope struct {
	EventID       string `json:"event_id"`
	EventType     string `json:"event_type"`
	AggregateID   string `json:"aggregate_id"`
	AggregateType string `json:"aggregate_type"`
	OccurredAt    int64  `json:"occurred_at"`
	Payload       any    `json:"payload"`
}

func newEnvelope(evt event.Event) eventEnvelope {
	return eventEnvelope{
		EventID:       evt.EventID().String(),
		EventType:     evt.EventType(),
		AggregateID:   evt.AggregateID().String(),
		AggregateType: evt.AggregateType(),
		OccurredAt:    evt.OccurredAt().Time().UnixMilli(),
		Payload:       evt,
	}
}
