package nats

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/0xsj/overwatch-pkg/types"

	"github.com/0xsj/overwatch-mastermind/internal/domain/event"
)

func TestSubjectForEvent(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		evt    event.Event
		want   string
	}{
		{"game event", "overwatch", event.NewGameWon(types.NewID(), 3), "overwatch.mastermind.game"},
		{"pool event", "overwatch", event.NewPoolLow(4, 10), "overwatch.mastermind.pool"},
		{"custom prefix", "staging", event.NewGameEnded(types.NewID(), 1), "staging.mastermind.game"},
		{"default prefix", "", event.NewPoolReplenished(15, 2, event.TriggerScheduler), "overwatch.mastermind.pool"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewEventPublisher(nil, tt.prefix).(*eventPublisher)
			if got := p.subjectForEvent(tt.evt); got != tt.want {
				t.Errorf("subjectForEvent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewEnvelope(t *testing.T) {
	sessionID := types.NewID()
	evt := event.NewGameGuessed(sessionID, 3, 1, 7)

	data, err := json.Marshal(newEnvelope(evt))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded struct {
		EventID       string         `json:"event_id"`
		EventType     string         `json:"event_type"`
		AggregateID   string         `json:"aggregate_id"`
		AggregateType string         `json:"aggregate_type"`
		OccurredAt    int64          `json:"occurred_at"`
		Payload       map[string]any `json:"payload"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if decoded.EventID != evt.EventID().String() {
		t.Errorf("EventID = %v, want %v", decoded.EventID, evt.EventID())
	}
	if decoded.EventType != event.EventTypeGameGuessed {
		t.Errorf("EventType = %v, want %v", decoded.EventType, event.EventTypeGameGuessed)
	}
	if decoded.AggregateID != sessionID.String() {
		t.Errorf("AggregateID = %v, want %v", decoded.AggregateID, sessionID)
	}
	if decoded.AggregateType != event.AggregateTypeGame {
		t.Errorf("AggregateType = %v, want %v", decoded.AggregateType, event.AggregateTypeGame)
	}
	if decoded.OccurredAt != evt.OccurredAt().Time().UnixMilli() {
		t.Errorf("OccurredAt = %v, want %v", decoded.OccurredAt, evt.OccurredAt().Time().UnixMilli())
	}
	if decoded.Payload["CorrectCount"] != float64(3) {
		t.Errorf("payload CorrectCount = %v, want 3", decoded.Payload["CorrectCount"])
	}
	if decoded.Payload["AttemptsRemaining"] != float64(7) {
		t.Errorf("payload AttemptsRemaining = %v, want 7", decoded.Payload["AttemptsRemaining"])
	}
}

func TestPublish_CanceledContext(t *testing.T) {
	p := NewEventPublisher(nil, "overwatch")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := p.Publish(ctx, event.NewPoolLow(1, 10)); err != context.Canceled {
		t.Errorf("Publish() error = %v, want %v", err, context.Canceled)
	}
}
