package event

import (
	"github.com/0xsj/overwatch-pkg/types"
)

// PoolAggregateID is the fixed aggregate id of the single shared supply pool.
const PoolAggregateID types.ID = "supply-pool"

// PoolLow is emitted when the pool drops below the low watermark.
type PoolLow struct {
	BaseEvent
	Size         int64
	LowWatermark int64
}

// NewPoolLow creates a new PoolLow event.
func NewPoolLow(size, lowWatermark int64) PoolLow {
	return PoolLow{
		BaseEvent:    NewBaseEvent(EventTypePoolLow, PoolAggregateID, AggregateTypePool),
		Size:         size,
		LowWatermark: lowWatermark,
	}
}

// PoolReplenished is emitted after generated digits were appended to the pool.
type PoolReplenished struct {
	BaseEvent
	Added      int
	SizeBefore int64
	Trigger    string
}

// NewPoolReplenished creates a new PoolReplenished event.
// Trigger is "scheduler" or "manual".
func NewPoolReplenished(added int, sizeBefore int64, trigger string) PoolReplenished {
	return PoolReplenished{
		BaseEvent:  NewBaseEvent(EventTypePoolReplenished, PoolAggregateID, AggregateTypePool),
		Added:      added,
		SizeBefore: sizeBefore,
		Trigger:    trigger,
	}
}

// PoolReplenishFailed is emitted when a replenishment attempt fails.
type PoolReplenishFailed struct {
	BaseEvent
	Requested int
	Reason    string
	Trigger   string
}

// NewPoolReplenishFailed creates a new PoolReplenishFailed event.
func NewPoolReplenishFailed(requested int, reason, trigger string) PoolReplenishFailed {
	return PoolReplenishFailed{
		BaseEvent: NewBaseEvent(EventTypePoolReplenishFailed, PoolAggregateID, AggregateTypePool),
		Requested: requested,
		Reason:    reason,
		Trigger:   trigger,
	}
}

// Replenishment triggers
const (
	TriggerScheduler = "scheduler"
	TriggerManual    = "manual"
)
