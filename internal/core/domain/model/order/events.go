package order

import (
	"time"

	"laundry/internal/core/domain/model/kernel"
)

// EventType names a notification raised by the order aggregate.
type EventType string

const (
	EventStageStarted     EventType = "StageStarted"
	EventStageCompleted   EventType = "StageCompleted"
	EventJobClaimed       EventType = "JobClaimed"
	EventBypassRequested  EventType = "BypassRequested"
	EventBypassResolved   EventType = "BypassResolved"
	EventPaymentConfirmed EventType = "PaymentConfirmed"
	EventOrderDelivered   EventType = "OrderDelivered"
	EventOrderCompleted   EventType = "OrderCompleted"
)

// Event is collected on the aggregate during a transition and published once the
// transaction that produced it has committed.
type Event struct {
	Type      EventType
	OrderID   kernel.UUID
	OutletID  kernel.UUID
	SubjectID kernel.UUID
	ActorID   *kernel.UUID
	// Detail carries the stage kind, job kind or bypass outcome.
	Detail     string
	OccurredAt time.Time
}
