// Package notify delivers workflow events to the notification sink: a RabbitMQ
// fanout exchange in production and the structured log in development.
package notify

import (
	"time"

	"laundry/internal/core/domain/model/order"
)

// EventMessage is the JSON body published for each workflow event.
type EventMessage struct {
	Type       string    `json:"type"`
	OrderID    string    `json:"orderId"`
	OutletID   string    `json:"outletId"`
	SubjectID  string    `json:"subjectId"`
	ActorID    string    `json:"actorId,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

func newEventMessage(e order.Event) EventMessage {
	msg := EventMessage{
		Type:       string(e.Type),
		OrderID:    e.OrderID.String(),
		OutletID:   e.OutletID.String(),
		SubjectID:  e.SubjectID.String(),
		Detail:     e.Detail,
		OccurredAt: e.OccurredAt.UTC(),
	}
	if e.ActorID != nil {
		msg.ActorID = e.ActorID.String()
	}
	return msg
}
