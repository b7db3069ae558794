package notify

import (
	"context"
	"log/slog"

	"laundry/internal/core/domain/model/order"
)

// LogNotifier writes events to the structured log. It never fails.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger.With("component", "notify")}
}

func (n *LogNotifier) Publish(ctx context.Context, events ...order.Event) error {
	for _, e := range events {
		msg := newEventMessage(e)
		n.logger.InfoContext(ctx, "workflow event",
			"type", msg.Type,
			"order_id", msg.OrderID,
			"outlet_id", msg.OutletID,
			"subject_id", msg.SubjectID,
			"actor_id", msg.ActorID,
			"detail", msg.Detail,
			"occurred_at", msg.OccurredAt)
	}
	return nil
}
