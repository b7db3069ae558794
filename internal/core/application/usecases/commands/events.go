package commands

import (
	"context"
	"log/slog"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"
)

// publishEvents hands committed events to the notifier. Delivery is
// fire-and-forget: a failure is logged and never undoes the transition.
func publishEvents(ctx context.Context, notifier ports.Notifier, events []order.Event) {
	if notifier == nil || len(events) == 0 {
		return
	}
	if err := notifier.Publish(ctx, events...); err != nil {
		slog.Default().With("component", "commands").
			WarnContext(ctx, "failed to publish workflow events",
				"order_id", events[0].OrderID.String(),
				"count", len(events),
				"error", err)
	}
}
