package ports

import (
	"context"

	"laundry/internal/core/domain/model/order"
)

// Notifier delivers workflow events to the notification sink. Callers publish
// after commit and only log failures.
type Notifier interface {
	Publish(ctx context.Context, events ...order.Event) error
}
