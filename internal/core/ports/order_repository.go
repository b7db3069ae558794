package ports

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
)

// OverdueDeliveredSpec selects delivered, undisputed orders whose delivery is at
// or before Cutoff. Limit bounds one sweep batch; zero means no bound.
type OverdueDeliveredSpec struct {
	Cutoff time.Time
	Limit  int
}

// OrderRepository defines the persistence contract for the order aggregate and
// everything it owns (stages, jobs, bypass requests, items).
//
// The ...ForUpdate lookups lock the order row for the rest of the transaction
// before any child row is read, so every operation on one order is serialized
// while different orders never contend.
type OrderRepository interface {
	// Add persists a new order with its stages and jobs.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists every change made to the aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get reads an order without locking it.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)
	GetByJobIDForUpdate(ctx context.Context, jobID kernel.UUID) (*order.Order, error)
	GetByStageIDForUpdate(ctx context.Context, stageID kernel.UUID) (*order.Order, error)
	GetByBypassIDForUpdate(ctx context.Context, requestID kernel.UUID) (*order.Order, error)

	// ListOverdueDelivered returns candidate ids for the idle sweep. Candidates
	// must be re-checked under lock; the list is a hint, not a claim.
	ListOverdueDelivered(ctx context.Context, spec OverdueDeliveredSpec) ([]kernel.UUID, error)
}
