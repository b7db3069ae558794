// Package queries contains the read side of the workflow. Queries read
// projections straight from the database and never lock or change an order.
package queries

import (
	"errors"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

const (
	DefaultJobListLimit = 50
	MaxJobListLimit     = 200
)

var ErrListAvailableJobsQueryIsNotConstructed = errors.New(
	"ListAvailableJobsQuery must be created via NewListAvailableJobsQuery constructor",
)

// ListAvailableJobsQuery lists the unclaimed transport jobs of one outlet, oldest
// first. A nil kind lists both pickups and deliveries.
//
// Example:
//
//	kind := order.Delivery
//	query, err := NewListAvailableJobsQuery(outletID, &kind, 0)
//	if err != nil {
//	    return err
//	}
//	jobs, err := NewListAvailableJobsQueryHandler(db).Handle(ctx, query)
type ListAvailableJobsQuery struct { //nolint:recvcheck //using for validation
	outletID kernel.UUID
	kind     *order.JobKind
	limit    int

	guard guard.ConstructorGuard
}

// NewListAvailableJobsQuery uses DefaultJobListLimit when limit is zero.
func NewListAvailableJobsQuery(outletID kernel.UUID, kind *order.JobKind, limit int) (ListAvailableJobsQuery, error) {
	if err := outletID.Validate(); err != nil {
		return ListAvailableJobsQuery{}, err
	}
	if kind != nil {
		if err := kind.Validate(); err != nil {
			return ListAvailableJobsQuery{}, err
		}
	}
	if limit < 0 || limit > MaxJobListLimit {
		return ListAvailableJobsQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 0, MaxJobListLimit)
	}
	if limit == 0 {
		limit = DefaultJobListLimit
	}

	return ListAvailableJobsQuery{
		outletID: outletID,
		kind:     kind,
		limit:    limit,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q ListAvailableJobsQuery) Validate() error {
	return q.guard.Validate(ErrListAvailableJobsQueryIsNotConstructed)
}

func (q ListAvailableJobsQuery) OutletID() kernel.UUID {
	return q.outletID
}

func (q ListAvailableJobsQuery) Kind() *order.JobKind {
	return q.kind
}

func (q ListAvailableJobsQuery) Limit() int {
	return q.limit
}

// AvailableJob is a job a driver may claim, with enough of the order to plan the trip.
type AvailableJob struct {
	JobID       kernel.UUID
	OrderID     kernel.UUID
	Kind        order.JobKind
	CreatedAt   time.Time
	ScheduledAt *time.Time
	Address     string
	City        string
	Lat         float64
	Lon         float64
}
