package queries

import (
	"errors"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderProgressQueryIsNotConstructed = errors.New(
	"GetOrderProgressQuery must be created via NewGetOrderProgressQuery constructor",
)

// GetOrderProgressQuery reads where one order stands: its statuses, frozen money
// fields, stages and transport jobs.
type GetOrderProgressQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderProgressQuery(orderID kernel.UUID) (GetOrderProgressQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderProgressQuery{}, err
	}

	return GetOrderProgressQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderProgressQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderProgressQueryIsNotConstructed)
}

func (q GetOrderProgressQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrderProgress is the read model behind the order tracking screen. AmountDue is
// set once both the price and the delivery fee are frozen.
type OrderProgress struct {
	ID            kernel.UUID
	OutletID      kernel.UUID
	Status        order.Status
	PaymentStatus order.PaymentStatus
	TotalWeight   *decimal.Decimal
	TotalPrice    *decimal.Decimal
	DeliveryFee   *decimal.Decimal
	AmountDue     *decimal.Decimal
	CreatedAt     time.Time
	PaidAt        *time.Time
	DeliveredAt   *time.Time
	DisputedAt    *time.Time
	CompletedAt   *time.Time
	Stages        []StageProgress
	Jobs          []JobProgress
}

// StageProgress describes one station. Frozen is set while a bypass request on
// the stage is pending.
type StageProgress struct {
	ID          kernel.UUID
	Kind        order.StageKind
	State       string
	WorkerID    *kernel.UUID
	StartedAt   *time.Time
	CompletedAt *time.Time
	Frozen      bool
}

type JobProgress struct {
	ID          kernel.UUID
	Kind        order.JobKind
	Status      order.JobStatus
	DriverID    *kernel.UUID
	ClaimedAt   *time.Time
	CompletedAt *time.Time
}
