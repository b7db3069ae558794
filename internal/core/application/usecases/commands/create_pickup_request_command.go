package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/guard"
)

var ErrCreatePickupRequestCommandIsNotConstructed = errors.New(
	"CreatePickupRequestCommand must be created via NewCreatePickupRequestCommand constructor",
)

// CreatePickupRequestCommand registers a customer's laundry order and puts its
// pickup job on the outlet's board.
//
// Example:
//
//	cmd, err := NewCreatePickupRequestCommand(kernel.NewUUID(), customerID, outletID, address, nil, order.Schedule{})
//	if err != nil {
//	    return err
//	}
//	err = NewCreatePickupRequestCommandHandler(uowFactory, notifier).Handle(ctx, cmd)
type CreatePickupRequestCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID kernel.UUID
	outletID   kernel.UUID
	address    order.Address
	items      []order.Item
	schedule   order.Schedule

	guard guard.ConstructorGuard
}

func NewCreatePickupRequestCommand(
	orderID, customerID, outletID kernel.UUID,
	address order.Address,
	items []order.Item,
	schedule order.Schedule,
) (CreatePickupRequestCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		customerID.Validate(),
		outletID.Validate(),
		address.Validate(),
	); err != nil {
		return CreatePickupRequestCommand{}, err
	}

	return CreatePickupRequestCommand{
		orderID:    orderID,
		customerID: customerID,
		outletID:   outletID,
		address:    address,
		items:      items,
		schedule:   schedule,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CreatePickupRequestCommand) Validate() error {
	return c.guard.Validate(ErrCreatePickupRequestCommandIsNotConstructed)
}

func (c CreatePickupRequestCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreatePickupRequestCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c CreatePickupRequestCommand) OutletID() kernel.UUID {
	return c.outletID
}

func (c CreatePickupRequestCommand) Address() order.Address {
	return c.address
}

func (c CreatePickupRequestCommand) Items() []order.Item {
	return c.items
}

func (c CreatePickupRequestCommand) Schedule() order.Schedule {
	return c.schedule
}
