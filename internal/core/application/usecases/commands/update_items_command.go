package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrUpdateItemsCommandIsNotConstructed = errors.New(
	"UpdateItemsCommand must be created via NewUpdateItemsCommand constructor",
)

// UpdateItemsCommand replaces the item lines of an order that has not reached the
// washing station yet.
type UpdateItemsCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID
	items   []order.Item

	guard guard.ConstructorGuard
}

func NewUpdateItemsCommand(orderID, actorID kernel.UUID, items []order.Item) (UpdateItemsCommand, error) {
	if err := errors.Join(orderID.Validate(), actorID.Validate()); err != nil {
		return UpdateItemsCommand{}, err
	}
	if len(items) == 0 {
		return UpdateItemsCommand{}, errs.NewValueIsRequiredError("items")
	}

	return UpdateItemsCommand{
		orderID: orderID,
		actorID: actorID,
		items:   items,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateItemsCommand) Validate() error {
	return c.guard.Validate(ErrUpdateItemsCommandIsNotConstructed)
}

func (c UpdateItemsCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpdateItemsCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c UpdateItemsCommand) Items() []order.Item {
	return c.items
}
