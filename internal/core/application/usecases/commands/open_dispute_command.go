package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrOpenDisputeCommandIsNotConstructed = errors.New(
	"OpenDisputeCommand must be created via NewOpenDisputeCommand constructor",
)

// OpenDisputeCommand records a customer complaint on behalf of an outlet admin.
type OpenDisputeCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

func NewOpenDisputeCommand(orderID, actorID kernel.UUID) (OpenDisputeCommand, error) {
	if err := errors.Join(orderID.Validate(), actorID.Validate()); err != nil {
		return OpenDisputeCommand{}, err
	}

	return OpenDisputeCommand{
		orderID: orderID,
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c OpenDisputeCommand) Validate() error {
	return c.guard.Validate(ErrOpenDisputeCommandIsNotConstructed)
}

func (c OpenDisputeCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c OpenDisputeCommand) ActorID() kernel.UUID {
	return c.actorID
}
