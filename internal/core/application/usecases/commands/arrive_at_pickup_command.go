package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrArriveAtPickupCommandIsNotConstructed = errors.New(
	"ArriveAtPickupCommand must be created via NewArriveAtPickupCommand constructor",
)

// ArriveAtPickupCommand records that the driver holding the pickup job has
// reached the customer.
type ArriveAtPickupCommand struct { //nolint:recvcheck //using for validation
	jobID    kernel.UUID
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

func NewArriveAtPickupCommand(jobID, driverID kernel.UUID) (ArriveAtPickupCommand, error) {
	if err := errors.Join(jobID.Validate(), driverID.Validate()); err != nil {
		return ArriveAtPickupCommand{}, err
	}

	return ArriveAtPickupCommand{
		jobID:    jobID,
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c ArriveAtPickupCommand) Validate() error {
	return c.guard.Validate(ErrArriveAtPickupCommandIsNotConstructed)
}

func (c ArriveAtPickupCommand) JobID() kernel.UUID {
	return c.jobID
}

func (c ArriveAtPickupCommand) DriverID() kernel.UUID {
	return c.driverID
}
