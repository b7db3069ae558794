package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrClaimJobCommandIsNotConstructed = errors.New(
	"ClaimJobCommand must be created via NewClaimJobCommand constructor",
)

// ClaimJobCommand asks for the driver to become the single holder of an
// unclaimed pickup or delivery job.
type ClaimJobCommand struct { //nolint:recvcheck //using for validation
	jobID    kernel.UUID
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

func NewClaimJobCommand(jobID, driverID kernel.UUID) (ClaimJobCommand, error) {
	if err := errors.Join(jobID.Validate(), driverID.Validate()); err != nil {
		return ClaimJobCommand{}, err
	}

	return ClaimJobCommand{
		jobID:    jobID,
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c ClaimJobCommand) Validate() error {
	return c.guard.Validate(ErrClaimJobCommandIsNotConstructed)
}

func (c ClaimJobCommand) JobID() kernel.UUID {
	return c.jobID
}

func (c ClaimJobCommand) DriverID() kernel.UUID {
	return c.driverID
}
