package commands

import (
	"errors"
	"slices"
	"strings"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrCompleteJobCommandIsNotConstructed = errors.New(
	"CompleteJobCommand must be created via NewCompleteJobCommand constructor",
)

// CompleteJobCommand closes a job with photo proof. For a pickup, items (when not
// nil) replace the lines recorded at intake.
type CompleteJobCommand struct { //nolint:recvcheck //using for validation
	jobID    kernel.UUID
	driverID kernel.UUID
	photos   []string
	notes    string
	items    []order.Item

	guard guard.ConstructorGuard
}

func NewCompleteJobCommand(
	jobID, driverID kernel.UUID,
	photos []string,
	notes string,
	items []order.Item,
) (CompleteJobCommand, error) {
	if err := errors.Join(jobID.Validate(), driverID.Validate()); err != nil {
		return CompleteJobCommand{}, err
	}
	if !slices.ContainsFunc(photos, func(p string) bool { return strings.TrimSpace(p) != "" }) {
		return CompleteJobCommand{}, errs.NewValueIsRequiredError("photos")
	}

	return CompleteJobCommand{
		jobID:    jobID,
		driverID: driverID,
		photos:   photos,
		notes:    strings.TrimSpace(notes),
		items:    items,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CompleteJobCommand) Validate() error {
	return c.guard.Validate(ErrCompleteJobCommandIsNotConstructed)
}

func (c CompleteJobCommand) JobID() kernel.UUID {
	return c.jobID
}

func (c CompleteJobCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c CompleteJobCommand) Photos() []string {
	return c.photos
}

func (c CompleteJobCommand) Notes() string {
	return c.notes
}

func (c CompleteJobCommand) Items() []order.Item {
	return c.items
}
