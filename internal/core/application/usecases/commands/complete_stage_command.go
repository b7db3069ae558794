package commands

import (
	"errors"
	"strings"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrCompleteStageCommandIsNotConstructed = errors.New(
	"CompleteStageCommand must be created via NewCompleteStageCommand constructor",
)

// CompleteStageCommand closes a station's stage for the worker holding it.
type CompleteStageCommand struct { //nolint:recvcheck //using for validation
	stageID  kernel.UUID
	workerID kernel.UUID
	notes    string

	guard guard.ConstructorGuard
}

func NewCompleteStageCommand(stageID, workerID kernel.UUID, notes string) (CompleteStageCommand, error) {
	if err := errors.Join(stageID.Validate(), workerID.Validate()); err != nil {
		return CompleteStageCommand{}, err
	}

	return CompleteStageCommand{
		stageID:  stageID,
		workerID: workerID,
		notes:    strings.TrimSpace(notes),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CompleteStageCommand) Validate() error {
	return c.guard.Validate(ErrCompleteStageCommandIsNotConstructed)
}

func (c CompleteStageCommand) StageID() kernel.UUID {
	return c.stageID
}

func (c CompleteStageCommand) WorkerID() kernel.UUID {
	return c.workerID
}

func (c CompleteStageCommand) Notes() string {
	return c.notes
}
