package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrStartStageCommandIsNotConstructed = errors.New(
	"StartStageCommand must be created via NewStartStageCommand constructor",
)

// StartStageCommand assigns a station's stage to the worker starting it.
type StartStageCommand struct { //nolint:recvcheck //using for validation
	stageID  kernel.UUID
	workerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewStartStageCommand(stageID, workerID kernel.UUID) (StartStageCommand, error) {
	if err := errors.Join(stageID.Validate(), workerID.Validate()); err != nil {
		return StartStageCommand{}, err
	}

	return StartStageCommand{
		stageID:  stageID,
		workerID: workerID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c StartStageCommand) Validate() error {
	return c.guard.Validate(ErrStartStageCommandIsNotConstructed)
}

func (c StartStageCommand) StageID() kernel.UUID {
	return c.stageID
}

func (c StartStageCommand) WorkerID() kernel.UUID {
	return c.workerID
}
