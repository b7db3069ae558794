package commands

import (
	"errors"
	"strings"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrRequestBypassCommandIsNotConstructed = errors.New(
	"RequestBypassCommand must be created via NewRequestBypassCommand constructor",
)

// RequestBypassCommand escalates an item discrepancy found at a station. The
// request id is generated here so callers can refer to the request afterwards.
type RequestBypassCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	stageID   kernel.UUID
	workerID  kernel.UUID
	reason    string

	guard guard.ConstructorGuard
}

func NewRequestBypassCommand(stageID, workerID kernel.UUID, reason string) (RequestBypassCommand, error) {
	reason = strings.TrimSpace(reason)

	var reasonErr error
	if reason == "" {
		reasonErr = errs.NewValueIsRequiredError("reason")
	}
	if err := errors.Join(stageID.Validate(), workerID.Validate(), reasonErr); err != nil {
		return RequestBypassCommand{}, err
	}

	return RequestBypassCommand{
		requestID: kernel.NewUUID(),
		stageID:   stageID,
		workerID:  workerID,
		reason:    reason,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RequestBypassCommand) Validate() error {
	return c.guard.Validate(ErrRequestBypassCommandIsNotConstructed)
}

func (c RequestBypassCommand) RequestID() kernel.UUID {
	return c.requestID
}

func (c RequestBypassCommand) StageID() kernel.UUID {
	return c.stageID
}

func (c RequestBypassCommand) WorkerID() kernel.UUID {
	return c.workerID
}

func (c RequestBypassCommand) Reason() string {
	return c.reason
}
