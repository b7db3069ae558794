package commands

import (
	"errors"
	"strings"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrResolveBypassCommandIsNotConstructed = errors.New(
	"ResolveBypassCommand must be created via NewApproveBypassCommand or NewRejectBypassCommand",
)

// ResolveBypassCommand settles a pending bypass request. Build it with
// NewApproveBypassCommand or NewRejectBypassCommand.
type ResolveBypassCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	adminID   kernel.UUID
	approve   bool
	note      string

	guard guard.ConstructorGuard
}

func NewApproveBypassCommand(requestID, adminID kernel.UUID, note string) (ResolveBypassCommand, error) {
	return newResolveBypassCommand(requestID, adminID, true, note)
}

func NewRejectBypassCommand(requestID, adminID kernel.UUID, note string) (ResolveBypassCommand, error) {
	return newResolveBypassCommand(requestID, adminID, false, note)
}

func newResolveBypassCommand(requestID, adminID kernel.UUID, approve bool, note string) (ResolveBypassCommand, error) {
	if err := errors.Join(requestID.Validate(), adminID.Validate()); err != nil {
		return ResolveBypassCommand{}, err
	}

	return ResolveBypassCommand{
		requestID: requestID,
		adminID:   adminID,
		approve:   approve,
		note:      strings.TrimSpace(note),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ResolveBypassCommand) Validate() error {
	return c.guard.Validate(ErrResolveBypassCommandIsNotConstructed)
}

func (c ResolveBypassCommand) RequestID() kernel.UUID {
	return c.requestID
}

func (c ResolveBypassCommand) AdminID() kernel.UUID {
	return c.adminID
}

func (c ResolveBypassCommand) Approve() bool {
	return c.approve
}

func (c ResolveBypassCommand) Note() string {
	return c.note
}
