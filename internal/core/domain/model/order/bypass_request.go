package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
)

// BypassStatus is the outcome of an escalation raised on a stage.
type BypassStatus int

const (
	BypassUnknown BypassStatus = iota
	BypassPending
	BypassApproved
	BypassRejected
)

func getBypassStatusStrings() map[BypassStatus]string {
	return map[BypassStatus]string{
		BypassUnknown:  "UNKNOWN",
		BypassPending:  "PENDING",
		BypassApproved: "APPROVED",
		BypassRejected: "REJECTED",
	}
}

func ParseBypassStatus(s string) (BypassStatus, error) {
	for status, name := range getBypassStatusStrings() {
		if status != BypassUnknown && name == s {
			return status, nil
		}
	}
	return BypassUnknown, errs.NewValueIsInvalidErrorWithCause(
		"bypass status is invalid", fmt.Errorf("%q is not a valid bypass status", s))
}

func (s BypassStatus) Validate() error {
	if s <= BypassUnknown || s > BypassRejected {
		return errs.NewValueIsInvalidErrorWithCause(
			"bypass status is invalid", fmt.Errorf("%d is not a valid bypass status", s))
	}
	return nil
}

func (s BypassStatus) String() string {
	if str, ok := getBypassStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// BypassRequest is a worker's escalation of an item discrepancy on one stage.
// While pending the stage is frozen; an outlet admin settles it exactly once.
type BypassRequest struct {
	id          kernel.UUID
	orderID     kernel.UUID
	stageID     kernel.UUID
	reason      string
	adminNote   string
	status      BypassStatus
	requestedBy kernel.UUID
	resolvedBy  *kernel.UUID
	requestedAt time.Time
	resolvedAt  *time.Time
}

// RestoreBypassRequestParams carries a persisted bypass row.
type RestoreBypassRequestParams struct {
	ID          kernel.UUID
	OrderID     kernel.UUID
	StageID     kernel.UUID
	Reason      string
	AdminNote   string
	Status      BypassStatus
	RequestedBy kernel.UUID
	ResolvedBy  *kernel.UUID
	RequestedAt time.Time
	ResolvedAt  *time.Time
}

func newBypassRequest(id, orderID, stageID, requestedBy kernel.UUID, reason string, at time.Time) (*BypassRequest, error) {
	reason = strings.TrimSpace(reason)
	if err := errors.Join(id.Validate(), requestedBy.Validate()); err != nil {
		return nil, err
	}
	if reason == "" {
		return nil, errs.NewValueIsRequiredError("bypass reason")
	}

	return &BypassRequest{
		id:          id,
		orderID:     orderID,
		stageID:     stageID,
		reason:      reason,
		status:      BypassPending,
		requestedBy: requestedBy,
		requestedAt: at,
	}, nil
}

func RestoreBypassRequest(p RestoreBypassRequestParams) (*BypassRequest, error) {
	if err := errors.Join(
		p.ID.Validate(),
		p.OrderID.Validate(),
		p.StageID.Validate(),
		p.RequestedBy.Validate(),
		p.Status.Validate(),
	); err != nil {
		return nil, err
	}
	if p.Status != BypassPending && p.ResolvedBy == nil {
		return nil, errs.NewValueIsRequiredError("bypass resolver")
	}

	return &BypassRequest{
		id:          p.ID,
		orderID:     p.OrderID,
		stageID:     p.StageID,
		reason:      p.Reason,
		adminNote:   p.AdminNote,
		status:      p.Status,
		requestedBy: p.RequestedBy,
		resolvedBy:  p.ResolvedBy,
		requestedAt: p.RequestedAt,
		resolvedAt:  p.ResolvedAt,
	}, nil
}

func (b *BypassRequest) ID() kernel.UUID {
	return b.id
}

func (b *BypassRequest) OrderID() kernel.UUID {
	return b.orderID
}

func (b *BypassRequest) StageID() kernel.UUID {
	return b.stageID
}

func (b *BypassRequest) Reason() string {
	return b.reason
}

func (b *BypassRequest) AdminNote() string {
	return b.adminNote
}

func (b *BypassRequest) Status() BypassStatus {
	return b.status
}

func (b *BypassRequest) RequestedBy() kernel.UUID {
	return b.requestedBy
}

func (b *BypassRequest) ResolvedBy() *kernel.UUID {
	return b.resolvedBy
}

func (b *BypassRequest) RequestedAt() time.Time {
	return b.requestedAt
}

func (b *BypassRequest) ResolvedAt() *time.Time {
	return b.resolvedAt
}

func (b *BypassRequest) IsPending() bool {
	return b.status == BypassPending
}

func (b *BypassRequest) checkResolve() error {
	if b.status != BypassPending {
		return errs.NewAlreadyProcessedError(b.id, b.status.String())
	}
	return nil
}

func (b *BypassRequest) resolve(adminID kernel.UUID, approve bool, note string, at time.Time) {
	b.status = BypassRejected
	if approve {
		b.status = BypassApproved
	}
	b.resolvedBy = &adminID
	b.adminNote = strings.TrimSpace(note)
	b.resolvedAt = &at
}
