package order

import (
	"errors"
	"fmt"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
)

// StageKind names a processing station. Stations run in declaration order.
type StageKind int

const (
	StageUnknown StageKind = iota
	Washing
	Ironing
	Packing
)

func getStageKindStrings() map[StageKind]string {
	return map[StageKind]string{
		StageUnknown: "UNKNOWN",
		Washing:      "WASHING",
		Ironing:      "IRONING",
		Packing:      "PACKING",
	}
}

// StageKinds lists the stations in pipeline order.
func StageKinds() []StageKind {
	return []StageKind{Washing, Ironing, Packing}
}

func ParseStageKind(s string) (StageKind, error) {
	for kind, name := range getStageKindStrings() {
		if kind != StageUnknown && name == s {
			return kind, nil
		}
	}
	return StageUnknown, errs.NewValueIsInvalidErrorWithCause("stage kind is invalid", fmt.Errorf("%q is not a valid stage", s))
}

func (k StageKind) Validate() error {
	if k <= StageUnknown || k > Packing {
		return errs.NewValueIsInvalidErrorWithCause("stage kind is invalid", fmt.Errorf("%d is not a valid stage", k))
	}
	return nil
}

func (k StageKind) String() string {
	if str, ok := getStageKindStrings()[k]; ok {
		return str
	}
	return "UNKNOWN"
}

// Previous returns the station that must finish (or be bypassed) before k may start.
func (k StageKind) Previous() (StageKind, bool) {
	if k <= Washing || k > Packing {
		return StageUnknown, false
	}
	return k - 1, true
}

// WorkStage records one station's work on an order. The three stages are created
// together at intake and are only ever mutated through their Order.
type WorkStage struct {
	id          kernel.UUID
	orderID     kernel.UUID
	kind        StageKind
	workerID    *kernel.UUID
	startedAt   *time.Time
	completedAt *time.Time
	notes       string
}

// RestoreWorkStageParams carries a persisted stage row.
type RestoreWorkStageParams struct {
	ID          kernel.UUID
	OrderID     kernel.UUID
	Kind        StageKind
	WorkerID    *kernel.UUID
	StartedAt   *time.Time
	CompletedAt *time.Time
	Notes       string
}

func newWorkStage(orderID kernel.UUID, kind StageKind) *WorkStage {
	return &WorkStage{
		id:      kernel.NewUUID(),
		orderID: orderID,
		kind:    kind,
	}
}

// RestoreWorkStage rebuilds a stage and checks that its timestamps are consistent
// with its assignment.
func RestoreWorkStage(p RestoreWorkStageParams) (*WorkStage, error) {
	if err := errors.Join(p.ID.Validate(), p.OrderID.Validate(), p.Kind.Validate()); err != nil {
		return nil, err
	}
	if p.StartedAt != nil && p.WorkerID == nil {
		return nil, errs.NewValueIsRequiredError("started stage worker")
	}
	if p.CompletedAt != nil && p.StartedAt == nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("stage is invalid",
			fmt.Errorf("%s completed without being started", p.Kind))
	}

	return &WorkStage{
		id:          p.ID,
		orderID:     p.OrderID,
		kind:        p.Kind,
		workerID:    p.WorkerID,
		startedAt:   p.StartedAt,
		completedAt: p.CompletedAt,
		notes:       p.Notes,
	}, nil
}

func (s *WorkStage) ID() kernel.UUID { return s.id }
func (s *WorkStage) OrderID() kernel.UUID { return s.orderID }
func (s *WorkStage) Kind() StageKind { return s.kind }
func (s *WorkStage) WorkerID() *kernel.UUID { return s.workerID }
func (s *WorkStage) StartedAt() *time.Time { return s.startedAt }
func (s *WorkStage) CompletedAt() *time.Time { return s.completedAt }
func (s *WorkStage) Notes() string { return s.notes }
func (s *WorkStage) IsStarted() bool { return s.startedAt != nil }
func (s *WorkStage) IsCompleted() bool { return s.completedAt != nil }
func (s *WorkStage) isAssignedTo(id kernel.UUID) bool { return s.workerID != nil && s.workerID.IsEqual(id) }

// State is a display name for the stage progress.
func (s *WorkStage) State() string {
	switch {
	case s.IsCompleted():
		return "COMPLETED"
	case s.IsStarted():
		return "IN_PROGRESS"
	default:
		return "NOT_STARTED"
	}
}

func (s *WorkStage) checkStart() error {
	if s.IsStarted() {
		return errs.NewInvalidTransitionError(s.kind.String()+" stage", s.State(), "start")
	}
	return nil
}

func (s *WorkStage) checkComplete(workerID kernel.UUID) error {
	if !s.IsStarted() || s.IsCompleted() {
		return errs.NewInvalidTransitionError(s.kind.String()+" stage", s.State(), "complete")
	}
	if !s.isAssignedTo(workerID) {
		return errs.NewNotOwnerError("stage", s.id, workerID)
	}
	return nil
}

func (s *WorkStage) start(workerID kernel.UUID, at time.Time) {
	s.workerID = &workerID
	s.startedAt = &at
}

func (s *WorkStage) complete(notes string, at time.Time) {
	s.completedAt = &at
	if notes != "" {
		s.notes = notes
	}
}
