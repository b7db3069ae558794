package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
)

// JobKind distinguishes the two legs a driver can run for an order.
type JobKind int

const (
	JobKindUnknown JobKind = iota
	Pickup
	Delivery
)

func getJobKindStrings() map[JobKind]string {
	return map[JobKind]string{
		JobKindUnknown: "UNKNOWN",
		Pickup:         "PICKUP",
		Delivery:       "DELIVERY",
	}
}

func ParseJobKind(s string) (JobKind, error) {
	for kind, name := range getJobKindStrings() {
		if kind != JobKindUnknown && name == s {
			return kind, nil
		}
	}
	return JobKindUnknown, errs.NewValueIsInvalidErrorWithCause("job kind is invalid", fmt.Errorf("%q is not a valid job kind", s))
}

func (k JobKind) Validate() error {
	if k != Pickup && k != Delivery {
		return errs.NewValueIsInvalidErrorWithCause("job kind is invalid", fmt.Errorf("%d is not a valid job kind", k))
	}
	return nil
}

func (k JobKind) String() string {
	if str, ok := getJobKindStrings()[k]; ok {
		return str
	}
	return "UNKNOWN"
}

// JobStatus is the lifecycle of a single transport job.
//
//	Unclaimed ──claim──> Claimed ──start──> InProgress ──complete──> Completed
type JobStatus int

const (
	JobStatusUnknown JobStatus = iota
	JobUnclaimed
	JobClaimed
	JobInProgress
	JobCompleted
)

func getJobStatusStrings() map[JobStatus]string {
	return map[JobStatus]string{
		JobStatusUnknown: "UNKNOWN",
		JobUnclaimed:     "UNCLAIMED",
		JobClaimed:       "CLAIMED",
		JobInProgress:    "IN_PROGRESS",
		JobCompleted:     "COMPLETED",
	}
}

func ParseJobStatus(s string) (JobStatus, error) {
	for status, name := range getJobStatusStrings() {
		if status != JobStatusUnknown && name == s {
			return status, nil
		}
	}
	return JobStatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"job status is invalid", fmt.Errorf("%q is not a valid job status", s))
}

func (s JobStatus) Validate() error {
	if s <= JobStatusUnknown || s > JobCompleted {
		return errs.NewValueIsInvalidErrorWithCause("job status is invalid", fmt.Errorf("%d is not a valid job status", s))
	}
	return nil
}

func (s JobStatus) String() string {
	if str, ok := getJobStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// TransportJob is a pickup or delivery task. At most one driver holds it, and the
// hold is taken exactly once when the job leaves Unclaimed.
type TransportJob struct {
	id          kernel.UUID
	orderID     kernel.UUID
	kind        JobKind
	status      JobStatus
	driverID    *kernel.UUID
	photos      []string
	notes       string
	createdAt   time.Time
	claimedAt   *time.Time
	startedAt   *time.Time
	completedAt *time.Time
}

// RestoreTransportJobParams carries a persisted job row.
type RestoreTransportJobParams struct {
	ID          kernel.UUID
	OrderID     kernel.UUID
	Kind        JobKind
	Status      JobStatus
	DriverID    *kernel.UUID
	Photos      []string
	Notes       string
	CreatedAt   time.Time
	ClaimedAt   *time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time
}

func newTransportJob(orderID kernel.UUID, kind JobKind, at time.Time) *TransportJob {
	return &TransportJob{
		id:        kernel.NewUUID(),
		orderID:   orderID,
		kind:      kind,
		status:    JobUnclaimed,
		createdAt: at,
	}
}

// RestoreTransportJob rebuilds a job; a held job must name its driver.
func RestoreTransportJob(p RestoreTransportJobParams) (*TransportJob, error) {
	if err := errors.Join(p.ID.Validate(), p.OrderID.Validate(), p.Kind.Validate(), p.Status.Validate()); err != nil {
		return nil, err
	}
	if p.Status != JobUnclaimed && p.DriverID == nil {
		return nil, errs.NewValueIsRequiredError(fmt.Sprintf("driver of %s job", p.Status))
	}
	if p.Status == JobUnclaimed && p.DriverID != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("job is invalid", errors.New("unclaimed job has a driver"))
	}

	return &TransportJob{
		id:          p.ID,
		orderID:     p.OrderID,
		kind:        p.Kind,
		status:      p.Status,
		driverID:    p.DriverID,
		photos:      slices.Clone(p.Photos),
		notes:       p.Notes,
		createdAt:   p.CreatedAt,
		claimedAt:   p.ClaimedAt,
		startedAt:   p.StartedAt,
		completedAt: p.CompletedAt,
	}, nil
}

func (j *TransportJob) ID() kernel.UUID {
	return j.id
}

func (j *TransportJob) OrderID() kernel.UUID {
	return j.orderID
}

func (j *TransportJob) Kind() JobKind {
	return j.kind
}

func (j *TransportJob) Status() JobStatus {
	return j.status
}

// DriverID is nil while the job is unclaimed.
func (j *TransportJob) DriverID() *kernel.UUID {
	return j.driverID
}

// Photos returns a copy of the proof-of-handover references.
func (j *TransportJob) Photos() []string {
	return slices.Clone(j.photos)
}

func (j *TransportJob) Notes() string {
	return j.notes
}

func (j *TransportJob) CreatedAt() time.Time {
	return j.createdAt
}

func (j *TransportJob) ClaimedAt() *time.Time {
	return j.claimedAt
}

func (j *TransportJob) StartedAt() *time.Time {
	return j.startedAt
}

func (j *TransportJob) CompletedAt() *time.Time {
	return j.completedAt
}

func (j *TransportJob) checkClaim() error {
	if j.status != JobUnclaimed {
		return errs.NewAlreadyClaimedError(j.id)
	}
	return nil
}

func (j *TransportJob) checkOwner(driverID kernel.UUID) error {
	if j.driverID == nil || !j.driverID.IsEqual(driverID) {
		return errs.NewNotOwnerError("job", j.id, driverID)
	}
	return nil
}

func (j *TransportJob) checkStatus(want JobStatus, action string) error {
	if j.status != want {
		return errs.NewInvalidTransitionError(strings.ToLower(j.kind.String())+" job", j.status.String(), action)
	}
	return nil
}

func (j *TransportJob) claim(driverID kernel.UUID, at time.Time) {
	j.driverID = &driverID
	j.status = JobClaimed
	j.claimedAt = &at
}

func (j *TransportJob) start(at time.Time) {
	j.status = JobInProgress
	j.startedAt = &at
}

func (j *TransportJob) complete(photos []string, notes string, at time.Time) {
	j.status = JobCompleted
	j.photos = photos
	j.completedAt = &at
	if notes != "" {
		j.notes = notes
	}
}

// normalizePhotos drops blank references and requires at least one to remain.
func normalizePhotos(photos []string) ([]string, error) {
	out := make([]string, 0, len(photos))
	for _, p := range photos {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil, errs.NewValueIsRequiredError("photos")
	}
	return out, nil
}
