package employee

import (
	"errors"
	"strings"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
)

var ErrEmployeeIsNotConstructed = errors.New("Employee must be created via NewEmployee constructor")

// Employee is a staff account scoped to exactly one outlet. Employees are never
// physically removed; a tombstone keeps them out of every assignment.
type Employee struct {
	id            kernel.UUID
	outletID      kernel.UUID
	name          string
	role          Role
	deletedAt     *time.Time
	isConstructed bool
}

func NewEmployee(id, outletID kernel.UUID, name string, role Role) (*Employee, error) {
	e := &Employee{isConstructed: true}

	if err := errors.Join(
		e.setID(id),
		e.setOutlet(outletID),
		e.setName(name),
		e.setRole(role),
	); err != nil {
		return nil, err
	}

	return e, nil
}

// RestoreEmployee rebuilds an employee row, tombstone included.
func RestoreEmployee(id, outletID kernel.UUID, name string, role Role, deletedAt *time.Time) (*Employee, error) {
	e, err := NewEmployee(id, outletID, name, role)
	if err != nil {
		return nil, err
	}
	e.deletedAt = deletedAt
	return e, nil
}

func (e *Employee) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEmployeeIsNotConstructed
	}
	return nil
}

func (e *Employee) ID() kernel.UUID {
	return e.id
}

func (e *Employee) OutletID() kernel.UUID {
	return e.outletID
}

func (e *Employee) Name() string {
	return e.name
}

func (e *Employee) Role() Role {
	return e.role
}

func (e *Employee) DeletedAt() *time.Time {
	return e.deletedAt
}

func (e *Employee) IsDeleted() bool {
	return e.deletedAt != nil
}

// Delete tombstones the employee. Deleting twice keeps the first timestamp.
func (e *Employee) Delete(now time.Time) {
	if e.deletedAt == nil {
		e.deletedAt = &now
	}
}

func (e *Employee) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Employee) setOutlet(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("outlet", err)
	}
	e.outletID = id
	return nil
}

func (e *Employee) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	e.name = name
	return nil
}

func (e *Employee) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	e.role = role
	return nil
}
