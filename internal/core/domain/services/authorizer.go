package services

import (
	"fmt"

	"laundry/internal/core/domain/model/employee"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
)

// Authorizer performs the single capability check every workflow operation makes:
// the caller must be a live employee of the order's outlet whose role grants the
// capability.
type Authorizer struct{}

func NewAuthorizer() Authorizer {
	return Authorizer{}
}

// Require returns a ForbiddenError naming the capability when the check fails.
func (Authorizer) Require(e *employee.Employee, capability employee.Capability, outletID kernel.UUID) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if e.IsDeleted() {
		return errs.NewObjectNotFoundError("employee", e.ID().String())
	}
	if !e.OutletID().IsEqual(outletID) {
		return errs.NewForbiddenErrorWithCause(e.ID(), capability.String(),
			fmt.Errorf("employee belongs to outlet %s, order to %s", e.OutletID(), outletID))
	}
	if !e.Role().Grants(capability) {
		return errs.NewForbiddenErrorWithCause(e.ID(), capability.String(),
			fmt.Errorf("role %s lacks the capability", e.Role()))
	}
	return nil
}
