package employee

import (
	"fmt"

	"laundry/internal/pkg/errs"
)

// Role is the single capability role an employee holds at their outlet.
type Role int

const (
	RoleUnknown Role = iota
	Driver
	Worker
	OutletAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown: "UNKNOWN",
		Driver:      "DRIVER",
		Worker:      "WORKER",
		OutletAdmin: "OUTLET_ADMIN",
	}
}

func ParseRole(s string) (Role, error) {
	for role, name := range getRoleStrings() {
		if role != RoleUnknown && name == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%q is not a valid role", s))
}

func (r Role) Validate() error {
	if r <= RoleUnknown || r > OutletAdmin {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "UNKNOWN"
}

// Capability is a permission checked once per workflow operation.
type Capability int

const (
	CapabilityUnknown Capability = iota
	ClaimJob
	OperateJob
	OperateStage
	RequestBypass
	ResolveBypass
	ManageItems
	ManagePayment
	OpenDispute
)

func (c Capability) String() string {
	switch c {
	case ClaimJob:
		return "ClaimJob"
	case OperateJob:
		return "OperateJob"
	case OperateStage:
		return "OperateStage"
	case RequestBypass:
		return "RequestBypass"
	case ResolveBypass:
		return "ResolveBypass"
	case ManageItems:
		return "ManageItems"
	case ManagePayment:
		return "ManagePayment"
	case OpenDispute:
		return "OpenDispute"
	default:
		return "Unknown"
	}
}

func getRoleCapabilities() map[Role][]Capability {
	return map[Role][]Capability{
		Driver:      {ClaimJob, OperateJob},
		Worker:      {OperateStage, RequestBypass, ManageItems},
		OutletAdmin: {ResolveBypass, ManageItems, ManagePayment, OpenDispute},
	}
}

// Grants reports whether the role carries the capability.
func (r Role) Grants(c Capability) bool {
	for _, granted := range getRoleCapabilities()[r] {
		if granted == c {
			return true
		}
	}
	return false
}
