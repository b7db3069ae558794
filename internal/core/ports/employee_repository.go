package ports

import (
	"context"

	"laundry/internal/core/domain/model/employee"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/outlet"
)

// EmployeeRepository reads staff accounts. Get never returns a tombstoned
// employee; it reports them as not found.
type EmployeeRepository interface {
	Add(ctx context.Context, e *employee.Employee) error
	Get(ctx context.Context, id kernel.UUID) (*employee.Employee, error)
}

// OutletRepository reads outlets. Get never returns a tombstoned outlet.
type OutletRepository interface {
	Add(ctx context.Context, o *outlet.Outlet) error
	Get(ctx context.Context, id kernel.UUID) (*outlet.Outlet, error)
}
