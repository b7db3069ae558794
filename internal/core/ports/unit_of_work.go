// Package ports defines the contracts between the workflow core and its adapters:
// persistence, the notification sink and the payment provider.
package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork for each operation.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is one atomic transaction. Repositories obtained after Begin share it.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	EmployeeRepository() EmployeeRepository
	OutletRepository() OutletRepository
}
