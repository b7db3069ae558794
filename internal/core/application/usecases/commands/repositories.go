// Package commands contains the workflow operations that change order state.
// Every command follows the same shape: validate, open a unit of work, lock the
// order, check the caller's capability, apply the domain transition, persist,
// commit and publish the raised events.
package commands

import (
	"context"

	"laundry/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// StaffRepoFactory provides the employee and outlet repositories within a transaction.
	StaffRepoFactory interface {
		EmployeeRepository() ports.EmployeeRepository
		OutletRepository() ports.OutletRepository
	}

	// UoW is the transaction every workflow command runs in.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().GetByJobIDForUpdate(ctx, jobID)
	//   // ... apply the transition
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		StaffRepoFactory
	}

	// UoWFactory creates a new unit of work per command.
	UoWFactory interface {
		Create() UoW
	}
)
