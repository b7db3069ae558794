package commands

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/employee"
	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"
)

// ResolveBypassCommandHandler lets an outlet admin of the order's outlet approve or
// reject a pending request. A request that is no longer pending reports
// AlreadyProcessed.
type ResolveBypassCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	authorizer services.Authorizer
}

func NewResolveBypassCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) ResolveBypassCommandHandler {
	return ResolveBypassCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		authorizer: services.NewAuthorizer(),
	}
}

func (h ResolveBypassCommandHandler) Handle(ctx context.Context, command ResolveBypassCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	admin, err := uow.EmployeeRepository().Get(ctx, command.AdminID())
	if err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetByBypassIDForUpdate(ctx, command.RequestID())
	if err != nil {
		return err
	}

	if err = h.authorizer.Require(admin, employee.ResolveBypass, o.OutletID()); err != nil {
		return err
	}

	err = o.ResolveBypass(command.RequestID(), admin.ID(), command.Approve(), command.Note(), time.Now().UTC())
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishEvents(ctx, h.notifier, o.PullEvents())
	return nil
}
