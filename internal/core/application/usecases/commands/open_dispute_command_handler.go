package commands

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/employee"
	"laundry/internal/core/domain/services"
)

// OpenDisputeCommandHandler records a customer complaint, which keeps the idle
// sweep away from the order. Only an admin of the order's outlet may open one.
type OpenDisputeCommandHandler struct {
	uowFactory UoWFactory
	authorizer services.Authorizer
}

func NewOpenDisputeCommandHandler(uowFactory UoWFactory) OpenDisputeCommandHandler {
	return OpenDisputeCommandHandler{
		uowFactory: uowFactory,
		authorizer: services.NewAuthorizer(),
	}
}

func (h OpenDisputeCommandHandler) Handle(ctx context.Context, command OpenDisputeCommand) error {
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

	actor, err := uow.EmployeeRepository().Get(ctx, command.ActorID())
	if err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if err = h.authorizer.Require(actor, employee.OpenDispute, o.OutletID()); err != nil {
		return err
	}

	if err = o.OpenDispute(time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
