package commands

import (
	"context"

	"laundry/internal/core/domain/model/employee"
	"laundry/internal/core/domain/services"
)

type UpdateItemsCommandHandler struct {
	uowFactory UoWFactory
	authorizer services.Authorizer
}

func NewUpdateItemsCommandHandler(uowFactory UoWFactory) UpdateItemsCommandHandler {
	return UpdateItemsCommandHandler{
		uowFactory: uowFactory,
		authorizer: services.NewAuthorizer(),
	}
}

func (h UpdateItemsCommandHandler) Handle(ctx context.Context, command UpdateItemsCommand) error {
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

	if err = h.authorizer.Require(actor, employee.ManageItems, o.OutletID()); err != nil {
		return err
	}

	if err = o.ReplaceItems(command.Items()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
