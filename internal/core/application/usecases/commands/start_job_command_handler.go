package commands

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/employee"
	"laundry/internal/core/domain/services"
)

// StartJobCommandHandler starts a pickup (driver returning with the laundry) or a
// delivery (driver leaving the outlet). Only the job's holder may start it.
type StartJobCommandHandler struct {
	uowFactory UoWFactory
	authorizer services.Authorizer
}

func NewStartJobCommandHandler(uowFactory UoWFactory) StartJobCommandHandler {
	return StartJobCommandHandler{uowFactory: uowFactory, authorizer: services.NewAuthorizer()}
}

func (h StartJobCommandHandler) Handle(ctx context.Context, command StartJobCommand) error {
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

	driver, err := uow.EmployeeRepository().Get(ctx, command.DriverID())
	if err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetByJobIDForUpdate(ctx, command.JobID())
	if err != nil {
		return err
	}

	if err = h.authorizer.Require(driver, employee.OperateJob, o.OutletID()); err != nil {
		return err
	}

	if err = o.StartJob(command.JobID(), driver.ID(), time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
