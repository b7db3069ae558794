package commands

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/employee"
	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"
)

// CompleteJobCommandHandler closes a job. A completed pickup weighs the order and
// moves it to ARRIVED_AT_OUTLET; a completed delivery marks it DELIVERED, which
// starts the idle window.
type CompleteJobCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	authorizer services.Authorizer
}

func NewCompleteJobCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) CompleteJobCommandHandler {
	return CompleteJobCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		authorizer: services.NewAuthorizer(),
	}
}

func (h CompleteJobCommandHandler) Handle(ctx context.Context, command CompleteJobCommand) error {
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

	err = o.CompleteJob(
		command.JobID(),
		driver.ID(),
		command.Photos(),
		command.Notes(),
		command.Items(),
		time.Now().UTC(),
	)
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
