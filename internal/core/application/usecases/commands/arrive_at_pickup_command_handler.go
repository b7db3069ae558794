package commands

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/employee"
	"laundry/internal/core/domain/services"
)

// ArriveAtPickupCommandHandler moves the order to PICKUP_ARRIVED and stamps the
// actual pickup time.
type ArriveAtPickupCommandHandler struct {
	uowFactory UoWFactory
	authorizer services.Authorizer
}

func NewArriveAtPickupCommandHandler(uowFactory UoWFactory) ArriveAtPickupCommandHandler {
	return ArriveAtPickupCommandHandler{uowFactory: uowFactory, authorizer: services.NewAuthorizer()}
}

func (h ArriveAtPickupCommandHandler) Handle(ctx context.Context, command ArriveAtPickupCommand) error {
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

	if err = o.ArriveAtPickup(command.JobID(), driver.ID(), time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
