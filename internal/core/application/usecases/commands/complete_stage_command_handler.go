package commands

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/employee"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"
)

// CompleteStageCommandHandler closes a station. When the station is PACKING and
// the order still has unset money fields, it prices the trip from the outlet to
// the order's frozen address so the aggregate can freeze price and fee in the
// same transaction.
type CompleteStageCommandHandler struct {
	uowFactory    UoWFactory
	notifier      ports.Notifier
	authorizer    services.Authorizer
	feeCalculator services.FeeCalculator
}

func NewCompleteStageCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) CompleteStageCommandHandler {
	return CompleteStageCommandHandler{
		uowFactory:    uowFactory,
		notifier:      notifier,
		authorizer:    services.NewAuthorizer(),
		feeCalculator: services.NewFeeCalculator(),
	}
}

func (h CompleteStageCommandHandler) Handle(ctx context.Context, command CompleteStageCommand) error {
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

	worker, err := uow.EmployeeRepository().Get(ctx, command.WorkerID())
	if err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetByStageIDForUpdate(ctx, command.StageID())
	if err != nil {
		return err
	}

	if err = h.authorizer.Require(worker, employee.OperateStage, o.OutletID()); err != nil {
		return err
	}

	stage, err := o.Stage(command.StageID())
	if err != nil {
		return err
	}

	var pricing *order.Pricing
	if stage.Kind() == order.Packing && o.NeedsPricing() {
		outlet, outletErr := uow.OutletRepository().Get(ctx, o.OutletID())
		if outletErr != nil {
			return outletErr
		}
		p, pricingErr := h.feeCalculator.Pricing(outlet, o)
		if pricingErr != nil {
			return pricingErr
		}
		pricing = &p
	}

	err = o.CompleteStage(command.StageID(), worker.ID(), command.Notes(), pricing, time.Now().UTC())
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
