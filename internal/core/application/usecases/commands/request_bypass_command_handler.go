package commands

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/employee"
	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"
)

// RequestBypassCommandHandler files a bypass request and freezes the stage until
// an outlet admin resolves it.
type RequestBypassCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	authorizer services.Authorizer
}

func NewRequestBypassCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) RequestBypassCommandHandler {
	return RequestBypassCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		authorizer: services.NewAuthorizer(),
	}
}

func (h RequestBypassCommandHandler) Handle(ctx context.Context, command RequestBypassCommand) error {
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

	if err = h.authorizer.Require(worker, employee.RequestBypass, o.OutletID()); err != nil {
		return err
	}

	_, err = o.RequestBypass(command.RequestID(), command.StageID(), worker.ID(), command.Reason(), time.Now().UTC())
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
