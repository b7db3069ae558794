package commands

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/employee"
	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"
)

// StartStageCommandHandler starts a station once the previous one is completed or
// bypass-approved and nothing on the order is frozen.
type StartStageCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	authorizer services.Authorizer
}

func NewStartStageCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) StartStageCommandHandler {
	return StartStageCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		authorizer: services.NewAuthorizer(),
	}
}

func (h StartStageCommandHandler) Handle(ctx context.Context, command StartStageCommand) error {
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

	if err = o.StartStage(command.StageID(), worker.ID(), time.Now().UTC()); err != nil {
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
