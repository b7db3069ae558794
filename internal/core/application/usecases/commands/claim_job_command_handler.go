package commands

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/employee"
	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"
)

// ClaimJobCommandHandler runs the claim protocol. The order row is locked before
// the job is read, so of any number of concurrent claimers exactly one sees the
// job unclaimed; every other caller gets an AlreadyClaimedError.
//
// Example:
//
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrAlreadyClaimed):
//	    // another driver won the race
//	case errors.Is(err, errs.ErrForbidden):
//	    // not a driver of this outlet
//	}
type ClaimJobCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	authorizer services.Authorizer
}

func NewClaimJobCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) ClaimJobCommandHandler {
	return ClaimJobCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		authorizer: services.NewAuthorizer(),
	}
}

func (h ClaimJobCommandHandler) Handle(ctx context.Context, command ClaimJobCommand) error {
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

	if err = h.authorizer.Require(driver, employee.ClaimJob, o.OutletID()); err != nil {
		return err
	}

	if err = o.ClaimJob(command.JobID(), driver.ID(), time.Now().UTC()); err != nil {
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
