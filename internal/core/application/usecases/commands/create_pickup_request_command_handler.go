package commands

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"
)

// CreatePickupRequestCommandHandler creates the order, its three stages and its
// pickup job in one transaction, leaving the order WAITING_FOR_PICKUP.
type CreatePickupRequestCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
}

func NewCreatePickupRequestCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) CreatePickupRequestCommandHandler {
	return CreatePickupRequestCommandHandler{uowFactory: uowFactory, notifier: notifier}
}

// Handle rejects tombstoned or unknown outlets with an ObjectNotFoundError.
func (h CreatePickupRequestCommandHandler) Handle(ctx context.Context, command CreatePickupRequestCommand) error {
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

	if _, err := uow.OutletRepository().Get(ctx, command.OutletID()); err != nil {
		return err
	}

	now := time.Now().UTC()
	o, err := order.NewOrder(
		command.OrderID(),
		command.CustomerID(),
		command.OutletID(),
		command.Address(),
		command.Items(),
		command.Schedule(),
		now,
	)
	if err != nil {
		return err
	}
	if err = o.RequestPickup(now); err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishEvents(ctx, h.notifier, o.PullEvents())
	return nil
}
