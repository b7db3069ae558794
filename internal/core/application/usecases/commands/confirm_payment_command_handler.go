package commands

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"
)

// ConfirmPaymentCommandHandler applies a payment webhook. A settled payment moves
// the order to READY_FOR_DELIVERY and opens its delivery job; notifications for
// an order that is already paid change nothing.
type ConfirmPaymentCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
}

func NewConfirmPaymentCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

func (h ConfirmPaymentCommandHandler) Handle(ctx context.Context, command ConfirmPaymentCommand) error {
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

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if o.PaymentStatus() == order.Paid {
		return nil
	}

	if command.Paid() {
		err = o.ConfirmPayment(command.PaidAt(), time.Now().UTC())
	} else {
		err = o.MarkPaymentWaiting("")
	}
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
