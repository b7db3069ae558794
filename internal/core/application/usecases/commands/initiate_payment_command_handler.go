package commands

import (
	"context"
	"fmt"
	"time"

	"laundry/internal/core/domain/model/employee"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"
)

// GatewayTimeout bounds the provider call, which runs while the order row is locked.
const GatewayTimeout = 10 * time.Second

const pendingChargeStatus = "pending"

// InitiatePaymentCommandHandler opens a charge for the frozen price plus delivery
// fee and records the provider reference on the order. The charge is created while
// the order row is locked, so two concurrent requests cannot open two charges. An
// order that already has an open charge gets its stored reference back.
type InitiatePaymentCommandHandler struct {
	uowFactory UoWFactory
	gateway    ports.PaymentGateway
	authorizer services.Authorizer
	timeout    time.Duration
}

func NewInitiatePaymentCommandHandler(uowFactory UoWFactory, gateway ports.PaymentGateway) (InitiatePaymentCommandHandler, error) {
	if gateway == nil {
		return InitiatePaymentCommandHandler{}, errs.NewValueIsRequiredError("gateway")
	}

	return InitiatePaymentCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		authorizer: services.NewAuthorizer(),
		timeout:    GatewayTimeout,
	}, nil
}

func (h InitiatePaymentCommandHandler) Handle(ctx context.Context, command InitiatePaymentCommand) (ports.Charge, error) {
	if err := command.Validate(); err != nil {
		return ports.Charge{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ports.Charge{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	actor, err := uow.EmployeeRepository().Get(ctx, command.ActorID())
	if err != nil {
		return ports.Charge{}, err
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return ports.Charge{}, err
	}

	if err = h.authorizer.Require(actor, employee.ManagePayment, o.OutletID()); err != nil {
		return ports.Charge{}, err
	}

	if o.PaymentStatus() == order.PaymentWaiting && o.PaymentReference() != "" {
		return ports.Charge{Reference: o.PaymentReference(), Status: pendingChargeStatus}, nil
	}

	amount, err := o.AmountDue()
	if err != nil {
		return ports.Charge{}, err
	}

	chargeCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	charge, err := h.gateway.CreateCharge(chargeCtx, ports.ChargeRequest{
		OrderID:     o.ID(),
		Amount:      amount,
		Description: fmt.Sprintf("Laundry order %s", o.ID().String()),
		PayerEmail:  command.PayerEmail(),
	})
	if err != nil {
		return ports.Charge{}, fmt.Errorf("create charge: %w", err)
	}

	if err = o.MarkPaymentWaiting(charge.Reference); err != nil {
		return ports.Charge{}, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return ports.Charge{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ports.Charge{}, err
	}

	return charge, nil
}
