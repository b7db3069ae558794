package commands

import (
	"errors"
	"strings"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrInitiatePaymentCommandIsNotConstructed = errors.New(
	"InitiatePaymentCommand must be created via NewInitiatePaymentCommand constructor",
)

type InitiatePaymentCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	actorID    kernel.UUID
	payerEmail string

	guard guard.ConstructorGuard
}

func NewInitiatePaymentCommand(orderID, actorID kernel.UUID, payerEmail string) (InitiatePaymentCommand, error) {
	if err := errors.Join(orderID.Validate(), actorID.Validate()); err != nil {
		return InitiatePaymentCommand{}, err
	}

	return InitiatePaymentCommand{
		orderID:    orderID,
		actorID:    actorID,
		payerEmail: strings.TrimSpace(payerEmail),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c InitiatePaymentCommand) Validate() error {
	return c.guard.Validate(ErrInitiatePaymentCommandIsNotConstructed)
}

func (c InitiatePaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c InitiatePaymentCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c InitiatePaymentCommand) PayerEmail() string {
	return c.payerEmail
}
