package ports

import (
	"context"

	"laundry/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// ChargeRequest asks the payment provider to open a charge for an order.
type ChargeRequest struct {
	OrderID     kernel.UUID
	Amount      decimal.Decimal
	Description string
	PayerEmail  string
}

// Charge is the provider's acknowledgement.
type Charge struct {
	Reference string
	Status    string
}

// PaymentGateway opens charges with the payment provider. Confirmation arrives
// separately through the provider's webhook.
type PaymentGateway interface {
	CreateCharge(ctx context.Context, req ChargeRequest) (Charge, error)
}
