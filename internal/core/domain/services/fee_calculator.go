package services

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/outlet"

	"github.com/shopspring/decimal"
)

// DistanceScale rounds distances to 10 metres before they are priced.
const DistanceScale = 2

// FeeCalculator is a pure domain service that prices a delivery from an outlet
// to a customer address.
//
// Business rules:
//   - distance is the haversine great-circle distance, rounded to DistanceScale
//   - fee = BaseFee + PerKm × max(0, distance), rounded half away from zero to
//     the outlet's currency scale
//   - an address beyond the service radius is flagged, never rejected
//
// The distance is rounded before it is multiplied so that the persisted
// distance and fee always agree, and identical inputs give identical output.
//
// Example:
//
//	quote, err := services.NewFeeCalculator().Quote(outlet, address.Location())
//	// quote.Fee == 11000 for a 3.00 km trip at 5000 + 2000/km
type FeeCalculator struct{}

func NewFeeCalculator() FeeCalculator {
	return FeeCalculator{}
}

// Quote prices the trip from the outlet to dest.
func (FeeCalculator) Quote(o *outlet.Outlet, dest kernel.GeoPoint) (order.DeliveryQuote, error) {
	if err := o.Validate(); err != nil {
		return order.DeliveryQuote{}, err
	}

	km, err := o.Location().DistanceKm(dest)
	if err != nil {
		return order.DeliveryQuote{}, err
	}

	distance := decimal.NewFromFloat(km).Round(DistanceScale)
	if distance.IsNegative() {
		distance = decimal.Zero
	}

	fees := o.Fees()
	fee := fees.BaseFee.Add(fees.PerKm.Mul(distance)).Round(o.CurrencyScale())

	return order.DeliveryQuote{
		DistanceKm:          distance,
		Fee:                 fee,
		WithinServiceRadius: distance.LessThanOrEqual(o.ServiceRadiusKm()),
	}, nil
}

// Pricing bundles the quote for the order's frozen address with the outlet's
// currency scale, ready for PACKING completion.
func (c FeeCalculator) Pricing(o *outlet.Outlet, ord *order.Order) (order.Pricing, error) {
	if err := errors.Join(o.Validate(), ord.Validate()); err != nil {
		return order.Pricing{}, err
	}

	quote, err := c.Quote(o, ord.Address().Location())
	if err != nil {
		return order.Pricing{}, err
	}

	return order.Pricing{CurrencyScale: o.CurrencyScale(), Quote: quote}, nil
}
