package order

import (
	"errors"
	"fmt"

	"laundry/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MaxCurrencyScale bounds the number of minor-unit digits an outlet may price in.
const MaxCurrencyScale = 4

// DeliveryQuote is the fee calculator's answer for one outlet/address pair.
type DeliveryQuote struct {
	DistanceKm          decimal.Decimal
	Fee                 decimal.Decimal
	WithinServiceRadius bool
}

// Pricing is what PACKING completion needs to freeze the order's money fields.
type Pricing struct {
	CurrencyScale int32
	Quote         DeliveryQuote
}

func (p Pricing) validate() error {
	var errList []error
	if p.CurrencyScale < 0 || p.CurrencyScale > MaxCurrencyScale {
		errList = append(errList, errs.NewValueIsOutOfRangeError("currency scale", p.CurrencyScale, 0, MaxCurrencyScale))
	}
	if p.Quote.Fee.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("delivery fee is invalid",
			fmt.Errorf("%s is negative", p.Quote.Fee)))
	}
	if p.Quote.DistanceKm.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("distance is invalid",
			fmt.Errorf("%s is negative", p.Quote.DistanceKm)))
	}
	return errors.Join(errList...)
}
