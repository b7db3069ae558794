// Package outlet models a laundry branch: where it is, how far it serves and
// what it charges for delivery.
package outlet

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MaxCurrencyScale matches the widest minor unit the order ledger stores.
const MaxCurrencyScale = 4

var ErrOutletIsNotConstructed = errors.New("Outlet must be created via NewOutlet constructor")

// FeeSchedule prices a delivery as BaseFee + PerKm × distance.
type FeeSchedule struct {
	BaseFee decimal.Decimal
	PerKm   decimal.Decimal
}

func (f FeeSchedule) validate() error {
	var errList []error
	if f.BaseFee.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("base fee is invalid",
			fmt.Errorf("%s is negative", f.BaseFee)))
	}
	if f.PerKm.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("per km fee is invalid",
			fmt.Errorf("%s is negative", f.PerKm)))
	}
	return errors.Join(errList...)
}

// Outlet is a physical branch. currencyScale is the number of minor-unit digits
// money is rounded to (0 for IDR, 2 for USD).
type Outlet struct {
	id              kernel.UUID
	name            string
	location        kernel.GeoPoint
	serviceRadiusKm decimal.Decimal
	fees            FeeSchedule
	currencyScale   int32
	deletedAt       *time.Time
	isConstructed   bool
}

func NewOutlet(
	id kernel.UUID,
	name string,
	location kernel.GeoPoint,
	serviceRadiusKm decimal.Decimal,
	fees FeeSchedule,
	currencyScale int32,
) (*Outlet, error) {
	o := &Outlet{isConstructed: true}

	if err := errors.Join(
		o.setID(id),
		o.setName(name),
		o.setLocation(location),
		o.setServiceRadius(serviceRadiusKm),
		o.setFees(fees),
		o.setCurrencyScale(currencyScale),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOutlet rebuilds an outlet row, tombstone included.
func RestoreOutlet(
	id kernel.UUID,
	name string,
	location kernel.GeoPoint,
	serviceRadiusKm decimal.Decimal,
	fees FeeSchedule,
	currencyScale int32,
	deletedAt *time.Time,
) (*Outlet, error) {
	o, err := NewOutlet(id, name, location, serviceRadiusKm, fees, currencyScale)
	if err != nil {
		return nil, err
	}
	o.deletedAt = deletedAt
	return o, nil
}

func (o *Outlet) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOutletIsNotConstructed
	}
	return nil
}

func (o *Outlet) ID() kernel.UUID {
	return o.id
}

func (o *Outlet) Name() string {
	return o.name
}

func (o *Outlet) Location() kernel.GeoPoint {
	return o.location
}

func (o *Outlet) ServiceRadiusKm() decimal.Decimal {
	return o.serviceRadiusKm
}

func (o *Outlet) Fees() FeeSchedule {
	return o.fees
}

func (o *Outlet) CurrencyScale() int32 {
	return o.currencyScale
}

func (o *Outlet) DeletedAt() *time.Time {
	return o.deletedAt
}

func (o *Outlet) IsDeleted() bool {
	return o.deletedAt != nil
}

func (o *Outlet) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Outlet) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("outlet name")
	}
	o.name = name
	return nil
}

func (o *Outlet) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	o.location = location
	return nil
}

func (o *Outlet) setServiceRadius(radius decimal.Decimal) error {
	if !radius.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("service radius is invalid",
			fmt.Errorf("%s is not greater than 0", radius))
	}
	o.serviceRadiusKm = radius
	return nil
}

func (o *Outlet) setFees(fees FeeSchedule) error {
	if err := fees.validate(); err != nil {
		return err
	}
	o.fees = fees
	return nil
}

func (o *Outlet) setCurrencyScale(scale int32) error {
	if scale < 0 || scale > MaxCurrencyScale {
		return errs.NewValueIsOutOfRangeError("currency scale", scale, 0, MaxCurrencyScale)
	}
	o.currencyScale = scale
	return nil
}
