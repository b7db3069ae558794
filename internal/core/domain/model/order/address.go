package order

import (
	"errors"
	"strings"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError("address must be created via NewAddress")

// Address is the customer address snapshot taken at intake. It never follows later
// edits to the customer's profile, so the delivery fee always prices the same pair
// of points.
type Address struct { //nolint:recvcheck //using for validation
	line       string
	district   string
	city       string
	province   string
	postalCode string
	location   kernel.GeoPoint
	guard      guard.ConstructorGuard
}

// NewAddress requires the street line, the city and a valid location.
func NewAddress(line, district, city, province, postalCode string, location kernel.GeoPoint) (Address, error) {
	a := Address{
		district:   strings.TrimSpace(district),
		province:   strings.TrimSpace(province),
		postalCode: strings.TrimSpace(postalCode),
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setLine(line),
		a.setCity(city),
		a.setLocation(location),
	); err != nil {
		return Address{}, err
	}

	return a, nil
}

func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a Address) Line() string { return a.line }
func (a Address) District() string { return a.district }
func (a Address) City() string { return a.city }
func (a Address) Province() string { return a.province }
func (a Address) PostalCode() string { return a.postalCode }
func (a Address) Location() kernel.GeoPoint { return a.location }

func (a *Address) setLine(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return errs.NewValueIsRequiredError("address line")
	}
	a.line = line
	return nil
}

func (a *Address) setCity(city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}
	a.city = city
	return nil
}

func (a *Address) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	a.location = location
	return nil
}
