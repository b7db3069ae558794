package order

import (
	"errors"
	"fmt"
	"strings"

	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrItemIsNotConstructed = errs.NewValueIsRequiredError("item must be created via NewItem")

// Item is one priced line of laundry on an order, e.g. "shirt x4 @ 3500".
type Item struct { //nolint:recvcheck //using for validation
	name      string
	quantity  int
	unitPrice decimal.Decimal
	weightKg  decimal.Decimal
	guard     guard.ConstructorGuard
}

// NewItem validates a single item line. weightKg is the weight of the whole line.
// Prices and weights may be zero but never negative.
func NewItem(name string, quantity int, unitPrice, weightKg decimal.Decimal) (Item, error) {
	i := Item{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		i.setName(name),
		i.setQuantity(quantity),
		i.setUnitPrice(unitPrice),
		i.setWeight(weightKg),
	); err != nil {
		return Item{}, err
	}

	return i, nil
}

func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) Name() string { return i.name }
func (i Item) Quantity() int { return i.quantity }
func (i Item) UnitPrice() decimal.Decimal { return i.unitPrice }
func (i Item) WeightKg() decimal.Decimal { return i.weightKg }

// LineTotal is quantity × unit price rounded half away from zero to scale decimal places.
func (i Item) LineTotal(scale int32) decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity))).Round(scale)
}

func (i *Item) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	i.name = name
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("unit price is invalid", fmt.Errorf("%s is negative", price))
	}
	i.unitPrice = price
	return nil
}

func (i *Item) setWeight(weight decimal.Decimal) error {
	if weight.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("weight is invalid", fmt.Errorf("%s is negative", weight))
	}
	i.weightKg = weight
	return nil
}

func validateItems(items []Item) error {
	errList := make([]error, 0, len(items))
	for _, item := range items {
		errList = append(errList, item.Validate())
	}
	return errors.Join(errList...)
}

func totalWeight(items []Item) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.weightKg)
	}
	return sum
}

func totalPrice(items []Item, scale int32) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.LineTotal(scale))
	}
	return sum
}
