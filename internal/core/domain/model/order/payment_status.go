package order

import (
	"fmt"

	"laundry/internal/pkg/errs"
)

// PaymentStatus tracks the customer's payment independently of the fulfillment status.
type PaymentStatus int

const (
	PaymentUnknown PaymentStatus = iota
	Unpaid
	PaymentWaiting
	Paid
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnknown: "UNKNOWN",
		Unpaid:         "UNPAID",
		PaymentWaiting: "WAITING",
		Paid:           "PAID",
	}
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	for status, name := range getPaymentStatusStrings() {
		if status != PaymentUnknown && name == s {
			return status, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause(
		"payment status is invalid", fmt.Errorf("%q is not a valid payment status", s))
}

func (s PaymentStatus) Validate() error {
	if s <= PaymentUnknown || s > Paid {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment status is invalid", fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}
