package order

import (
	"fmt"

	"laundry/internal/pkg/errs"
)

// Status is the authoritative lifecycle state of a laundry order.
//
// State transitions (each edge has exactly one trigger):
//
//	Created ──> WaitingForPickup ──> PickupEnRoute ──> PickupArrived ──> ReturningToOutlet
//	    ──> ArrivedAtOutlet ──> BeingWashed ──> BeingIroned ──> BeingPacked
//	    ──> WaitingPayment ──> ReadyForDelivery ──> DeliveryEnRoute ──> Delivered ──> Completed
//
// Any other move is rejected with an InvalidTransitionError.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	Created
	WaitingForPickup
	PickupEnRoute
	PickupArrived
	ReturningToOutlet
	ArrivedAtOutlet
	BeingWashed
	BeingIroned
	BeingPacked
	WaitingPayment
	ReadyForDelivery
	DeliveryEnRoute
	Delivered
	// Completed is terminal.
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:           "UNKNOWN",
		Created:           "CREATED",
		WaitingForPickup:  "WAITING_FOR_PICKUP",
		PickupEnRoute:     "PICKUP_EN_ROUTE",
		PickupArrived:     "PICKUP_ARRIVED",
		ReturningToOutlet: "RETURNING_TO_OUTLET",
		ArrivedAtOutlet:   "ARRIVED_AT_OUTLET",
		BeingWashed:       "BEING_WASHED",
		BeingIroned:       "BEING_IRONED",
		BeingPacked:       "BEING_PACKED",
		WaitingPayment:    "WAITING_PAYMENT",
		ReadyForDelivery:  "READY_FOR_DELIVERY",
		DeliveryEnRoute:   "DELIVERY_EN_ROUTE",
		Delivered:         "DELIVERED",
		Completed:         "COMPLETED",
	}
}

// ParseStatus maps a persisted status name back to its Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and any value outside the declared range.
func (s Status) Validate() error {
	if s <= Unknown || s > Completed {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsAfter reports whether s lies strictly later in the lifecycle than other.
func (s Status) IsAfter(other Status) bool {
	return s > other
}

// ItemsFrozen reports whether the item lines may no longer change.
// Lines lock once the order enters the station pipeline.
func (s Status) ItemsFrozen() bool {
	return s >= BeingWashed
}

func (s Status) advance(from, to Status, action string) (Status, error) {
	if s != from {
		return Unknown, errs.NewInvalidTransitionError("order", s.String(), action)
	}
	return to, nil
}

// RequestPickup moves a freshly created order onto the pickup board.
func (s Status) RequestPickup() (Status, error) {
	return s.advance(Created, WaitingForPickup, "request pickup")
}

// DispatchPickup records that a driver has claimed the pickup job.
func (s Status) DispatchPickup() (Status, error) {
	return s.advance(WaitingForPickup, PickupEnRoute, "claim pickup")
}

// ArriveAtCustomer records the driver reaching the pickup address.
func (s Status) ArriveAtCustomer() (Status, error) {
	return s.advance(PickupEnRoute, PickupArrived, "arrive at pickup")
}

// CollectItems records that the driver has the laundry and is heading back.
func (s Status) CollectItems() (Status, error) {
	return s.advance(PickupArrived, ReturningToOutlet, "start pickup")
}

// ArriveAtOutlet closes the pickup leg.
func (s Status) ArriveAtOutlet() (Status, error) {
	return s.advance(ReturningToOutlet, ArrivedAtOutlet, "complete pickup")
}

// StartWashing opens the station pipeline.
func (s Status) StartWashing() (Status, error) {
	return s.advance(ArrivedAtOutlet, BeingWashed, "start washing")
}

// FinishWashing hands the order to the ironing station.
func (s Status) FinishWashing() (Status, error) {
	return s.advance(BeingWashed, BeingIroned, "finish washing")
}

// FinishIroning hands the order to the packing station.
func (s Status) FinishIroning() (Status, error) {
	return s.advance(BeingIroned, BeingPacked, "finish ironing")
}

// FinishPacking puts the priced order up for payment.
func (s Status) FinishPacking() (Status, error) {
	return s.advance(BeingPacked, WaitingPayment, "finish packing")
}

// ConfirmPayment releases the order for delivery.
func (s Status) ConfirmPayment() (Status, error) {
	return s.advance(WaitingPayment, ReadyForDelivery, "confirm payment")
}

// DispatchDelivery records the delivery driver leaving the outlet.
func (s Status) DispatchDelivery() (Status, error) {
	return s.advance(ReadyForDelivery, DeliveryEnRoute, "start delivery")
}

// Deliver records the hand-over to the customer and starts the idle window.
func (s Status) Deliver() (Status, error) {
	return s.advance(DeliveryEnRoute, Delivered, "complete delivery")
}

// Complete closes a delivered order.
func (s Status) Complete() (Status, error) {
	return s.advance(Delivered, Completed, "complete")
}
