// Package order provides the Order aggregate of the laundry fulfillment workflow.
//
// The package includes:
//   - Order: the aggregate root holding status, money fields and the address snapshot
//   - Status and PaymentStatus: the order and payment state machines
//   - WorkStage: one record per station (WASHING, IRONING, PACKING)
//   - TransportJob: the pickup and delivery legs a driver can claim
//   - BypassRequest: a worker escalation that freezes a stage until an admin settles it
//   - Event: notifications raised by transitions and published after commit
//
// Key business rules:
//   - every transition follows Status; anything else is an InvalidTransitionError
//   - a job is claimed once; later claimers get AlreadyClaimedError
//   - a station starts only after the previous one completed or was bypassed
//   - price and delivery fee are frozen once, when PACKING completes
//   - a delivered order completes itself after the idle window unless disputed
//
// Children are reachable only through the Order, so locking the order row is
// enough to serialize every operation on it.
package order
