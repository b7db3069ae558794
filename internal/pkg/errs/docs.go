// Package errs provides the standardized error types of the laundry workflow engine.
//
// Validation errors:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError
//
// Lookup errors:
//   - ObjectNotFoundError
//
// Workflow errors, surfaced to the actor who may retry with other input:
//   - InvalidTransitionError: a state machine precondition is violated
//   - AlreadyClaimedError: another driver won the claim on a transport job
//   - NotOwnerError: the caller does not hold the job or stage
//   - StageFrozenError: a pending bypass request blocks the stage
//   - AlreadyProcessedError: a bypass request was already resolved
//   - ForbiddenError: the caller lacks the capability for the outlet
//
// Infrastructure errors:
//   - TransientError: a storage failure that is safe to retry
//
// Each type follows the same pattern: a sentinel error variable, a struct with
// the details, New... and New...WithCause constructors, Error() and an Unwrap()
// returning the sentinel so errors.Is works against the category.
package errs
