package errs

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition = errors.New("invalid transition")
	ErrAlreadyClaimed    = errors.New("already claimed")
	ErrNotOwner          = errors.New("not owner")
	ErrStageFrozen       = errors.New("stage frozen")
	ErrAlreadyProcessed  = errors.New("already processed")
	ErrForbidden         = errors.New("forbidden")
)

// InvalidTransitionError reports an action that the current state does not allow.
// The state is left unchanged.
type InvalidTransitionError struct {
	Entity string
	From   string
	Action string
}

func NewInvalidTransitionError(entity, from, action string) *InvalidTransitionError {
	return &InvalidTransitionError{Entity: entity, From: from, Action: action}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s cannot %s from %s", ErrInvalidTransition, e.Entity, e.Action, e.From)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// AlreadyClaimedError is returned to every driver that lost the race for a job.
type AlreadyClaimedError struct {
	JobID any
}

func NewAlreadyClaimedError(jobID any) *AlreadyClaimedError {
	return &AlreadyClaimedError{JobID: jobID}
}

func (e *AlreadyClaimedError) Error() string {
	return fmt.Sprintf("%s: job %s", ErrAlreadyClaimed, e.JobID)
}

func (e *AlreadyClaimedError) Unwrap() error {
	return ErrAlreadyClaimed
}

// NotOwnerError reports a caller acting on a job or stage assigned to someone else.
type NotOwnerError struct {
	Entity  string
	ID      any
	ActorID any
}

func NewNotOwnerError(entity string, id, actorID any) *NotOwnerError {
	return &NotOwnerError{Entity: entity, ID: id, ActorID: actorID}
}

func (e *NotOwnerError) Error() string {
	return fmt.Sprintf("%s: %s is not assigned to %s", ErrNotOwner, describe(e.Entity, e.ID), e.ActorID)
}

func (e *NotOwnerError) Unwrap() error {
	return ErrNotOwner
}

// StageFrozenError reports a stage blocked by a pending bypass request.
type StageFrozenError struct {
	StageID any
}

func NewStageFrozenError(stageID any) *StageFrozenError {
	return &StageFrozenError{StageID: stageID}
}

func (e *StageFrozenError) Error() string {
	return fmt.Sprintf("%s: stage %s has a pending bypass request", ErrStageFrozen, e.StageID)
}

func (e *StageFrozenError) Unwrap() error {
	return ErrStageFrozen
}

// AlreadyProcessedError reports a resolution attempt on a bypass request that is no longer pending.
type AlreadyProcessedError struct {
	RequestID any
	Status    string
}

func NewAlreadyProcessedError(requestID any, status string) *AlreadyProcessedError {
	return &AlreadyProcessedError{RequestID: requestID, Status: status}
}

func (e *AlreadyProcessedError) Error() string {
	return fmt.Sprintf("%s: bypass request %s is %s", ErrAlreadyProcessed, e.RequestID, e.Status)
}

func (e *AlreadyProcessedError) Unwrap() error {
	return ErrAlreadyProcessed
}

// ForbiddenError reports a caller without the capability required for an outlet.
type ForbiddenError struct {
	ActorID    any
	Capability string
	Cause      error
}

func NewForbiddenError(actorID any, capability string) *ForbiddenError {
	return &ForbiddenError{ActorID: actorID, Capability: capability}
}

func NewForbiddenErrorWithCause(actorID any, capability string, cause error) *ForbiddenError {
	return &ForbiddenError{ActorID: actorID, Capability: capability, Cause: cause}
}

func (e *ForbiddenError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s lacks %s (cause: %v)", ErrForbidden, e.ActorID, e.Capability, e.Cause)
	}
	return fmt.Sprintf("%s: %s lacks %s", ErrForbidden, e.ActorID, e.Capability)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

func describe(entity string, id any) string {
	if entity == "" {
		return fmt.Sprint(id)
	}
	return fmt.Sprintf("%s %s", entity, id)
}
