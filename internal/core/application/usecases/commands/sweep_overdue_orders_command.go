package commands

import (
	"errors"
	"time"

	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrSweepOverdueOrdersCommandIsNotConstructed = errors.New(
	"SweepOverdueOrdersCommand must be created via NewSweepOverdueOrdersCommand constructor",
)

// DefaultIdleWindow is how long a delivered, undisputed order waits before the
// sweep completes it.
const DefaultIdleWindow = 48 * time.Hour

type SweepOverdueOrdersCommand struct { //nolint:recvcheck //using for validation
	now   time.Time
	idle  time.Duration
	limit int

	guard guard.ConstructorGuard
}

// NewSweepOverdueOrdersCommand builds one sweep pass. A non-positive limit means
// the pass is unbounded.
func NewSweepOverdueOrdersCommand(now time.Time, idle time.Duration, limit int) (SweepOverdueOrdersCommand, error) {
	if now.IsZero() {
		return SweepOverdueOrdersCommand{}, errs.NewValueIsRequiredError("now")
	}
	if idle < 0 {
		return SweepOverdueOrdersCommand{}, errs.NewValueIsOutOfRangeError("idle", idle, 0, "unbounded")
	}
	if limit < 0 {
		limit = 0
	}

	return SweepOverdueOrdersCommand{
		now:   now,
		idle:  idle,
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c SweepOverdueOrdersCommand) Validate() error {
	return c.guard.Validate(ErrSweepOverdueOrdersCommandIsNotConstructed)
}

func (c SweepOverdueOrdersCommand) Now() time.Time {
	return c.now
}

func (c SweepOverdueOrdersCommand) Idle() time.Duration {
	return c.idle
}

func (c SweepOverdueOrdersCommand) Limit() int {
	return c.limit
}
