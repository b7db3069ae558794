// Package workflow is the single entry point the transports use to drive an order
// through intake, washing, payment and delivery. It runs each command handler and
// retries the ones that fail with a transient storage error.
package workflow

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
)

// Config bounds the retry policy and the idle sweep.
type Config struct {
	// MaxRetries is the number of extra attempts after a transient failure.
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration

	IdleWindow time.Duration
	SweepBatch int
}

func DefaultConfig() Config {
	return Config{
		MaxRetries:      3,
		InitialInterval: 50 * time.Millisecond,
		MaxInterval:     time.Second,
		IdleWindow:      commands.DefaultIdleWindow,
		SweepBatch:      500,
	}
}

// Orchestrator routes workflow operations to their command handlers.
//
// Example:
//
//	o, err := workflow.NewOrchestrator(uowFactory, notifier, gateway, workflow.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	cmd, err := commands.NewClaimJobCommand(jobID, driverID)
//	if err != nil {
//	    return err
//	}
//	err = o.ClaimJob(ctx, cmd)
type Orchestrator struct {
	cfg    Config
	logger *slog.Logger

	createPickup    commands.CreatePickupRequestCommandHandler
	claimJob        commands.ClaimJobCommandHandler
	arriveAtPickup  commands.ArriveAtPickupCommandHandler
	startJob        commands.StartJobCommandHandler
	completeJob     commands.CompleteJobCommandHandler
	updateItems     commands.UpdateItemsCommandHandler
	startStage      commands.StartStageCommandHandler
	completeStage   commands.CompleteStageCommandHandler
	requestBypass   commands.RequestBypassCommandHandler
	resolveBypass   commands.ResolveBypassCommandHandler
	initiatePayment commands.InitiatePaymentCommandHandler
	confirmPayment  commands.ConfirmPaymentCommandHandler
	openDispute     commands.OpenDisputeCommandHandler
	sweep           commands.SweepOverdueOrdersCommandHandler
}

func NewOrchestrator(
	uowFactory commands.UoWFactory,
	notifier ports.Notifier,
	gateway ports.PaymentGateway,
	cfg Config,
) (*Orchestrator, error) {
	if uowFactory == nil {
		return nil, errs.NewValueIsRequiredError("uowFactory")
	}
	if cfg.IdleWindow < 0 {
		return nil, errs.NewValueIsOutOfRangeError("idle window", cfg.IdleWindow, 0, "unbounded")
	}
	if cfg.SweepBatch < 0 {
		return nil, errs.NewValueIsOutOfRangeError("sweep batch", cfg.SweepBatch, 0, "unbounded")
	}

	initiatePayment, err := commands.NewInitiatePaymentCommandHandler(uowFactory, gateway)
	if err != nil {
		return nil, err
	}

	return &Orchestrator{
		cfg:             cfg,
		logger:          slog.Default().With("component", "workflow"),
		createPickup:    commands.NewCreatePickupRequestCommandHandler(uowFactory, notifier),
		claimJob:        commands.NewClaimJobCommandHandler(uowFactory, notifier),
		arriveAtPickup:  commands.NewArriveAtPickupCommandHandler(uowFactory),
		startJob:        commands.NewStartJobCommandHandler(uowFactory),
		completeJob:     commands.NewCompleteJobCommandHandler(uowFactory, notifier),
		updateItems:     commands.NewUpdateItemsCommandHandler(uowFactory),
		startStage:      commands.NewStartStageCommandHandler(uowFactory, notifier),
		completeStage:   commands.NewCompleteStageCommandHandler(uowFactory, notifier),
		requestBypass:   commands.NewRequestBypassCommandHandler(uowFactory, notifier),
		resolveBypass:   commands.NewResolveBypassCommandHandler(uowFactory, notifier),
		initiatePayment: initiatePayment,
		confirmPayment:  commands.NewConfirmPaymentCommandHandler(uowFactory, notifier),
		openDispute:     commands.NewOpenDisputeCommandHandler(uowFactory),
		sweep:           commands.NewSweepOverdueOrdersCommandHandler(uowFactory, notifier),
	}, nil
}

func (o *Orchestrator) CreatePickupRequest(ctx context.Context, cmd commands.CreatePickupRequestCommand) error {
	return o.retry(ctx, "create pickup request", func() error { return o.createPickup.Handle(ctx, cmd) })
}

func (o *Orchestrator) ClaimJob(ctx context.Context, cmd commands.ClaimJobCommand) error {
	return o.retry(ctx, "claim job", func() error { return o.claimJob.Handle(ctx, cmd) })
}

func (o *Orchestrator) ArriveAtPickup(ctx context.Context, cmd commands.ArriveAtPickupCommand) error {
	return o.retry(ctx, "arrive at pickup", func() error { return o.arriveAtPickup.Handle(ctx, cmd) })
}

func (o *Orchestrator) StartJob(ctx context.Context, cmd commands.StartJobCommand) error {
	return o.retry(ctx, "start job", func() error { return o.startJob.Handle(ctx, cmd) })
}

func (o *Orchestrator) CompleteJob(ctx context.Context, cmd commands.CompleteJobCommand) error {
	return o.retry(ctx, "complete job", func() error { return o.completeJob.Handle(ctx, cmd) })
}

func (o *Orchestrator) UpdateItems(ctx context.Context, cmd commands.UpdateItemsCommand) error {
	return o.retry(ctx, "update items", func() error { return o.updateItems.Handle(ctx, cmd) })
}

func (o *Orchestrator) StartStage(ctx context.Context, cmd commands.StartStageCommand) error {
	return o.retry(ctx, "start stage", func() error { return o.startStage.Handle(ctx, cmd) })
}

func (o *Orchestrator) CompleteStage(ctx context.Context, cmd commands.CompleteStageCommand) error {
	return o.retry(ctx, "complete stage", func() error { return o.completeStage.Handle(ctx, cmd) })
}

func (o *Orchestrator) RequestBypass(ctx context.Context, cmd commands.RequestBypassCommand) error {
	return o.retry(ctx, "request bypass", func() error { return o.requestBypass.Handle(ctx, cmd) })
}

// ResolveBypass approves or rejects, depending on how cmd was built.
func (o *Orchestrator) ResolveBypass(ctx context.Context, cmd commands.ResolveBypassCommand) error {
	return o.retry(ctx, "resolve bypass", func() error { return o.resolveBypass.Handle(ctx, cmd) })
}

// InitiatePayment runs once. A retry after the provider accepted the charge would
// open a second one.
func (o *Orchestrator) InitiatePayment(ctx context.Context, cmd commands.InitiatePaymentCommand) (ports.Charge, error) {
	return o.initiatePayment.Handle(ctx, cmd)
}

// OnPaymentConfirmed applies a provider callback. Repeated callbacks for a paid
// order succeed without changing it.
func (o *Orchestrator) OnPaymentConfirmed(ctx context.Context, cmd commands.ConfirmPaymentCommand) error {
	return o.retry(ctx, "confirm payment", func() error { return o.confirmPayment.Handle(ctx, cmd) })
}

func (o *Orchestrator) OpenDispute(ctx context.Context, cmd commands.OpenDisputeCommand) error {
	return o.retry(ctx, "open dispute", func() error { return o.openDispute.Handle(ctx, cmd) })
}

// SweepOverdueOrders completes delivered orders idle for the configured window
// and returns the ids it completed.
func (o *Orchestrator) SweepOverdueOrders(ctx context.Context, now time.Time) ([]kernel.UUID, error) {
	cmd, err := commands.NewSweepOverdueOrdersCommand(now, o.cfg.IdleWindow, o.cfg.SweepBatch)
	if err != nil {
		return nil, err
	}

	var completed []kernel.UUID
	err = o.retry(ctx, "sweep overdue orders", func() error {
		ids, sweepErr := o.sweep.Handle(ctx, cmd)
		if sweepErr != nil {
			return sweepErr
		}
		completed = ids
		return nil
	})
	return completed, err
}

// retry runs fn until it succeeds, fails with a non-transient error, the retry
// budget is spent or ctx is done. The last error is returned unwrapped.
func (o *Orchestrator) retry(ctx context.Context, operation string, fn func() error) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = o.cfg.InitialInterval
	policy.MaxInterval = o.cfg.MaxInterval
	policy.MaxElapsedTime = 0

	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		err := fn()
		if err == nil {
			return nil
		}
		if !errors.Is(err, errs.ErrTransient) {
			return backoff.Permanent(err)
		}

		o.logger.WarnContext(ctx, "transient failure",
			"operation", operation,
			"attempt", attempt,
			"error", err)
		return err
	}, backoff.WithContext(backoff.WithMaxRetries(policy, o.cfg.MaxRetries), ctx))
}
