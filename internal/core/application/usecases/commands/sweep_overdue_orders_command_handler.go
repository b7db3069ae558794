package commands

import (
	"context"
	"log/slog"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/ports"
)

// SweepOverdueOrdersCommandHandler completes delivered orders that stayed
// undisputed for the idle window. Each candidate is re-read under lock in its own
// transaction; a failure on one order is logged and the sweep moves on.
type SweepOverdueOrdersCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

func NewSweepOverdueOrdersCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) SweepOverdueOrdersCommandHandler {
	return SweepOverdueOrdersCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     slog.Default().With("component", "sweep"),
	}
}

// Handle returns the ids of the orders completed by this pass.
func (h SweepOverdueOrdersCommandHandler) Handle(ctx context.Context, command SweepOverdueOrdersCommand) ([]kernel.UUID, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	candidates, err := h.uowFactory.Create().OrderRepository().ListOverdueDelivered(ctx, ports.OverdueDeliveredSpec{
		Cutoff: command.Now().Add(-command.Idle()),
		Limit:  command.Limit(),
	})
	if err != nil {
		return nil, err
	}

	completed := make([]kernel.UUID, 0, len(candidates))
	for _, id := range candidates {
		if ctx.Err() != nil {
			return completed, ctx.Err()
		}

		done, completeErr := h.complete(ctx, id, command)
		if completeErr != nil {
			h.logger.WarnContext(ctx, "failed to auto-complete order",
				"order_id", id.String(),
				"error", completeErr)
			continue
		}
		if done {
			completed = append(completed, id)
		}
	}

	if len(completed) > 0 {
		h.logger.InfoContext(ctx, "auto-completed orders", "count", len(completed))
	}
	return completed, nil
}

func (h SweepOverdueOrdersCommandHandler) complete(
	ctx context.Context,
	id kernel.UUID,
	command SweepOverdueOrdersCommand,
) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, id)
	if err != nil {
		return false, err
	}

	done, err := o.AutoComplete(command.Now(), command.Idle())
	if err != nil || !done {
		return false, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	publishEvents(ctx, h.notifier, o.PullEvents())
	return true, nil
}
