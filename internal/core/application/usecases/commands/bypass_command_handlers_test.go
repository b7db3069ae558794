package commands_test

import (
	"testing"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewRequestBypassCommand(t *testing.T) {
	t.Run("generates a request id", func(t *testing.T) {
		a, err := commands.NewRequestBypassCommand(kernel.NewUUID(), kernel.NewUUID(), " missing sock ")
		require.NoError(t, err)
		b, err := commands.NewRequestBypassCommand(kernel.NewUUID(), kernel.NewUUID(), "missing sock")
		require.NoError(t, err)

		assert.NoError(t, a.RequestID().Validate())
		assert.False(t, a.RequestID().IsEqual(b.RequestID()))
		assert.Equal(t, "missing sock", a.Reason())
	})

	t.Run("requires a reason", func(t *testing.T) {
		_, err := commands.NewRequestBypassCommand(kernel.NewUUID(), kernel.NewUUID(), "  ")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func newBypassedOrder(t *testing.T, f fixture) (*order.Order, *order.WorkStage, kernel.UUID) {
	t.Helper()
	o := f.atOutletOrder(t)
	washing := stage(t, o, order.Washing)
	require.NoError(t, o.StartStage(washing.ID(), f.worker.ID(), t0))
	requestID := kernel.NewUUID()
	_, err := o.RequestBypass(requestID, washing.ID(), f.worker.ID(), "count mismatch", t0)
	require.NoError(t, err)
	o.PullEvents()
	return o, washing, requestID
}

func TestRequestBypassCommandHandler_Handle(t *testing.T) {
	t.Run("files a pending request", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture(t)
		o := f.atOutletOrder(t)
		washing := stage(t, o, order.Washing)
		require.NoError(t, o.StartStage(washing.ID(), f.worker.ID(), t0))
		o.PullEvents()
		cmd, err := commands.NewRequestBypassCommand(washing.ID(), f.worker.ID(), "count mismatch")
		require.NoError(t, err)

		m := newHandlerMocks(t)
		m.employees.On("Get", ctx, f.worker.ID()).Return(f.worker, nil).Once()
		m.orders.On("GetByStageIDForUpdate", ctx, washing.ID()).Return(o, nil).Once()
		m.orders.On("Update", ctx, o).Return(nil).Once()
		m.uow.On("Commit", ctx).Return(nil).Once()
		m.notifier.On("Publish", ctx, eventTypes(order.EventBypassRequested)).Return(nil).Once()

		err = commands.NewRequestBypassCommandHandler(m.factory, m.notifier).Handle(ctx, cmd)

		require.NoError(t, err)
		request, err := o.Bypass(cmd.RequestID())
		require.NoError(t, err)
		assert.Equal(t, order.BypassPending, request.Status())
		m.assert(t)
	})

	t.Run("a second request on a frozen stage is rejected", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture(t)
		o, washing, _ := newBypassedOrder(t, f)
		cmd, err := commands.NewRequestBypassCommand(washing.ID(), f.worker.ID(), "again")
		require.NoError(t, err)

		m := newHandlerMocks(t)
		m.employees.On("Get", ctx, f.worker.ID()).Return(f.worker, nil).Once()
		m.orders.On("GetByStageIDForUpdate", ctx, washing.ID()).Return(o, nil).Once()

		err = commands.NewRequestBypassCommandHandler(m.factory, m.notifier).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrStageFrozen)
		assert.Len(t, o.Bypasses(), 1)
		m.assert(t)
	})
}

func TestResolveBypassCommandHandler_Handle(t *testing.T) {
	t.Run("approve unfreezes the stage", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture(t)
		o, washing, requestID := newBypassedOrder(t, f)
		cmd, err := commands.NewApproveBypassCommand(requestID, f.admin.ID(), "ok")
		require.NoError(t, err)

		m := newHandlerMocks(t)
		m.employees.On("Get", ctx, f.admin.ID()).Return(f.admin, nil).Once()
		m.orders.On("GetByBypassIDForUpdate", ctx, requestID).Return(o, nil).Once()
		m.orders.On("Update", ctx, o).Return(nil).Once()
		m.uow.On("Commit", ctx).Return(nil).Once()
		m.notifier.On("Publish", ctx, eventTypes(order.EventBypassResolved)).Return(nil).Once()

		err = commands.NewResolveBypassCommandHandler(m.factory, m.notifier).Handle(ctx, cmd)

		require.NoError(t, err)
		request, err := o.Bypass(requestID)
		require.NoError(t, err)
		assert.Equal(t, order.BypassApproved, request.Status())
		assert.Equal(t, f.admin.ID(), *request.ResolvedBy())
		assert.False(t, washing.IsCompleted())
		m.assert(t)
	})

	t.Run("resolving twice reports already processed", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture(t)
		o, _, requestID := newBypassedOrder(t, f)
		require.NoError(t, o.ResolveBypass(requestID, f.admin.ID(), false, "", t0))
		o.PullEvents()
		cmd, err := commands.NewApproveBypassCommand(requestID, f.admin.ID(), "")
		require.NoError(t, err)

		m := newHandlerMocks(t)
		m.employees.On("Get", ctx, f.admin.ID()).Return(f.admin, nil).Once()
		m.orders.On("GetByBypassIDForUpdate", ctx, requestID).Return(o, nil).Once()

		err = commands.NewResolveBypassCommandHandler(m.factory, m.notifier).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrAlreadyProcessed)
		m.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		m.assert(t)
	})

	t.Run("workers cannot resolve", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture(t)
		o, _, requestID := newBypassedOrder(t, f)
		cmd, err := commands.NewRejectBypassCommand(requestID, f.worker.ID(), "")
		require.NoError(t, err)

		m := newHandlerMocks(t)
		m.employees.On("Get", ctx, f.worker.ID()).Return(f.worker, nil).Once()
		m.orders.On("GetByBypassIDForUpdate", ctx, requestID).Return(o, nil).Once()

		err = commands.NewResolveBypassCommandHandler(m.factory, m.notifier).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrForbidden)
		request, err := o.Bypass(requestID)
		require.NoError(t, err)
		assert.True(t, request.IsPending())
		m.assert(t)
	})
}
