package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/domain/model/employee"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestConfirmPaymentCommandHandler_Handle(t *testing.T) {
	paidAt := t0.Add(time.Hour)

	t.Run("paid confirmation opens the delivery job", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture(t)
		o := f.waitingPaymentOrder(t)
		cmd, err := commands.NewConfirmPaymentCommand(o.ID(), true, paidAt)
		require.NoError(t, err)

		m := newHandlerMocks(t)
		m.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
		m.orders.On("Update", ctx, o).Return(nil).Once()
		m.uow.On("Commit", ctx).Return(nil).Once()
		m.notifier.On("Publish", ctx, eventTypes(order.EventPaymentConfirmed)).Return(nil).Once()

		err = commands.NewConfirmPaymentCommandHandler(m.factory, m.notifier).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, order.ReadyForDelivery, o.Status())
		assert.Equal(t, order.Paid, o.PaymentStatus())
		assert.Equal(t, paidAt, *o.PaidAt())
		job := o.JobByKind(order.Delivery)
		require.NotNil(t, job)
		assert.Equal(t, order.JobUnclaimed, job.Status())
		m.assert(t)
	})

	t.Run("repeat confirmation is a no-op", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture(t)
		o := f.waitingPaymentOrder(t)
		require.NoError(t, o.ConfirmPayment(paidAt, paidAt))
		o.PullEvents()
		deliveryJob := o.JobByKind(order.Delivery).ID()

		for _, paid := range []bool{true, false} {
			cmd, err := commands.NewConfirmPaymentCommand(o.ID(), paid, paidAt.Add(time.Hour))
			require.NoError(t, err)

			m := newHandlerMocks(t)
			m.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()

			err = commands.NewConfirmPaymentCommandHandler(m.factory, m.notifier).Handle(ctx, cmd)

			require.NoError(t, err)
			assert.Equal(t, order.Paid, o.PaymentStatus())
			assert.Equal(t, paidAt, *o.PaidAt())
			assert.Equal(t, deliveryJob, o.JobByKind(order.Delivery).ID())
			m.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			m.notifier.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
			m.assert(t)
		}
	})

	t.Run("unpaid notification marks the order waiting", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture(t)
		o := f.waitingPaymentOrder(t)
		cmd, err := commands.NewConfirmPaymentCommand(o.ID(), false, time.Time{})
		require.NoError(t, err)

		m := newHandlerMocks(t)
		m.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
		m.orders.On("Update", ctx, o).Return(nil).Once()
		m.uow.On("Commit", ctx).Return(nil).Once()

		err = commands.NewConfirmPaymentCommandHandler(m.factory, m.notifier).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, order.PaymentWaiting, o.PaymentStatus())
		assert.Equal(t, order.WaitingPayment, o.Status())
		m.assert(t)
	})

	t.Run("payment before packing is an invalid transition", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture(t)
		o := f.atOutletOrder(t)
		cmd, err := commands.NewConfirmPaymentCommand(o.ID(), true, paidAt)
		require.NoError(t, err)

		m := newHandlerMocks(t)
		m.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()

		err = commands.NewConfirmPaymentCommandHandler(m.factory, m.notifier).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Nil(t, o.JobByKind(order.Delivery))
		m.assert(t)
	})
}

func TestInitiatePaymentCommandHandler_Handle(t *testing.T) {
	withDeadline := mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	})

	t.Run("requires a gateway", func(t *testing.T) {
		_, err := commands.NewInitiatePaymentCommandHandler(new(MockUoWFactory), nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("requires the acting employee", func(t *testing.T) {
		_, err := commands.NewInitiatePaymentCommand(kernel.NewUUID(), kernel.UUID{}, "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("charges price plus fee and stores the reference", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture(t)
		o := f.waitingPaymentOrder(t)
		cmd, err := commands.NewInitiatePaymentCommand(o.ID(), f.admin.ID(), "customer@example.com")
		require.NoError(t, err)

		gateway := new(MockPaymentGateway)
		gateway.On("CreateCharge", withDeadline, mock.MatchedBy(func(req ports.ChargeRequest) bool {
			return req.OrderID.IsEqual(o.ID()) &&
				req.Amount.Equal(decimal.NewFromInt(35000)) &&
				req.PayerEmail == "customer@example.com"
		})).Return(ports.Charge{Reference: "pref-123", Status: "pending"}, nil).Once()

		m := newHandlerMocks(t)
		m.employees.On("Get", ctx, f.admin.ID()).Return(f.admin, nil).Once()
		m.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
		m.orders.On("Update", ctx, o).Return(nil).Once()
		m.uow.On("Commit", ctx).Return(nil).Once()

		handler, err := commands.NewInitiatePaymentCommandHandler(m.factory, gateway)
		require.NoError(t, err)
		charge, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, "pref-123", charge.Reference)
		assert.Equal(t, order.PaymentWaiting, o.PaymentStatus())
		assert.Equal(t, "pref-123", o.PaymentReference())
		gateway.AssertExpectations(t)
		m.assert(t)
	})

	t.Run("an open charge is returned instead of opening another", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture(t)
		o := f.waitingPaymentOrder(t)
		require.NoError(t, o.MarkPaymentWaiting("pref-first"))
		cmd, err := commands.NewInitiatePaymentCommand(o.ID(), f.admin.ID(), "")
		require.NoError(t, err)

		gateway := new(MockPaymentGateway)
		m := newHandlerMocks(t)
		m.employees.On("Get", ctx, f.admin.ID()).Return(f.admin, nil).Once()
		m.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()

		handler, err := commands.NewInitiatePaymentCommandHandler(m.factory, gateway)
		require.NoError(t, err)
		charge, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, "pref-first", charge.Reference)
		gateway.AssertNotCalled(t, "CreateCharge", mock.Anything, mock.Anything)
		m.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		m.assert(t)
	})

	t.Run("only an admin of the order's outlet may charge", func(t *testing.T) {
		f := newFixture(t)
		other := newFixture(t)
		actors := map[string]*employee.Employee{
			"driver of the outlet":  f.driver,
			"worker of the outlet":  f.worker,
			"admin of other outlet": other.admin,
		}

		for name, actor := range actors {
			t.Run(name, func(t *testing.T) {
				ctx := t.Context()
				o := f.waitingPaymentOrder(t)
				cmd, err := commands.NewInitiatePaymentCommand(o.ID(), actor.ID(), "")
				require.NoError(t, err)

				gateway := new(MockPaymentGateway)
				m := newHandlerMocks(t)
				m.employees.On("Get", ctx, actor.ID()).Return(actor, nil).Once()
				m.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()

				handler, err := commands.NewInitiatePaymentCommandHandler(m.factory, gateway)
				require.NoError(t, err)
				_, err = handler.Handle(ctx, cmd)

				require.ErrorIs(t, err, errs.ErrForbidden)
				assert.Equal(t, order.Unpaid, o.PaymentStatus())
				gateway.AssertNotCalled(t, "CreateCharge", mock.Anything, mock.Anything)
				m.uow.AssertNotCalled(t, "Commit", ctx)
				m.assert(t)
			})
		}
	})

	t.Run("gateway failure leaves the order untouched", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture(t)
		o := f.waitingPaymentOrder(t)
		cmd, err := commands.NewInitiatePaymentCommand(o.ID(), f.admin.ID(), "")
		require.NoError(t, err)

		gateway := new(MockPaymentGateway)
		gateway.On("CreateCharge", withDeadline, mock.Anything).Return(ports.Charge{}, errors.New("provider down")).Once()

		m := newHandlerMocks(t)
		m.employees.On("Get", ctx, f.admin.ID()).Return(f.admin, nil).Once()
		m.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()

		handler, err := commands.NewInitiatePaymentCommandHandler(m.factory, gateway)
		require.NoError(t, err)
		_, err = handler.Handle(ctx, cmd)

		require.ErrorContains(t, err, "provider down")
		assert.Equal(t, order.Unpaid, o.PaymentStatus())
		m.uow.AssertNotCalled(t, "Commit", ctx)
		m.assert(t)
	})

	t.Run("an unpriced order cannot be charged", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture(t)
		o := f.atOutletOrder(t)
		cmd, err := commands.NewInitiatePaymentCommand(o.ID(), f.admin.ID(), "")
		require.NoError(t, err)

		gateway := new(MockPaymentGateway)
		m := newHandlerMocks(t)
		m.employees.On("Get", ctx, f.admin.ID()).Return(f.admin, nil).Once()
		m.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()

		handler, err := commands.NewInitiatePaymentCommandHandler(m.factory, gateway)
		require.NoError(t, err)
		_, err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		gateway.AssertNotCalled(t, "CreateCharge", mock.Anything, mock.Anything)
		m.assert(t)
	})
}

func TestOpenDisputeCommandHandler_Handle(t *testing.T) {
	t.Run("outlet admin records the dispute", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture(t)
		o := f.deliveredOrder(t, t0)
		cmd, err := commands.NewOpenDisputeCommand(o.ID(), f.admin.ID())
		require.NoError(t, err)

		m := newHandlerMocks(t)
		m.employees.On("Get", ctx, f.admin.ID()).Return(f.admin, nil).Once()
		m.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
		m.orders.On("Update", ctx, o).Return(nil).Once()
		m.uow.On("Commit", ctx).Return(nil).Once()

		err = commands.NewOpenDisputeCommandHandler(m.factory).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.NotNil(t, o.DisputedAt())
		m.assert(t)
	})

	t.Run("foreign or unprivileged employees are forbidden", func(t *testing.T) {
		f := newFixture(t)
		other := newFixture(t)

		for _, actor := range []*employee.Employee{other.admin, other.driver, f.driver, f.worker} {
			t.Run(actor.Role().String(), func(t *testing.T) {
				ctx := t.Context()
				o := f.deliveredOrder(t, t0)
				cmd, err := commands.NewOpenDisputeCommand(o.ID(), actor.ID())
				require.NoError(t, err)

				m := newHandlerMocks(t)
				m.employees.On("Get", ctx, actor.ID()).Return(actor, nil).Once()
				m.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()

				err = commands.NewOpenDisputeCommandHandler(m.factory).Handle(ctx, cmd)

				require.ErrorIs(t, err, errs.ErrForbidden)
				assert.Nil(t, o.DisputedAt())
				m.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
				m.assert(t)
			})
		}
	})
}

func TestUpdateItemsCommandHandler_Handle(t *testing.T) {
	t.Run("admin corrects the lines before washing", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture(t)
		o := f.atOutletOrder(t)
		items := newItems(t)[:1]
		cmd, err := commands.NewUpdateItemsCommand(o.ID(), f.admin.ID(), items)
		require.NoError(t, err)

		m := newHandlerMocks(t)
		m.employees.On("Get", ctx, f.admin.ID()).Return(f.admin, nil).Once()
		m.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
		m.orders.On("Update", ctx, o).Return(nil).Once()
		m.uow.On("Commit", ctx).Return(nil).Once()

		err = commands.NewUpdateItemsCommandHandler(m.factory).Handle(ctx, cmd)

		require.NoError(t, err)
		require.Len(t, o.Items(), 1)
		assert.Equal(t, "1.2", o.TotalWeight().String())
		m.assert(t)
	})

	t.Run("items are frozen once washing starts", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture(t)
		o := f.atOutletOrder(t)
		require.NoError(t, o.StartStage(stage(t, o, order.Washing).ID(), f.worker.ID(), t0))
		cmd, err := commands.NewUpdateItemsCommand(o.ID(), f.worker.ID(), newItems(t)[:1])
		require.NoError(t, err)

		m := newHandlerMocks(t)
		m.employees.On("Get", ctx, f.worker.ID()).Return(f.worker, nil).Once()
		m.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()

		err = commands.NewUpdateItemsCommandHandler(m.factory).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Len(t, o.Items(), 2)
		m.assert(t)
	})
}
