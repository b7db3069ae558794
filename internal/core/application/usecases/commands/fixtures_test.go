package commands_test

import (
	"testing"
	"time"

	"laundry/internal/core/domain/model/employee"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/outlet"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type fixture struct {
	outlet *outlet.Outlet
	driver *employee.Employee
	worker *employee.Employee
	admin  *employee.Employee
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	loc, err := kernel.NewGeoPoint(-7.7645, 110.3827)
	require.NoError(t, err)
	o, err := outlet.NewOutlet(
		kernel.NewUUID(),
		"Gejayan",
		loc,
		decimal.NewFromInt(10),
		outlet.FeeSchedule{BaseFee: decimal.NewFromInt(5000), PerKm: decimal.NewFromInt(2000)},
		0,
	)
	require.NoError(t, err)

	return fixture{
		outlet: o,
		driver: newEmployee(t, o.ID(), employee.Driver),
		worker: newEmployee(t, o.ID(), employee.Worker),
		admin:  newEmployee(t, o.ID(), employee.OutletAdmin),
	}
}

func newEmployee(t *testing.T, outletID kernel.UUID, role employee.Role) *employee.Employee {
	t.Helper()
	e, err := employee.NewEmployee(kernel.NewUUID(), outletID, "Sari "+role.String(), role)
	require.NoError(t, err)
	return e
}

func newAddress(t *testing.T) order.Address {
	t.Helper()
	loc, err := kernel.NewGeoPoint(-7.7915, 110.3715)
	require.NoError(t, err)
	a, err := order.NewAddress("Jl. Kaliurang 12", "Depok", "Sleman", "DIY", "55281", loc)
	require.NoError(t, err)
	return a
}

func newItems(t *testing.T) []order.Item {
	t.Helper()
	shirts, err := order.NewItem("shirt", 4, decimal.NewFromInt(3500), decimal.RequireFromString("1.2"))
	require.NoError(t, err)
	trousers, err := order.NewItem("trousers", 2, decimal.NewFromInt(5000), decimal.RequireFromString("1.0"))
	require.NoError(t, err)
	return []order.Item{shirts, trousers}
}

func (f fixture) pickupOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), f.outlet.ID(), newAddress(t), newItems(t), order.Schedule{}, t0)
	require.NoError(t, err)
	require.NoError(t, o.RequestPickup(t0))
	o.PullEvents()
	return o
}

func (f fixture) atOutletOrder(t *testing.T) *order.Order {
	t.Helper()
	o := f.pickupOrder(t)
	jobID := o.JobByKind(order.Pickup).ID()
	require.NoError(t, o.ClaimJob(jobID, f.driver.ID(), t0))
	require.NoError(t, o.ArriveAtPickup(jobID, f.driver.ID(), t0))
	require.NoError(t, o.StartJob(jobID, f.driver.ID(), t0))
	require.NoError(t, o.CompleteJob(jobID, f.driver.ID(), []string{"https://cdn/p.jpg"}, "", nil, t0))
	o.PullEvents()
	return o
}

func (f fixture) runStation(t *testing.T, o *order.Order, kind order.StageKind, pricing *order.Pricing) {
	t.Helper()
	s := stage(t, o, kind)
	require.NoError(t, o.StartStage(s.ID(), f.worker.ID(), t0))
	require.NoError(t, o.CompleteStage(s.ID(), f.worker.ID(), "", pricing, t0))
	o.PullEvents()
}

func (f fixture) waitingPaymentOrder(t *testing.T) *order.Order {
	t.Helper()
	o := f.atOutletOrder(t)
	f.runStation(t, o, order.Washing, nil)
	f.runStation(t, o, order.Ironing, nil)
	f.runStation(t, o, order.Packing, &order.Pricing{
		CurrencyScale: 0,
		Quote: order.DeliveryQuote{
			DistanceKm:          decimal.RequireFromString("3.00"),
			Fee:                 decimal.NewFromInt(11000),
			WithinServiceRadius: true,
		},
	})
	return o
}

func (f fixture) deliveredOrder(t *testing.T, deliveredAt time.Time) *order.Order {
	t.Helper()
	o := f.waitingPaymentOrder(t)
	require.NoError(t, o.ConfirmPayment(t0, t0))
	jobID := o.JobByKind(order.Delivery).ID()
	require.NoError(t, o.ClaimJob(jobID, f.driver.ID(), t0))
	require.NoError(t, o.StartJob(jobID, f.driver.ID(), t0))
	require.NoError(t, o.CompleteJob(jobID, f.driver.ID(), []string{"https://cdn/d.jpg"}, "", nil, deliveredAt))
	o.PullEvents()
	return o
}

func stage(t *testing.T, o *order.Order, kind order.StageKind) *order.WorkStage {
	t.Helper()
	s, err := o.StageByKind(kind)
	require.NoError(t, err)
	return s
}
