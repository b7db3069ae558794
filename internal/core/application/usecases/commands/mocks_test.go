package commands_test

import (
	"context"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/domain/model/employee"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/outlet"
	"laundry/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return m.order(m.Called(ctx, id))
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return m.order(m.Called(ctx, id))
}

func (m *MockOrderRepository) GetByJobIDForUpdate(ctx context.Context, jobID kernel.UUID) (*order.Order, error) {
	return m.order(m.Called(ctx, jobID))
}

func (m *MockOrderRepository) GetByStageIDForUpdate(ctx context.Context, stageID kernel.UUID) (*order.Order, error) {
	return m.order(m.Called(ctx, stageID))
}

func (m *MockOrderRepository) GetByBypassIDForUpdate(ctx context.Context, requestID kernel.UUID) (*order.Order, error) {
	return m.order(m.Called(ctx, requestID))
}

func (m *MockOrderRepository) ListOverdueDelivered(
	ctx context.Context,
	spec ports.OverdueDeliveredSpec,
) ([]kernel.UUID, error) {
	args := m.Called(ctx, spec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

func (m *MockOrderRepository) order(args mock.Arguments) (*order.Order, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockEmployeeRepository struct{ mock.Mock }

func (m *MockEmployeeRepository) Add(ctx context.Context, e *employee.Employee) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEmployeeRepository) Get(ctx context.Context, id kernel.UUID) (*employee.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*employee.Employee), args.Error(1)
}

type MockOutletRepository struct{ mock.Mock }

func (m *MockOutletRepository) Add(ctx context.Context, o *outlet.Outlet) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOutletRepository) Get(ctx context.Context, id kernel.UUID) (*outlet.Outlet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*outlet.Outlet), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) EmployeeRepository() ports.EmployeeRepository {
	args := m.Called()
	return args.Get(0).(ports.EmployeeRepository)
}

func (m *MockUoW) OutletRepository() ports.OutletRepository {
	args := m.Called()
	return args.Get(0).(ports.OutletRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Publish(ctx context.Context, events ...order.Event) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) CreateCharge(ctx context.Context, req ports.ChargeRequest) (ports.Charge, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(ports.Charge), args.Error(1)
}

// eventTypes matches a Publish call carrying exactly the given event types.
func eventTypes(types ...order.EventType) any {
	return mock.MatchedBy(func(events []order.Event) bool {
		if len(events) != len(types) {
			return false
		}
		for i, e := range events {
			if e.Type != types[i] {
				return false
			}
		}
		return true
	})
}
