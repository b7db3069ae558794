package http

import (
	"context"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockWorkflow struct {
	mock.Mock
}

func (m *MockWorkflow) CreatePickupRequest(ctx context.Context, cmd commands.CreatePickupRequestCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

func (m *MockWorkflow) ClaimJob(ctx context.Context, cmd commands.ClaimJobCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

func (m *MockWorkflow) ArriveAtPickup(ctx context.Context, cmd commands.ArriveAtPickupCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

func (m *MockWorkflow) StartJob(ctx context.Context, cmd commands.StartJobCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

func (m *MockWorkflow) CompleteJob(ctx context.Context, cmd commands.CompleteJobCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

func (m *MockWorkflow) UpdateItems(ctx context.Context, cmd commands.UpdateItemsCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

func (m *MockWorkflow) StartStage(ctx context.Context, cmd commands.StartStageCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

func (m *MockWorkflow) CompleteStage(ctx context.Context, cmd commands.CompleteStageCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

func (m *MockWorkflow) RequestBypass(ctx context.Context, cmd commands.RequestBypassCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

func (m *MockWorkflow) ResolveBypass(ctx context.Context, cmd commands.ResolveBypassCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

func (m *MockWorkflow) InitiatePayment(ctx context.Context, cmd commands.InitiatePaymentCommand) (ports.Charge, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(ports.Charge), args.Error(1)
}

func (m *MockWorkflow) OnPaymentConfirmed(ctx context.Context, cmd commands.ConfirmPaymentCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

func (m *MockWorkflow) OpenDispute(ctx context.Context, cmd commands.OpenDisputeCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockJobLister struct {
	mock.Mock
}

func (m *MockJobLister) Handle(ctx context.Context, query queries.ListAvailableJobsQuery) ([]queries.AvailableJob, error) {
	args := m.Called(ctx, query)
	jobs, _ := args.Get(0).([]queries.AvailableJob)
	return jobs, args.Error(1)
}

type MockProgressReader struct {
	mock.Mock
}

func (m *MockProgressReader) Handle(ctx context.Context, query queries.GetOrderProgressQuery) (queries.OrderProgress, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.OrderProgress), args.Error(1)
}
