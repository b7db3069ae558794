package queries_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "laundry/internal/adapters/out/postgres"
	"laundry/internal/adapters/out/postgres/orderrepo"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var t0 = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type QueryHandlersTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	orderRepo *orderrepo.GormOrderRepository
	outletID  kernel.UUID
}

func (suite *QueryHandlersTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
	suite.orderRepo = orderrepo.NewGormOrderRepository(db)
}

func (suite *QueryHandlersTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *QueryHandlersTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error
	suite.Require().NoError(err)
	suite.outletID = kernel.NewUUID()
}

func (suite *QueryHandlersTestSuite) TestListAvailableJobs_EmptyDatabase_ReturnsEmptySlice() {
	query, err := queries.NewListAvailableJobsQuery(suite.outletID, nil, 0)
	suite.Require().NoError(err)

	jobs, err := queries.NewListAvailableJobsQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(jobs)
	suite.Empty(jobs)
}

func (suite *QueryHandlersTestSuite) TestListAvailableJobs_FiltersByOutletKindAndStatus() {
	ctx := context.Background()
	pickupAt := t0.Add(3 * time.Hour)
	waiting := suite.addOrder(suite.outletID, order.Schedule{PickupAt: &pickupAt}, t0)
	second := suite.addOrder(suite.outletID, order.Schedule{}, t0.Add(time.Minute))
	claimed := suite.addOrder(suite.outletID, order.Schedule{}, t0)
	jobID := claimed.JobByKind(order.Pickup).ID()
	suite.Require().NoError(claimed.ClaimJob(jobID, kernel.NewUUID(), t0))
	suite.Require().NoError(suite.orderRepo.Update(ctx, claimed))
	suite.addOrder(kernel.NewUUID(), order.Schedule{}, t0)
	ready := suite.readyForDelivery(suite.outletID)

	handler := queries.NewListAvailableJobsQueryHandler(suite.db)

	all, err := queries.NewListAvailableJobsQuery(suite.outletID, nil, 0)
	suite.Require().NoError(err)
	jobs, err := handler.Handle(ctx, all)
	suite.Require().NoError(err)
	suite.Require().Len(jobs, 3)
	suite.True(waiting.ID().IsEqual(jobs[0].OrderID))
	suite.Equal(order.Pickup, jobs[0].Kind)
	suite.Require().NotNil(jobs[0].ScheduledAt)
	suite.True(pickupAt.Equal(*jobs[0].ScheduledAt))
	suite.Equal("Jl. Kaliurang 12", jobs[0].Address)
	suite.Equal("Sleman", jobs[0].City)
	suite.InDelta(-7.7915, jobs[0].Lat, 1e-9)
	suite.True(second.ID().IsEqual(jobs[1].OrderID))
	suite.Nil(jobs[1].ScheduledAt)
	suite.True(ready.ID().IsEqual(jobs[2].OrderID))

	delivery := order.Delivery
	onlyDeliveries, err := queries.NewListAvailableJobsQuery(suite.outletID, &delivery, 0)
	suite.Require().NoError(err)
	jobs, err = handler.Handle(ctx, onlyDeliveries)
	suite.Require().NoError(err)
	suite.Require().Len(jobs, 1)
	suite.Equal(order.Delivery, jobs[0].Kind)
	suite.True(ready.JobByKind(order.Delivery).ID().IsEqual(jobs[0].JobID))

	limited, err := queries.NewListAvailableJobsQuery(suite.outletID, nil, 1)
	suite.Require().NoError(err)
	jobs, err = handler.Handle(ctx, limited)
	suite.Require().NoError(err)
	suite.Len(jobs, 1)
}

func (suite *QueryHandlersTestSuite) TestGetOrderProgress_UnknownOrder_ReturnsNotFound() {
	query, err := queries.NewGetOrderProgressQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = queries.NewGetOrderProgressQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryHandlersTestSuite) TestGetOrderProgress_NewOrder() {
	o := suite.addOrder(suite.outletID, order.Schedule{}, t0)
	query, err := queries.NewGetOrderProgressQuery(o.ID())
	suite.Require().NoError(err)

	progress, err := queries.NewGetOrderProgressQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.True(o.ID().IsEqual(progress.ID))
	suite.True(suite.outletID.IsEqual(progress.OutletID))
	suite.Equal(order.WaitingForPickup, progress.Status)
	suite.Equal(order.Unpaid, progress.PaymentStatus)
	suite.Nil(progress.TotalPrice)
	suite.Nil(progress.AmountDue)
	suite.Require().Len(progress.Stages, 3)
	for i, kind := range order.StageKinds() {
		suite.Equal(kind, progress.Stages[i].Kind)
		suite.Equal("NOT_STARTED", progress.Stages[i].State)
		suite.False(progress.Stages[i].Frozen)
	}
	suite.Require().Len(progress.Jobs, 1)
	suite.Equal(order.JobUnclaimed, progress.Jobs[0].Status)
	suite.Nil(progress.Jobs[0].DriverID)
}

func (suite *QueryHandlersTestSuite) TestGetOrderProgress_FrozenStageAndPricing() {
	ctx := context.Background()
	frozen := suite.addOrder(suite.outletID, order.Schedule{}, t0)
	suite.completePickup(frozen)
	worker := kernel.NewUUID()
	washing, err := frozen.StageByKind(order.Washing)
	suite.Require().NoError(err)
	suite.Require().NoError(frozen.StartStage(washing.ID(), worker, t0))
	_, err = frozen.RequestBypass(kernel.NewUUID(), washing.ID(), worker, "lost sock", t0)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Update(ctx, frozen))

	handler := queries.NewGetOrderProgressQueryHandler(suite.db)
	query, err := queries.NewGetOrderProgressQuery(frozen.ID())
	suite.Require().NoError(err)
	progress, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(order.BeingWashed, progress.Status)
	suite.Equal("IN_PROGRESS", progress.Stages[0].State)
	suite.True(progress.Stages[0].Frozen)
	suite.Require().NotNil(progress.Stages[0].WorkerID)
	suite.True(worker.IsEqual(*progress.Stages[0].WorkerID))
	suite.False(progress.Stages[1].Frozen)
	suite.Equal(order.JobCompleted, progress.Jobs[0].Status)

	ready := suite.readyForDelivery(suite.outletID)
	query, err = queries.NewGetOrderProgressQuery(ready.ID())
	suite.Require().NoError(err)
	progress, err = handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(order.ReadyForDelivery, progress.Status)
	suite.Equal(order.Paid, progress.PaymentStatus)
	suite.Require().NotNil(progress.AmountDue)
	suite.True(decimal.NewFromInt(35000).Equal(*progress.AmountDue))
	suite.Require().NotNil(progress.PaidAt)
	suite.Require().Len(progress.Jobs, 2)
	suite.Equal(order.Delivery, progress.Jobs[1].Kind)
	for _, stage := range progress.Stages {
		suite.Equal("COMPLETED", stage.State)
	}
}

func (suite *QueryHandlersTestSuite) addOrder(outletID kernel.UUID, schedule order.Schedule, createdAt time.Time) *order.Order {
	loc, err := kernel.NewGeoPoint(-7.7915, 110.3715)
	suite.Require().NoError(err)
	address, err := order.NewAddress("Jl. Kaliurang 12", "Depok", "Sleman", "DIY", "55281", loc)
	suite.Require().NoError(err)
	shirts, err := order.NewItem("shirt", 4, decimal.NewFromInt(3500), decimal.RequireFromString("1.2"))
	suite.Require().NoError(err)
	trousers, err := order.NewItem("trousers", 2, decimal.NewFromInt(5000), decimal.RequireFromString("1.0"))
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), outletID, address,
		[]order.Item{shirts, trousers}, schedule, createdAt)
	suite.Require().NoError(err)
	suite.Require().NoError(o.RequestPickup(createdAt))
	suite.Require().NoError(suite.orderRepo.Add(context.Background(), o))
	return o
}

func (suite *QueryHandlersTestSuite) completePickup(o *order.Order) {
	driver := kernel.NewUUID()
	jobID := o.JobByKind(order.Pickup).ID()
	suite.Require().NoError(o.ClaimJob(jobID, driver, t0))
	suite.Require().NoError(o.ArriveAtPickup(jobID, driver, t0))
	suite.Require().NoError(o.StartJob(jobID, driver, t0))
	suite.Require().NoError(o.CompleteJob(jobID, driver, []string{"https://cdn/p.jpg"}, "", nil, t0))
}

func (suite *QueryHandlersTestSuite) readyForDelivery(outletID kernel.UUID) *order.Order {
	o := suite.addOrder(outletID, order.Schedule{}, t0.Add(time.Hour))
	suite.completePickup(o)
	worker := kernel.NewUUID()
	pricing := &order.Pricing{Quote: order.DeliveryQuote{
		DistanceKm:          decimal.RequireFromString("3.00"),
		Fee:                 decimal.NewFromInt(11000),
		WithinServiceRadius: true,
	}}
	for _, kind := range order.StageKinds() {
		stage, err := o.StageByKind(kind)
		suite.Require().NoError(err)
		suite.Require().NoError(o.StartStage(stage.ID(), worker, t0))
		suite.Require().NoError(o.CompleteStage(stage.ID(), worker, "", pricing, t0))
	}
	suite.Require().NoError(o.ConfirmPayment(t0, t0.Add(2*time.Hour)))
	suite.Require().NoError(suite.orderRepo.Update(context.Background(), o))
	return o
}

func TestQueryHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersTestSuite))
}
