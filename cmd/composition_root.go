package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	httpin "laundry/internal/adapters/in/http"
	"laundry/internal/adapters/out/notify"
	"laundry/internal/adapters/out/payment"
	"laundry/internal/adapters/out/postgres"
	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/application/workflow"
	"laundry/internal/core/ports"
	"laundry/internal/jobs"

	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger

	notifier     ports.Notifier
	closers      []func() error
	orchestrator *workflow.Orchestrator
}

// OpenDatabase connects with the configured DSN and brings the schema up to date.
func OpenDatabase(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(gorm_postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err = postgres.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
	}

	if cfg.RabbitMQURL != "" {
		rabbit, err := notify.DialRabbitMQ(cfg.RabbitMQURL, cfg.RabbitMQExchange)
		if err != nil {
			return nil, err
		}
		c.notifier = rabbit
		c.closers = append(c.closers, rabbit.Close)
	} else {
		logger.Warn("RABBITMQ_URL is not set, workflow events go to the log")
		c.notifier = notify.NewLogNotifier(logger)
	}

	gateway, err := payment.NewMercadoPagoGateway(payment.Config{
		AccessToken:     cfg.MercadoPagoAccessToken,
		PaymentMethodID: cfg.PaymentMethodID,
		NotificationURL: cfg.PaymentNotificationURL,
		Mock:            cfg.PaymentMock,
	})
	if err != nil {
		return nil, errors.Join(err, c.Close())
	}

	c.orchestrator, err = workflow.NewOrchestrator(c.createUoWFactory(), c.notifier, gateway, cfg.Workflow())
	if err != nil {
		return nil, errors.Join(err, c.Close())
	}

	return c, nil
}

func (c *CompositionRoot) createUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) Orchestrator() *workflow.Orchestrator {
	return c.orchestrator
}

func (c *CompositionRoot) CreateListAvailableJobsQueryHandler() queries.ListAvailableJobsQueryHandler {
	return queries.NewListAvailableJobsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderProgressQueryHandler() queries.GetOrderProgressQueryHandler {
	return queries.NewGetOrderProgressQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateServer() (*httpin.Server, error) {
	return httpin.NewServer(
		c.orchestrator,
		c.CreateListAvailableJobsQueryHandler(),
		c.CreateGetOrderProgressQueryHandler(),
	)
}

func (c *CompositionRoot) RouteConfig() httpin.RouteConfig {
	return httpin.RouteConfig{
		JWTSecret:     []byte(c.cfg.JWTSecret),
		WebhookSecret: c.cfg.WebhookSecret,
	}
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.orchestrator, c.cfg.CompletionSchedule, c.logger)
}

// Close releases the message broker connection.
func (c *CompositionRoot) Close() error {
	var errList []error
	for _, closeFn := range c.closers {
		errList = append(errList, closeFn())
	}
	c.closers = nil
	return errors.Join(errList...)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
