package config

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/tradeflow/ordering-system/ordering-service/application"
	"github.com/tradeflow/ordering-system/ordering-service/handlers"
	"github.com/tradeflow/ordering-system/ordering-service/infrastructure"
	sharedinfra "github.com/tradeflow/ordering-system/shared/infrastructure"
)

type Dependencies struct {
	// Database
	DB *sqlx.DB

	// Repositories
	OrderRepository *infrastructure.PostgresOrderRepository
	SagaRepository  *infrastructure.PostgresSagaRepository

	// Scheduling
	Scheduler       *infrastructure.PostgresScheduler
	SchedulerPoller *infrastructure.SchedulerPoller

	// Use Cases
	SubmitOrder  *application.SubmitOrder
	PlaceOrder   *application.PlaceOrder
	GetOrder     *application.GetOrder
	ListOrders   *application.ListOrders
	RunOrderSaga *application.RunOrderSaga

	// HTTP Handlers
	OrderHandlers *handlers.OrderHandlers

	// Event Handlers
	OrderingEventHandlers *handlers.OrderingEventHandlers

	// Infrastructure
	EventPublisher  *sharedinfra.SNSPublisherAdapter
	EventSubscriber *sharedinfra.SQSSubscriberAdapter
	Replier         *sharedinfra.SQSReplier
}

func BuildDependencies(config *Config) (*Dependencies, error) {
	deps := &Dependencies{}

	// Initialize database
	db, err := sqlx.Connect("postgres", config.GetDatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	deps.DB = db

	// Initialize AWS infrastructure
	eventPublisher, err := sharedinfra.NewSNSPublisherAdapter(config.AWS.SNSTopicArn)
	if err != nil {
		return nil, fmt.Errorf("failed to create SNS publisher: %w", err)
	}
	deps.EventPublisher = eventPublisher

	eventSubscriber, err := sharedinfra.NewSQSSubscriberAdapter(
		config.AWS.SQSQueueURL,
		sharedinfra.WithDeadLetterQueue(config.AWS.DeadLetterURL, config.AWS.MaxReceiveCount),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create SQS subscriber: %w", err)
	}
	deps.EventSubscriber = eventSubscriber

	replier, err := sharedinfra.NewSQSReplier()
	if err != nil {
		return nil, fmt.Errorf("failed to create SQS replier: %w", err)
	}
	deps.Replier = replier

	// Initialize repositories
	deps.OrderRepository = infrastructure.NewPostgresOrderRepository(db)
	deps.SagaRepository = infrastructure.NewPostgresSagaRepository(db)

	// Initialize scheduling
	deps.Scheduler = infrastructure.NewPostgresScheduler(db)
	deps.SchedulerPoller = infrastructure.NewSchedulerPoller(db, eventPublisher, config.SchedulerPollInterval())

	// Initialize use cases
	deps.SubmitOrder = application.NewSubmitOrder(deps.OrderRepository, eventPublisher)
	deps.PlaceOrder = application.NewPlaceOrder(eventPublisher)
	deps.GetOrder = application.NewGetOrder(deps.OrderRepository, deps.SagaRepository)
	deps.ListOrders = application.NewListOrders(deps.OrderRepository)
	deps.RunOrderSaga = application.NewRunOrderSaga(deps.SagaRepository, eventPublisher, deps.Scheduler, config.ExpiryDelay())

	// Initialize handlers
	deps.OrderHandlers = handlers.NewOrderHandlers(deps.SubmitOrder, deps.GetOrder, deps.ListOrders)
	deps.OrderingEventHandlers = handlers.NewOrderingEventHandlers(
		deps.SubmitOrder,
		deps.PlaceOrder,
		deps.RunOrderSaga,
		deps.Replier,
	)

	return deps, nil
}

// Close closes all dependencies
func (d *Dependencies) Close() error {
	var errs []error

	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if d.EventPublisher != nil {
		if err := d.EventPublisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close event publisher: %w", err))
		}
	}

	if d.EventSubscriber != nil {
		if err := d.EventSubscriber.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close event subscriber: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing dependencies: %v", errs)
	}

	return nil
}
