package config

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/tradeflow/ordering-system/notification-service/application"
	"github.com/tradeflow/ordering-system/notification-service/handlers"
	"github.com/tradeflow/ordering-system/notification-service/infrastructure"
	"github.com/tradeflow/ordering-system/notification-service/jobs"
	sharedinfra "github.com/tradeflow/ordering-system/shared/infrastructure"
)

type Dependencies struct {
	// Database
	DB *sqlx.DB

	// Repositories
	MessageRepository *infrastructure.PostgresMessageRepository
	ContactRepository *infrastructure.PostgresContactRepository

	// Gateways
	WhatsAppGateway *infrastructure.WhatsAppGateway

	// Use Cases
	CreateOrderNotification  *application.CreateOrderNotification
	SendPendingNotifications *application.SendPendingNotifications

	// Event Handlers
	NotificationEventHandlers *handlers.NotificationEventHandlers

	// Jobs
	SendNotificationsJob *jobs.Recurring

	// Infrastructure
	EventSubscriber *sharedinfra.SQSSubscriberAdapter
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
	eventSubscriber, err := sharedinfra.NewSQSSubscriberAdapter(
		config.AWS.SQSQueueURL,
		sharedinfra.WithDeadLetterQueue(config.AWS.DeadLetterURL, config.AWS.MaxReceiveCount),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create SQS subscriber: %w", err)
	}
	deps.EventSubscriber = eventSubscriber

	// Initialize repositories and gateways
	deps.MessageRepository = infrastructure.NewPostgresMessageRepository(db)
	deps.ContactRepository = infrastructure.NewPostgresContactRepository(db)
	deps.WhatsAppGateway = infrastructure.NewWhatsAppGateway(config.WhatsApp.URL, config.WhatsApp.APIKey, nil)

	// Initialize use cases
	deps.CreateOrderNotification = application.NewCreateOrderNotification(deps.MessageRepository, deps.ContactRepository)
	deps.SendPendingNotifications = application.NewSendPendingNotifications(
		deps.MessageRepository,
		deps.WhatsAppGateway,
		config.Job.MaxAttempts,
	)

	// Initialize handlers
	deps.NotificationEventHandlers = handlers.NewNotificationEventHandlers(deps.CreateOrderNotification)

	// Initialize jobs
	sendPending := deps.SendPendingNotifications
	deps.SendNotificationsJob = jobs.NewRecurring("send_whatsapp_notifications", config.JobInterval(),
		func(ctx context.Context) error {
			return sendPending.Execute(ctx, "")
		})

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
