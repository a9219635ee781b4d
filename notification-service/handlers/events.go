package handlers

import (
	"context"
	"log"
	"time"

	"github.com/pkg/errors"

	"github.com/tradeflow/ordering-system/notification-service/application"
	"github.com/tradeflow/ordering-system/shared/events"
	"github.com/tradeflow/ordering-system/shared/messaging"
)

// NotificationEventHandlers turns order outcomes into pending messages. The
// recurring job owns delivery; these handlers only queue.
type NotificationEventHandlers struct {
	createNotification *application.CreateOrderNotification
}

// NewNotificationEventHandlers creates new notification event handlers
func NewNotificationEventHandlers(createNotification *application.CreateOrderNotification) *NotificationEventHandlers {
	return &NotificationEventHandlers{createNotification: createNotification}
}

// HandlerID returns the unique identifier for this event handler
func (h *NotificationEventHandlers) HandlerID() string {
	return "notification-service-event-handler"
}

// Handle implements the events.EventHandler interface
func (h *NotificationEventHandlers) Handle(ctx context.Context, event *events.Event) error {
	start := time.Now()

	var err error
	switch event.Topic.String() {
	case events.OrderFilledEvent:
		err = h.handleOrderFilled(ctx, event)
	case events.OrderCancelledEvent:
		err = h.handleOrderCancelled(ctx, event)
	default:
		// Not ours.
		return nil
	}

	if err != nil {
		log.Printf("%s %s failed after %.3fs: %v", event.Topic, event.CorrelationID, time.Since(start).Seconds(), err)
		return err
	}

	log.Printf("%s %s handled in %.3fs", event.Topic, event.CorrelationID, time.Since(start).Seconds())
	return nil
}

func (h *NotificationEventHandlers) handleOrderFilled(ctx context.Context, event *events.Event) error {
	var filled messaging.OrderFilled
	if err := event.UnmarshalPayload(&filled); err != nil {
		return events.Fatal(errors.Wrap(err, "failed to parse order filled event"))
	}

	return h.createNotification.OrderFilled(ctx, &filled)
}

func (h *NotificationEventHandlers) handleOrderCancelled(ctx context.Context, event *events.Event) error {
	var cancelled messaging.OrderCancelled
	if err := event.UnmarshalPayload(&cancelled); err != nil {
		return events.Fatal(errors.Wrap(err, "failed to parse order cancelled event"))
	}

	return h.createNotification.OrderCancelled(ctx, &cancelled)
}
