package handlers

import (
	"context"
	"log"
	"time"

	"github.com/pkg/errors"

	"github.com/tradeflow/ordering-system/ordering-service/application"
	"github.com/tradeflow/ordering-system/shared/events"
	"github.com/tradeflow/ordering-system/shared/infrastructure"
	"github.com/tradeflow/ordering-system/shared/messaging"
)

// OrderingEventHandlers routes bus messages to the ordering use cases. A
// handler never crashes the process: business rejections are absorbed by
// the use cases, decode failures are fatal (dead-lettered), and
// collaborator failures are returned for redelivery.
type OrderingEventHandlers struct {
	submitOrder *application.SubmitOrder
	placeOrder  *application.PlaceOrder
	runSaga     *application.RunOrderSaga
	replier     infrastructure.Replier
}

// NewOrderingEventHandlers creates new ordering event handlers
func NewOrderingEventHandlers(
	submitOrder *application.SubmitOrder,
	placeOrder *application.PlaceOrder,
	runSaga *application.RunOrderSaga,
	replier infrastructure.Replier,
) *OrderingEventHandlers {
	return &OrderingEventHandlers{
		submitOrder: submitOrder,
		placeOrder:  placeOrder,
		runSaga:     runSaga,
		replier:     replier,
	}
}

// HandlerID returns the unique identifier for this event handler
func (h *OrderingEventHandlers) HandlerID() string {
	return "ordering-service-event-handler"
}

// Handle implements the events.EventHandler interface
func (h *OrderingEventHandlers) Handle(ctx context.Context, event *events.Event) error {
	start := time.Now()

	var err error
	switch event.Topic.String() {
	case events.SubmitOrderCommand:
		err = h.handleSubmitOrder(ctx, event)
	case events.OrderSubmittedEvent:
		err = h.handleOrderSubmitted(ctx, event)
	case events.OrderPlacedEvent, events.OrderFilledEvent, events.OrderCancelledEvent, events.OrderExpiredEvent:
		err = h.runSaga.Execute(ctx, event)
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

func (h *OrderingEventHandlers) handleSubmitOrder(ctx context.Context, event *events.Event) error {
	var cmd messaging.SubmitOrder
	if err := event.UnmarshalPayload(&cmd); err != nil {
		return events.Fatal(errors.Wrap(err, "failed to parse submit order command"))
	}

	submitted, err := h.submitOrder.Execute(ctx, &cmd)
	if err != nil {
		return err
	}

	response := events.NewEvent(submitted.OrderID, events.OrderSubmittedEvent, *submitted).
		WithCorrelationID(submitted.OrderID)

	return h.replier.Reply(ctx, event, response)
}

func (h *OrderingEventHandlers) handleOrderSubmitted(ctx context.Context, event *events.Event) error {
	// The saga records the submission before the placement event is
	// published, so the placed event always finds a submitted instance.
	if err := h.runSaga.Execute(ctx, event); err != nil {
		return err
	}

	var submitted messaging.OrderSubmitted
	if err := event.UnmarshalPayload(&submitted); err != nil {
		return events.Fatal(errors.Wrap(err, "failed to parse order submitted payload"))
	}

	placed, err := h.placeOrder.Execute(ctx, &submitted)
	if err != nil {
		return err
	}

	response := events.NewEvent(placed.OrderID, events.OrderPlacedEvent, *placed).
		WithCorrelationID(placed.OrderID)

	return h.replier.Reply(ctx, event, response)
}
