package application

import (
	"context"

	"github.com/pkg/errors"

	"github.com/tradeflow/ordering-system/shared/events"
	"github.com/tradeflow/ordering-system/shared/messaging"
	"github.com/tradeflow/ordering-system/shared/telemetry"
)

// PlaceOrder use case reacts to OrderSubmitted by placing the order and
// publishing OrderPlaced with the submitted payload carried over. Placement
// at the exchange is an external concern; this projection is the boundary.
type PlaceOrder struct {
	publisher events.Publisher
}

// NewPlaceOrder creates a new PlaceOrder use case
func NewPlaceOrder(publisher events.Publisher) *PlaceOrder {
	return &PlaceOrder{publisher: publisher}
}

// Execute publishes OrderPlaced for the submitted order and returns the
// published payload for the synchronous reply.
func (uc *PlaceOrder) Execute(ctx context.Context, submitted *messaging.OrderSubmitted) (*messaging.OrderPlaced, error) {
	ctx, span := telemetry.StartSpan(ctx, "place_order")
	defer span.End()

	if submitted.OrderID == "" {
		return nil, errors.New("order ID is required")
	}

	placed := messaging.PlacedFromSubmitted(*submitted)

	event := events.NewEvent(placed.OrderID, events.OrderPlacedEvent, placed).
		WithCorrelationID(placed.OrderID)

	if err := uc.publisher.Publish(ctx, event); err != nil {
		return nil, errors.Wrap(err, "failed to publish order placed")
	}

	return &placed, nil
}
