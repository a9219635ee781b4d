package application

import (
	"context"

	"github.com/pkg/errors"

	"github.com/tradeflow/ordering-system/ordering-service/domain"
	"github.com/tradeflow/ordering-system/shared/events"
	"github.com/tradeflow/ordering-system/shared/messaging"
	"github.com/tradeflow/ordering-system/shared/models"
	"github.com/tradeflow/ordering-system/shared/telemetry"
)

// SubmitOrder use case persists a new order and publishes OrderSubmitted.
// There is no transaction spanning the write and the publish; at-least-once
// delivery plus the saga's rejection of replays is the consistency
// mechanism.
type SubmitOrder struct {
	orders    domain.OrderRepository
	publisher events.Publisher
}

// NewSubmitOrder creates a new SubmitOrder use case
func NewSubmitOrder(orders domain.OrderRepository, publisher events.Publisher) *SubmitOrder {
	return &SubmitOrder{
		orders:    orders,
		publisher: publisher,
	}
}

// Execute builds and stores the order, publishes OrderSubmitted, and returns
// the published payload so callers can reply with it.
func (uc *SubmitOrder) Execute(ctx context.Context, cmd *messaging.SubmitOrder) (*messaging.OrderSubmitted, error) {
	ctx, span := telemetry.StartSpan(ctx, "submit_order")
	defer span.End()

	order, err := domain.BuildOrder(cmd, models.NewTimestamps())
	if err != nil {
		return nil, errors.Wrap(err, "invalid submit order command")
	}

	if err := uc.orders.Save(ctx, order); err != nil {
		return nil, errors.Wrap(err, "failed to save order")
	}

	submitted := order.Submitted()

	event := events.NewEvent(order.ID, events.OrderSubmittedEvent, submitted).
		WithCorrelationID(order.ID)

	if err := uc.publisher.Publish(ctx, event); err != nil {
		return nil, errors.Wrap(err, "failed to publish order submitted")
	}

	return &submitted, nil
}
