package application

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/tradeflow/ordering-system/ordering-service/domain"
	"github.com/tradeflow/ordering-system/shared/messaging"
	"github.com/tradeflow/ordering-system/shared/models"
)

// ListOrdersQuery represents the query to list a user's orders
type ListOrdersQuery struct {
	UserID string `json:"user_id"`
}

// OrderSummary is one row of the listing. Lifecycle state is not joined in
// here; callers follow up with GetOrder for a single order's status.
type OrderSummary struct {
	OrderID    models.ID           `json:"order_id"`
	UserID     string              `json:"user_id"`
	CurrencyID string              `json:"currency_id"`
	Price      float64             `json:"price"`
	OrderType  messaging.OrderType `json:"order_type"`
	Quantity   float64             `json:"quantity"`
	CreatedAt  time.Time           `json:"created_at"`
}

// ListOrders use case retrieves all orders submitted by a user
type ListOrders struct {
	orders domain.OrderRepository
}

// NewListOrders creates a new ListOrders use case
func NewListOrders(orders domain.OrderRepository) *ListOrders {
	return &ListOrders{orders: orders}
}

// Execute lists the user's orders
func (uc *ListOrders) Execute(ctx context.Context, query *ListOrdersQuery) ([]*OrderSummary, error) {
	if query.UserID == "" {
		return nil, errors.New("user ID is required")
	}

	orders, err := uc.orders.FindByUserID(ctx, query.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find orders")
	}

	summaries := make([]*OrderSummary, 0, len(orders))
	for _, order := range orders {
		summaries = append(summaries, &OrderSummary{
			OrderID:    order.ID,
			UserID:     order.UserID,
			CurrencyID: order.CurrencyID,
			Price:      order.Price,
			OrderType:  order.OrderType,
			Quantity:   order.Quantity,
			CreatedAt:  order.Timestamps.CreatedAt,
		})
	}

	return summaries, nil
}
