package application

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/tradeflow/ordering-system/ordering-service/domain"
	"github.com/tradeflow/ordering-system/shared/messaging"
	"github.com/tradeflow/ordering-system/shared/models"
)

// ErrOrderNotFound is returned when no order exists for the requested id
var ErrOrderNotFound = errors.New("order not found")

// GetOrderQuery represents the query to get an order
type GetOrderQuery struct {
	OrderID string `json:"order_id"`
}

// OrderResponse is the read model returned by the API: the order row plus
// the saga's view of its lifecycle.
type OrderResponse struct {
	OrderID     models.ID           `json:"order_id"`
	UserID      string              `json:"user_id"`
	CurrencyID  string              `json:"currency_id"`
	Price       float64             `json:"price"`
	OrderType   messaging.OrderType `json:"order_type"`
	Quantity    float64             `json:"quantity"`
	CreatedAt   time.Time           `json:"created_at"`
	Status      string              `json:"status"`
	SubmittedAt *time.Time          `json:"submitted_at,omitempty"`
	PlacedAt    *time.Time          `json:"placed_at,omitempty"`
	FilledAt    *time.Time          `json:"filled_at,omitempty"`
	CancelledAt *time.Time          `json:"cancelled_at,omitempty"`
}

// GetOrder use case retrieves an order with its lifecycle state
type GetOrder struct {
	orders domain.OrderRepository
	sagas  domain.SagaRepository
}

// NewGetOrder creates a new GetOrder use case
func NewGetOrder(orders domain.OrderRepository, sagas domain.SagaRepository) *GetOrder {
	return &GetOrder{
		orders: orders,
		sagas:  sagas,
	}
}

// Execute retrieves an order by ID
func (uc *GetOrder) Execute(ctx context.Context, query *GetOrderQuery) (*OrderResponse, error) {
	if query.OrderID == "" {
		return nil, errors.New("order ID is required")
	}

	orderID, err := models.NewID(query.OrderID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid order ID")
	}

	order, err := uc.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find order")
	}

	if order == nil {
		return nil, ErrOrderNotFound
	}

	response := &OrderResponse{
		OrderID:    order.ID,
		UserID:     order.UserID,
		CurrencyID: order.CurrencyID,
		Price:      order.Price,
		OrderType:  order.OrderType,
		Quantity:   order.Quantity,
		CreatedAt:  order.Timestamps.CreatedAt,
		Status:     domain.SagaStateInitial.String(),
	}

	saga, err := uc.sagas.Find(ctx, orderID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find saga")
	}

	if saga != nil {
		response.Status = saga.CurrentState.String()
		response.SubmittedAt = saga.SubmittedAt
		response.PlacedAt = saga.PlacedAt
		response.FilledAt = saga.FilledAt
		response.CancelledAt = saga.CancelledAt
	}

	return response, nil
}
