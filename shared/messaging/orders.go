package messaging

import (
	"time"

	"github.com/tradeflow/ordering-system/shared/models"
)

// Order message contracts. Every event carries the full order payload so a
// consumer never has to join against the order store to act on it. Once
// published a message is an immutable fact.

// OrderType identifies the side of an order
type OrderType string

const (
	OrderTypeBuy  OrderType = "BUY"
	OrderTypeSell OrderType = "SELL"
)

// SubmitOrder command requests submission of a new order. OrderID is
// optional; the consumer generates one when absent.
type SubmitOrder struct {
	OrderID    models.ID `json:"order_id,omitempty"`
	UserID     string    `json:"user_id"`
	CurrencyID string    `json:"currency_id"`
	Price      float64   `json:"price"`
	OrderType  OrderType `json:"order_type"`
	Quantity   float64   `json:"quantity"`
}

// OrderSubmitted signals that an order was accepted and stored.
type OrderSubmitted struct {
	OrderID    models.ID `json:"order_id"`
	UserID     string    `json:"user_id"`
	CurrencyID string    `json:"currency_id"`
	Price      float64   `json:"price"`
	OrderType  OrderType `json:"order_type"`
	Quantity   float64   `json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
}

// OrderPlaced signals that an order was placed at the exchange.
type OrderPlaced struct {
	OrderID    models.ID `json:"order_id"`
	UserID     string    `json:"user_id"`
	CurrencyID string    `json:"currency_id"`
	Price      float64   `json:"price"`
	OrderType  OrderType `json:"order_type"`
	Quantity   float64   `json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
}

// OrderFilled signals that a placed order was filled.
type OrderFilled struct {
	OrderID    models.ID `json:"order_id"`
	UserID     string    `json:"user_id"`
	CurrencyID string    `json:"currency_id"`
	Price      float64   `json:"price"`
	OrderType  OrderType `json:"order_type"`
	Quantity   float64   `json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
}

// OrderCancelled signals that a placed order was cancelled, either by the
// user or because it expired.
type OrderCancelled struct {
	OrderID    models.ID `json:"order_id"`
	UserID     string    `json:"user_id"`
	CurrencyID string    `json:"currency_id"`
	Price      float64   `json:"price"`
	OrderType  OrderType `json:"order_type"`
	Quantity   float64   `json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
}

// OrderExpired is the scheduled timeout delivery for a placed order that saw
// no fill or cancel within the expiration window.
type OrderExpired struct {
	OrderID    models.ID `json:"order_id"`
	UserID     string    `json:"user_id"`
	CurrencyID string    `json:"currency_id"`
	Price      float64   `json:"price"`
	OrderType  OrderType `json:"order_type"`
	Quantity   float64   `json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
}
