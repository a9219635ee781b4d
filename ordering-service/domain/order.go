package domain

import (
	"context"

	"github.com/pkg/errors"

	"github.com/tradeflow/ordering-system/shared/messaging"
	"github.com/tradeflow/ordering-system/shared/models"
)

// Order is the entity created by the submit path. The saga does not own it;
// it only reacts to events derived from it.
type Order struct {
	ID         models.ID
	UserID     string
	CurrencyID string
	Price      float64
	OrderType  messaging.OrderType
	Quantity   float64
	Timestamps models.Timestamps
	Version    models.Version
}

// BuildOrder creates a new order from a submit command. The command's order
// id is honored when present so callers can retry idempotently; otherwise a
// new id is generated. CreatedAt is recorded at minute precision.
func BuildOrder(cmd *messaging.SubmitOrder, now models.Timestamps) (*Order, error) {
	if cmd.UserID == "" {
		return nil, errors.New("user ID is required")
	}

	if cmd.CurrencyID == "" {
		return nil, errors.New("currency ID is required")
	}

	if cmd.Price <= 0 {
		return nil, errors.New("price must be positive")
	}

	if cmd.Quantity <= 0 {
		return nil, errors.New("quantity must be positive")
	}

	if cmd.OrderType != messaging.OrderTypeBuy && cmd.OrderType != messaging.OrderTypeSell {
		return nil, errors.Errorf("unknown order type %q", cmd.OrderType)
	}

	orderID := cmd.OrderID
	if orderID == "" {
		orderID = models.GenerateUUID()
	}

	now.CreatedAt = models.StripSeconds(now.CreatedAt)

	return &Order{
		ID:         orderID,
		UserID:     cmd.UserID,
		CurrencyID: cmd.CurrencyID,
		Price:      cmd.Price,
		OrderType:  cmd.OrderType,
		Quantity:   cmd.Quantity,
		Timestamps: now,
		Version:    models.NewVersion(),
	}, nil
}

// Submitted projects the order into the OrderSubmitted event payload.
func (o *Order) Submitted() messaging.OrderSubmitted {
	return messaging.OrderSubmitted{
		OrderID:    o.ID,
		UserID:     o.UserID,
		CurrencyID: o.CurrencyID,
		Price:      o.Price,
		OrderType:  o.OrderType,
		Quantity:   o.Quantity,
		CreatedAt:  o.Timestamps.CreatedAt,
	}
}

// OrderRepository persists orders
type OrderRepository interface {
	Save(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id models.ID) (*Order, error)
	FindByUserID(ctx context.Context, userID string) ([]*Order, error)
}
