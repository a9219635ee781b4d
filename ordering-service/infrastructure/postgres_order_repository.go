package infrastructure

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/tradeflow/ordering-system/ordering-service/domain"
	"github.com/tradeflow/ordering-system/shared/messaging"
	"github.com/tradeflow/ordering-system/shared/models"
)

var _ domain.OrderRepository = (*PostgresOrderRepository)(nil)

// PostgresOrderRepository implements OrderRepository using PostgreSQL
type PostgresOrderRepository struct {
	db *sqlx.DB
}

// NewPostgresOrderRepository creates a new PostgresOrderRepository
func NewPostgresOrderRepository(db *sqlx.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

// postgresOrder represents an order in the database
type postgresOrder struct {
	ID         string     `db:"id"`
	UserID     string     `db:"user_id"`
	CurrencyID string     `db:"currency_id"`
	Price      float64    `db:"price"`
	OrderType  string     `db:"order_type"`
	Quantity   float64    `db:"quantity"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
	DeletedAt  *time.Time `db:"deleted_at"`
	Version    int        `db:"version"`
}

// Save inserts a new order
func (r *PostgresOrderRepository) Save(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (
			id, user_id, currency_id, price, order_type, quantity,
			created_at, updated_at, version
		) VALUES (
			:id, :user_id, :currency_id, :price, :order_type, :quantity,
			:created_at, :updated_at, :version
		)`

	_, err := r.db.NamedExecContext(ctx, query, r.toPostgres(order))
	if err != nil {
		return errors.Wrap(err, "failed to insert order")
	}

	return nil
}

// FindByID finds an order by ID
func (r *PostgresOrderRepository) FindByID(ctx context.Context, id models.ID) (*domain.Order, error) {
	query := `
		SELECT id, user_id, currency_id, price, order_type, quantity,
			   created_at, updated_at, deleted_at, version
		FROM orders
		WHERE id = $1 AND deleted_at IS NULL`

	var pgOrder postgresOrder
	err := r.db.GetContext(ctx, &pgOrder, query, id.String())
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find order")
	}

	return r.toDomain(&pgOrder), nil
}

// FindByUserID finds all orders for a user
func (r *PostgresOrderRepository) FindByUserID(ctx context.Context, userID string) ([]*domain.Order, error) {
	query := `
		SELECT id, user_id, currency_id, price, order_type, quantity,
			   created_at, updated_at, deleted_at, version
		FROM orders
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC`

	var pgOrders []postgresOrder
	err := r.db.SelectContext(ctx, &pgOrders, query, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find orders by user")
	}

	orders := make([]*domain.Order, len(pgOrders))
	for i := range pgOrders {
		orders[i] = r.toDomain(&pgOrders[i])
	}

	return orders, nil
}

func (r *PostgresOrderRepository) toPostgres(order *domain.Order) *postgresOrder {
	return &postgresOrder{
		ID:         order.ID.String(),
		UserID:     order.UserID,
		CurrencyID: order.CurrencyID,
		Price:      order.Price,
		OrderType:  string(order.OrderType),
		Quantity:   order.Quantity,
		CreatedAt:  order.Timestamps.CreatedAt,
		UpdatedAt:  order.Timestamps.UpdatedAt,
		DeletedAt:  order.Timestamps.DeletedAt,
		Version:    order.Version.Value,
	}
}

func (r *PostgresOrderRepository) toDomain(pgOrder *postgresOrder) *domain.Order {
	return &domain.Order{
		ID:         models.ID(pgOrder.ID),
		UserID:     pgOrder.UserID,
		CurrencyID: pgOrder.CurrencyID,
		Price:      pgOrder.Price,
		OrderType:  messaging.OrderType(pgOrder.OrderType),
		Quantity:   pgOrder.Quantity,
		Timestamps: models.Timestamps{
			CreatedAt: pgOrder.CreatedAt,
			UpdatedAt: pgOrder.UpdatedAt,
			DeletedAt: pgOrder.DeletedAt,
		},
		Version: models.Version{Value: pgOrder.Version},
	}
}
