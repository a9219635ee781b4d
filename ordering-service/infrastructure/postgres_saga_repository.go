package infrastructure

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/tradeflow/ordering-system/ordering-service/domain"
	"github.com/tradeflow/ordering-system/shared/models"
)

// uniqueViolation is the Postgres error code for unique constraint violations
const uniqueViolation = "23505"

var _ domain.SagaRepository = (*PostgresSagaRepository)(nil)

// PostgresSagaRepository implements SagaRepository using PostgreSQL
type PostgresSagaRepository struct {
	db *sqlx.DB
}

// NewPostgresSagaRepository creates a new PostgresSagaRepository
func NewPostgresSagaRepository(db *sqlx.DB) *PostgresSagaRepository {
	return &PostgresSagaRepository{db: db}
}

// postgresSaga represents a saga instance in the database
type postgresSaga struct {
	CorrelationID string     `db:"correlation_id"`
	CurrentState  string     `db:"current_state"`
	OrderID       string     `db:"order_id"`
	SubmittedAt   *time.Time `db:"submitted_at"`
	PlacedAt      *time.Time `db:"placed_at"`
	FilledAt      *time.Time `db:"filled_at"`
	CancelledAt   *time.Time `db:"cancelled_at"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
	Version       int        `db:"version"`
}

// Find loads a saga instance by correlation id, or nil when none exists
func (r *PostgresSagaRepository) Find(ctx context.Context, correlationID models.ID) (*domain.OrderSaga, error) {
	query := `
		SELECT correlation_id, current_state, order_id, submitted_at,
			   placed_at, filled_at, cancelled_at, created_at, updated_at, version
		FROM order_sagas
		WHERE correlation_id = $1`

	var pgSaga postgresSaga
	err := r.db.GetContext(ctx, &pgSaga, query, correlationID.String())
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find saga")
	}

	return r.toDomain(&pgSaga), nil
}

// Save persists the instance. A version of one inserts; anything later
// updates against the previous version. Both paths surface a concurrent
// writer as ErrVersionConflict.
func (r *PostgresSagaRepository) Save(ctx context.Context, saga *domain.OrderSaga) error {
	if saga.Version.Value == 1 {
		return r.insert(ctx, saga)
	}
	return r.update(ctx, saga)
}

func (r *PostgresSagaRepository) insert(ctx context.Context, saga *domain.OrderSaga) error {
	query := `
		INSERT INTO order_sagas (
			correlation_id, current_state, order_id, submitted_at,
			placed_at, filled_at, cancelled_at, created_at, updated_at, version
		) VALUES (
			:correlation_id, :current_state, :order_id, :submitted_at,
			:placed_at, :filled_at, :cancelled_at, :created_at, :updated_at, :version
		)`

	_, err := r.db.NamedExecContext(ctx, query, r.toPostgres(saga))
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrVersionConflict
		}
		return errors.Wrap(err, "failed to insert saga")
	}

	return nil
}

func (r *PostgresSagaRepository) update(ctx context.Context, saga *domain.OrderSaga) error {
	query := `
		UPDATE order_sagas
		SET current_state = :current_state, submitted_at = :submitted_at,
			placed_at = :placed_at, filled_at = :filled_at,
			cancelled_at = :cancelled_at, updated_at = :updated_at,
			version = :version
		WHERE correlation_id = :correlation_id AND version = :old_version`

	pgSaga := r.toPostgres(saga)

	res, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"correlation_id": pgSaga.CorrelationID,
		"current_state":  pgSaga.CurrentState,
		"submitted_at":   pgSaga.SubmittedAt,
		"placed_at":      pgSaga.PlacedAt,
		"filled_at":      pgSaga.FilledAt,
		"cancelled_at":   pgSaga.CancelledAt,
		"updated_at":     pgSaga.UpdatedAt,
		"version":        pgSaga.Version,
		"old_version":    pgSaga.Version - 1,
	})
	if err != nil {
		return errors.Wrap(err, "failed to update saga")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to check update result")
	}

	if affected == 0 {
		return domain.ErrVersionConflict
	}

	return nil
}

func (r *PostgresSagaRepository) toPostgres(saga *domain.OrderSaga) *postgresSaga {
	return &postgresSaga{
		CorrelationID: saga.CorrelationID.String(),
		CurrentState:  string(saga.CurrentState),
		OrderID:       saga.OrderID.String(),
		SubmittedAt:   saga.SubmittedAt,
		PlacedAt:      saga.PlacedAt,
		FilledAt:      saga.FilledAt,
		CancelledAt:   saga.CancelledAt,
		CreatedAt:     saga.Timestamps.CreatedAt,
		UpdatedAt:     saga.Timestamps.UpdatedAt,
		Version:       saga.Version.Value,
	}
}

func (r *PostgresSagaRepository) toDomain(pgSaga *postgresSaga) *domain.OrderSaga {
	return &domain.OrderSaga{
		CorrelationID: models.ID(pgSaga.CorrelationID),
		CurrentState:  domain.SagaState(pgSaga.CurrentState),
		OrderID:       models.ID(pgSaga.OrderID),
		SubmittedAt:   pgSaga.SubmittedAt,
		PlacedAt:      pgSaga.PlacedAt,
		FilledAt:      pgSaga.FilledAt,
		CancelledAt:   pgSaga.CancelledAt,
		Timestamps: models.Timestamps{
			CreatedAt: pgSaga.CreatedAt,
			UpdatedAt: pgSaga.UpdatedAt,
		},
		Version: models.Version{Value: pgSaga.Version},
	}
}
