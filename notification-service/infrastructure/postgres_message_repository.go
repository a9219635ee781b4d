package infrastructure

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/tradeflow/ordering-system/notification-service/domain"
	"github.com/tradeflow/ordering-system/shared/models"
)

var _ domain.MessageRepository = (*PostgresMessageRepository)(nil)

// PostgresMessageRepository implements MessageRepository using PostgreSQL
type PostgresMessageRepository struct {
	db *sqlx.DB
}

// NewPostgresMessageRepository creates a new PostgresMessageRepository
func NewPostgresMessageRepository(db *sqlx.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

type postgresMessage struct {
	ID          string     `db:"id"`
	UserID      string     `db:"user_id"`
	OrderID     string     `db:"order_id"`
	PhoneNumber string     `db:"phone_number"`
	Text        string     `db:"text"`
	SentTime    *time.Time `db:"sent_time"`
	Attempts    int        `db:"attempts"`
	AbandonedAt *time.Time `db:"abandoned_at"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

// Save persists the message, inserting on first save and updating delivery
// state afterwards
func (r *PostgresMessageRepository) Save(ctx context.Context, message *domain.Message) error {
	query := `
		INSERT INTO messages (id, user_id, order_id, phone_number, text, sent_time, attempts, abandoned_at, created_at, updated_at)
		VALUES (:id, :user_id, :order_id, :phone_number, :text, :sent_time, :attempts, :abandoned_at, :created_at, :updated_at)
		ON CONFLICT (id) DO UPDATE
		SET sent_time = EXCLUDED.sent_time, attempts = EXCLUDED.attempts,
			abandoned_at = EXCLUDED.abandoned_at, updated_at = EXCLUDED.updated_at`

	_, err := r.db.NamedExecContext(ctx, query, toPostgresMessage(message))
	if err != nil {
		return errors.Wrap(err, "failed to save message")
	}

	return nil
}

// FindPending returns messages not yet sent and not abandoned, oldest
// first. An empty userID returns the pending set for all users.
func (r *PostgresMessageRepository) FindPending(ctx context.Context, userID string) ([]*domain.Message, error) {
	query := `
		SELECT id, user_id, order_id, phone_number, text, sent_time, attempts, abandoned_at, created_at, updated_at
		FROM messages
		WHERE sent_time IS NULL AND abandoned_at IS NULL
		AND ($1 = '' OR user_id = $1)
		ORDER BY created_at ASC`

	var rows []postgresMessage
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, errors.Wrap(err, "failed to find pending messages")
	}

	messages := make([]*domain.Message, 0, len(rows))
	for i := range rows {
		messages = append(messages, toDomainMessage(&rows[i]))
	}

	return messages, nil
}

func toPostgresMessage(m *domain.Message) *postgresMessage {
	return &postgresMessage{
		ID:          m.ID.String(),
		UserID:      m.UserID,
		OrderID:     m.OrderID.String(),
		PhoneNumber: m.PhoneNumber,
		Text:        m.Text,
		SentTime:    m.SentTime,
		Attempts:    m.Attempts,
		AbandonedAt: m.AbandonedAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toDomainMessage(row *postgresMessage) *domain.Message {
	return &domain.Message{
		ID:          models.ID(row.ID),
		UserID:      row.UserID,
		OrderID:     models.ID(row.OrderID),
		PhoneNumber: row.PhoneNumber,
		Text:        row.Text,
		SentTime:    row.SentTime,
		Attempts:    row.Attempts,
		AbandonedAt: row.AbandonedAt,
		Timestamps: models.Timestamps{
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		},
	}
}
