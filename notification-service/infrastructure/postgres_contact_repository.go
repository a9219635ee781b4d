package infrastructure

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/tradeflow/ordering-system/notification-service/domain"
)

var _ domain.ContactRepository = (*PostgresContactRepository)(nil)

// PostgresContactRepository implements ContactRepository using PostgreSQL
type PostgresContactRepository struct {
	db *sqlx.DB
}

// NewPostgresContactRepository creates a new PostgresContactRepository
func NewPostgresContactRepository(db *sqlx.DB) *PostgresContactRepository {
	return &PostgresContactRepository{db: db}
}

// PhoneNumberFor returns the registered phone number for a user. Users
// without a contact row get ErrContactNotFound.
func (r *PostgresContactRepository) PhoneNumberFor(ctx context.Context, userID string) (string, error) {
	query := `SELECT phone_number FROM user_contacts WHERE user_id = $1`

	var phoneNumber string
	err := r.db.GetContext(ctx, &phoneNumber, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrContactNotFound
	}
	if err != nil {
		return "", errors.Wrap(err, "failed to find contact")
	}

	return phoneNumber, nil
}
