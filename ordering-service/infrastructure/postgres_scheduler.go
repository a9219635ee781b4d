package infrastructure

import (
	"context"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/tradeflow/ordering-system/ordering-service/domain"
	"github.com/tradeflow/ordering-system/shared/events"
	"github.com/tradeflow/ordering-system/shared/models"
	"github.com/tradeflow/ordering-system/shared/telemetry"
)

var _ domain.Scheduler = (*PostgresScheduler)(nil)

// PostgresScheduler implements durable delayed event delivery on a table of
// scheduled messages. One row per correlation id: scheduling again replaces
// the pending delivery, and rows survive process restarts.
type PostgresScheduler struct {
	db *sqlx.DB
}

// NewPostgresScheduler creates a new PostgresScheduler
func NewPostgresScheduler(db *sqlx.DB) *PostgresScheduler {
	return &PostgresScheduler{db: db}
}

type postgresSchedule struct {
	CorrelationID string    `db:"correlation_id"`
	Topic         string    `db:"topic"`
	Event         []byte    `db:"event"`
	DeliverAt     time.Time `db:"deliver_at"`
	CreatedAt     time.Time `db:"created_at"`
}

// Schedule arranges delivery of the event after the delay elapses
func (s *PostgresScheduler) Schedule(ctx context.Context, correlationID models.ID, delay time.Duration, event *events.Event) error {
	body, err := event.ToJSON()
	if err != nil {
		return errors.Wrap(err, "failed to marshal scheduled event")
	}

	query := `
		INSERT INTO scheduled_messages (correlation_id, topic, event, deliver_at, created_at)
		VALUES (:correlation_id, :topic, :event, :deliver_at, :created_at)
		ON CONFLICT (correlation_id) DO UPDATE
		SET topic = EXCLUDED.topic, event = EXCLUDED.event,
			deliver_at = EXCLUDED.deliver_at, created_at = EXCLUDED.created_at`

	_, err = s.db.NamedExecContext(ctx, query, &postgresSchedule{
		CorrelationID: correlationID.String(),
		Topic:         event.Topic.String(),
		Event:         body,
		DeliverAt:     time.Now().Add(delay),
		CreatedAt:     time.Now(),
	})
	if err != nil {
		return errors.Wrap(err, "failed to schedule message")
	}

	return nil
}

// Unschedule cancels the pending delivery for the correlation id. Cancelling
// an absent or already fired schedule is a no-op.
func (s *PostgresScheduler) Unschedule(ctx context.Context, correlationID models.ID) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM scheduled_messages WHERE correlation_id = $1",
		correlationID.String())
	if err != nil {
		return errors.Wrap(err, "failed to unschedule message")
	}

	return nil
}

// SchedulerPoller delivers due scheduled messages back onto the bus, so a
// timer firing takes the same consumer path as a live event and contends on
// the same saga version check.
type SchedulerPoller struct {
	db        *sqlx.DB
	publisher events.Publisher
	interval  time.Duration
	batchSize int
}

// NewSchedulerPoller creates a new SchedulerPoller
func NewSchedulerPoller(db *sqlx.DB, publisher events.Publisher, interval time.Duration) *SchedulerPoller {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &SchedulerPoller{
		db:        db,
		publisher: publisher,
		interval:  interval,
		batchSize: 50,
	}
}

// Start runs the poller until the context is cancelled
func (p *SchedulerPoller) Start(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.deliverDue(ctx); err != nil {
				log.Printf("scheduler poller: %v", err)
			}
		}
	}
}

// deliverDue claims due rows and publishes them. Rows are deleted only after
// a successful publish; a failure rolls the claim back and the next tick
// retries. A delivery racing an Unschedule resolves at the saga, which
// rejects the stale event.
func (p *SchedulerPoller) deliverDue(ctx context.Context) error {
	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	query := `
		SELECT correlation_id, topic, event, deliver_at, created_at
		FROM scheduled_messages
		WHERE deliver_at <= $1
		ORDER BY deliver_at ASC
		LIMIT $2
		FOR UPDATE SKIP LOCKED`

	var due []postgresSchedule
	if err := tx.SelectContext(ctx, &due, query, time.Now(), p.batchSize); err != nil {
		return errors.Wrap(err, "failed to select due messages")
	}

	if len(due) == 0 {
		return nil
	}

	for _, row := range due {
		event, err := events.FromJSON(row.Event)
		if err != nil {
			// Unparseable rows would wedge the schedule forever; drop and
			// account for them instead.
			log.Printf("scheduler poller: dropping undecodable schedule for %s: %v", row.CorrelationID, err)
			telemetry.RecordCounter(ctx, "scheduled_messages_dropped_total", "Scheduled messages dropped as undecodable", 1)
		} else if err := p.publisher.Publish(ctx, event); err != nil {
			return errors.Wrapf(err, "failed to publish scheduled message for %s", row.CorrelationID)
		} else {
			telemetry.RecordCounter(ctx, "scheduled_messages_delivered_total", "Scheduled messages delivered to the bus", 1,
				attribute.String("topic", row.Topic),
			)
		}

		if _, err := tx.ExecContext(ctx,
			"DELETE FROM scheduled_messages WHERE correlation_id = $1",
			row.CorrelationID); err != nil {
			return errors.Wrap(err, "failed to delete delivered schedule")
		}
	}

	return errors.Wrap(tx.Commit(), "failed to commit scheduled deliveries")
}
