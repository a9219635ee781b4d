package application

import (
	"context"
	"log"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/tradeflow/ordering-system/ordering-service/domain"
	"github.com/tradeflow/ordering-system/shared/events"
	"github.com/tradeflow/ordering-system/shared/models"
	"github.com/tradeflow/ordering-system/shared/telemetry"
)

// maxConflictRetries bounds the reload-and-reapply loop when two events for
// the same correlation id race on the version check.
const maxConflictRetries = 3

// DefaultExpiryDelay is how long a placed order may sit without a fill or
// cancel before it expires.
const DefaultExpiryDelay = time.Hour

// RunOrderSaga advances the order saga with one incoming event: it loads or
// creates the instance, validates and applies the transition, persists the
// new state under an optimistic version check, and only then performs the
// transition's side effects.
//
// Per-correlation serialization relies on the version check: of two racing
// events for the same order, one save loses, reloads, and is then either
// applied against the fresh state or rejected as an illegal transition.
// Scheduler deliveries go through the same path, so an expiry racing a fill
// can never both succeed.
type RunOrderSaga struct {
	sagas       domain.SagaRepository
	publisher   events.Publisher
	scheduler   domain.Scheduler
	expiryDelay time.Duration
}

// NewRunOrderSaga creates a new RunOrderSaga use case
func NewRunOrderSaga(
	sagas domain.SagaRepository,
	publisher events.Publisher,
	scheduler domain.Scheduler,
	expiryDelay time.Duration,
) *RunOrderSaga {
	if expiryDelay <= 0 {
		expiryDelay = DefaultExpiryDelay
	}
	return &RunOrderSaga{
		sagas:       sagas,
		publisher:   publisher,
		scheduler:   scheduler,
		expiryDelay: expiryDelay,
	}
}

// Execute applies one event to its saga instance. An illegal transition is
// a rejection, not a failure: it is logged and counted, the instance stays
// unchanged, and the message is considered handled. Collaborator failures
// are returned so the consumer boundary can retry or dead-letter.
func (uc *RunOrderSaga) Execute(ctx context.Context, event *events.Event) error {
	ctx, span := telemetry.StartSpan(ctx, "saga."+event.Topic.String())
	defer span.End()

	correlationID, err := correlationIDOf(event)
	if err != nil {
		return events.Fatal(err)
	}

	for attempt := 0; ; attempt++ {
		saga, err := uc.sagas.Find(ctx, correlationID)
		if err != nil {
			return errors.Wrap(err, "failed to load saga")
		}

		if saga == nil {
			saga = domain.NewOrderSaga(correlationID)
		}

		effects, err := saga.Apply(event, time.Now())
		if errors.Is(err, domain.ErrIllegalTransition) {
			uc.reject(ctx, event, err)
			return nil
		}
		if err != nil {
			// A payload the transition cannot decode will not decode on
			// redelivery either.
			return events.Fatal(err)
		}

		err = uc.sagas.Save(ctx, saga)
		if err == nil {
			return uc.applyEffects(ctx, saga, effects)
		}

		if !errors.Is(err, domain.ErrVersionConflict) {
			return errors.Wrap(err, "failed to save saga")
		}

		if attempt >= maxConflictRetries {
			return errors.Wrapf(err, "gave up after %d conflict retries", attempt)
		}
	}
}

func (uc *RunOrderSaga) applyEffects(ctx context.Context, saga *domain.OrderSaga, effects domain.Effects) error {
	if effects.CancelExpiry {
		if err := uc.scheduler.Unschedule(ctx, saga.CorrelationID); err != nil {
			return errors.Wrap(err, "failed to unschedule expiry")
		}
	}

	if effects.ScheduleExpiry != nil {
		if err := uc.scheduler.Schedule(ctx, saga.CorrelationID, uc.expiryDelay, effects.ScheduleExpiry); err != nil {
			return errors.Wrap(err, "failed to schedule expiry")
		}
	}

	if len(effects.Publish) > 0 {
		if err := uc.publisher.Publish(ctx, effects.Publish...); err != nil {
			return errors.Wrap(err, "failed to publish saga events")
		}
	}

	return nil
}

// reject records an illegal transition. Duplicate and out-of-order
// deliveries land here; nothing is republished for them.
func (uc *RunOrderSaga) reject(ctx context.Context, event *events.Event, err error) {
	log.Printf("saga rejected %s for %s: %v", event.Topic, event.CorrelationID, err)

	telemetry.RecordCounter(ctx, "saga_transitions_rejected_total", "Saga events rejected as illegal transitions", 1,
		attribute.String("topic", event.Topic.String()),
	)
}

// correlationIDOf resolves the saga key for an event: the envelope's
// correlation id when present, otherwise the order id in the payload.
func correlationIDOf(event *events.Event) (models.ID, error) {
	if event.CorrelationID != "" {
		return event.CorrelationID, nil
	}

	var payload struct {
		OrderID models.ID `json:"order_id"`
	}
	if err := event.UnmarshalPayload(&payload); err != nil {
		return "", errors.Wrap(err, "failed to extract order id")
	}

	if payload.OrderID == "" {
		return "", errors.New("event has no correlation id or order id")
	}

	return payload.OrderID, nil
}
