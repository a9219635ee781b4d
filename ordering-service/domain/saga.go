package domain

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/tradeflow/ordering-system/shared/events"
	"github.com/tradeflow/ordering-system/shared/messaging"
	"github.com/tradeflow/ordering-system/shared/models"
)

// SagaState represents the lifecycle state of an order saga
type SagaState string

const (
	// SagaStateInitial is implicit: an instance that has not applied any
	// event yet. It is never persisted.
	SagaStateInitial   SagaState = ""
	SagaStateSubmitted SagaState = "submitted"
	SagaStatePlaced    SagaState = "placed"
	SagaStateFilled    SagaState = "filled"
	SagaStateCancelled SagaState = "cancelled"
)

// Terminal reports whether the state accepts no further events.
func (s SagaState) Terminal() bool {
	return s == SagaStateFilled || s == SagaStateCancelled
}

func (s SagaState) String() string {
	if s == SagaStateInitial {
		return "initial"
	}
	return string(s)
}

var (
	// ErrIllegalTransition is returned when an event arrives for a state
	// that does not accept it. The instance is left unchanged.
	ErrIllegalTransition = errors.New("illegal transition")

	// ErrVersionConflict is returned by SagaRepository.Save when another
	// writer updated the instance since it was loaded.
	ErrVersionConflict = errors.New("saga version conflict")
)

// OrderSaga is the per-order saga instance. CorrelationID equals the order
// id and is the concurrency key. Each lifecycle timestamp is set exactly
// once, by the transition that causes it, and never cleared.
type OrderSaga struct {
	CorrelationID models.ID
	CurrentState  SagaState
	OrderID       models.ID
	SubmittedAt   *time.Time
	PlacedAt      *time.Time
	FilledAt      *time.Time
	CancelledAt   *time.Time
	Timestamps    models.Timestamps
	Version       models.Version
}

// NewOrderSaga creates an unpersisted instance in the implicit initial
// state. Version zero marks it as never saved.
func NewOrderSaga(correlationID models.ID) *OrderSaga {
	return &OrderSaga{
		CorrelationID: correlationID,
		CurrentState:  SagaStateInitial,
		Timestamps:    models.NewTimestamps(),
		Version:       models.Version{Value: 0},
	}
}

// Effects describes the side effects of a transition. They are performed by
// the engine only after the new state has been persisted.
type Effects struct {
	Publish        []*events.Event
	ScheduleExpiry *events.Event
	CancelExpiry   bool
}

type transitionKey struct {
	from  SagaState
	topic events.Topic
}

type transitionFunc func(saga *OrderSaga, event *events.Event, now time.Time) (Effects, error)

// transitions is the full state machine: current state and incoming topic
// select the handler; every pair not listed is an illegal transition.
// Terminal states have no entries.
var transitions = map[transitionKey]transitionFunc{
	{SagaStateInitial, events.OrderSubmittedEvent}:   applyOrderSubmitted,
	{SagaStateInitial, events.OrderPlacedEvent}:      applyOrderPlacedDirect,
	{SagaStateSubmitted, events.OrderPlacedEvent}:    applyOrderPlaced,
	{SagaStatePlaced, events.OrderFilledEvent}:       applyOrderFilled,
	{SagaStatePlaced, events.OrderCancelledEvent}:    applyOrderCancelled,
	{SagaStatePlaced, events.OrderExpiredEvent}:      applyOrderExpired,
}

// Apply advances the saga with the given event. On an illegal transition the
// instance is unchanged and ErrIllegalTransition is returned. A successful
// transition bumps the version for the optimistic save that follows.
func (s *OrderSaga) Apply(event *events.Event, now time.Time) (Effects, error) {
	fn, ok := transitions[transitionKey{from: s.CurrentState, topic: event.Topic}]
	if !ok {
		return Effects{}, errors.Wrapf(ErrIllegalTransition, "state %s does not accept %s", s.CurrentState, event.Topic)
	}

	effects, err := fn(s, event, now)
	if err != nil {
		return Effects{}, err
	}

	s.Timestamps = s.Timestamps.Update()
	s.Version = s.Version.Update()

	return effects, nil
}

func applyOrderSubmitted(saga *OrderSaga, event *events.Event, now time.Time) (Effects, error) {
	var m messaging.OrderSubmitted
	if err := event.UnmarshalPayload(&m); err != nil {
		return Effects{}, errors.Wrap(err, "failed to unmarshal order submitted payload")
	}

	at := models.StripSeconds(now)
	saga.OrderID = m.OrderID
	saga.SubmittedAt = &at
	saga.CurrentState = SagaStateSubmitted

	return Effects{}, nil
}

// applyOrderPlacedDirect handles an instance whose first event is already
// OrderPlaced, e.g. a replayed or backfilled stream. This path does not arm
// the expiration timer; only the submitted-then-placed path does.
func applyOrderPlacedDirect(saga *OrderSaga, event *events.Event, now time.Time) (Effects, error) {
	var m messaging.OrderPlaced
	if err := event.UnmarshalPayload(&m); err != nil {
		return Effects{}, errors.Wrap(err, "failed to unmarshal order placed payload")
	}

	at := models.StripSeconds(now)
	saga.OrderID = m.OrderID
	saga.PlacedAt = &at
	saga.CurrentState = SagaStatePlaced

	placed := events.NewEvent(m.OrderID, events.OrderPlacedEvent, messaging.PlacedFromPlaced(m)).
		WithCorrelationID(saga.CorrelationID)

	return Effects{Publish: []*events.Event{placed}}, nil
}

func applyOrderPlaced(saga *OrderSaga, event *events.Event, now time.Time) (Effects, error) {
	var m messaging.OrderPlaced
	if err := event.UnmarshalPayload(&m); err != nil {
		return Effects{}, errors.Wrap(err, "failed to unmarshal order placed payload")
	}

	at := models.StripSeconds(now)
	saga.PlacedAt = &at
	saga.CurrentState = SagaStatePlaced

	placed := events.NewEvent(m.OrderID, events.OrderPlacedEvent, messaging.PlacedFromPlaced(m)).
		WithCorrelationID(saga.CorrelationID)

	expired := events.NewEvent(m.OrderID, events.OrderExpiredEvent, messaging.ExpiredFromPlaced(m)).
		WithCorrelationID(saga.CorrelationID)

	return Effects{
		Publish:        []*events.Event{placed},
		ScheduleExpiry: expired,
	}, nil
}

func applyOrderFilled(saga *OrderSaga, event *events.Event, now time.Time) (Effects, error) {
	var m messaging.OrderFilled
	if err := event.UnmarshalPayload(&m); err != nil {
		return Effects{}, errors.Wrap(err, "failed to unmarshal order filled payload")
	}

	at := models.StripSeconds(now)
	saga.FilledAt = &at
	saga.CurrentState = SagaStateFilled

	filled := events.NewEvent(m.OrderID, events.OrderFilledEvent, messaging.FilledFromFilled(m)).
		WithCorrelationID(saga.CorrelationID)

	return Effects{
		Publish:      []*events.Event{filled},
		CancelExpiry: true,
	}, nil
}

func applyOrderCancelled(saga *OrderSaga, event *events.Event, now time.Time) (Effects, error) {
	var m messaging.OrderCancelled
	if err := event.UnmarshalPayload(&m); err != nil {
		return Effects{}, errors.Wrap(err, "failed to unmarshal order cancelled payload")
	}

	at := models.StripSeconds(now)
	saga.CancelledAt = &at
	saga.CurrentState = SagaStateCancelled

	cancelled := events.NewEvent(m.OrderID, events.OrderCancelledEvent, messaging.CancelledFromCancelled(m)).
		WithCorrelationID(saga.CorrelationID)

	return Effects{
		Publish:      []*events.Event{cancelled},
		CancelExpiry: true,
	}, nil
}

func applyOrderExpired(saga *OrderSaga, event *events.Event, now time.Time) (Effects, error) {
	var m messaging.OrderExpired
	if err := event.UnmarshalPayload(&m); err != nil {
		return Effects{}, errors.Wrap(err, "failed to unmarshal order expired payload")
	}

	at := models.StripSeconds(now)
	saga.CancelledAt = &at
	saga.CurrentState = SagaStateCancelled

	cancelled := events.NewEvent(m.OrderID, events.OrderCancelledEvent, messaging.CancelledFromExpired(m)).
		WithCorrelationID(saga.CorrelationID)

	return Effects{
		Publish:      []*events.Event{cancelled},
		CancelExpiry: true,
	}, nil
}

// SagaRepository persists saga instances keyed by correlation id. Save
// enforces optimistic concurrency: it returns ErrVersionConflict when the
// stored version does not match the version the instance was loaded at.
type SagaRepository interface {
	Find(ctx context.Context, correlationID models.ID) (*OrderSaga, error)
	Save(ctx context.Context, saga *OrderSaga) error
}

// Scheduler arranges delayed event delivery. At most one schedule exists per
// correlation id; scheduling again replaces the pending one. Unschedule of
// an absent or already fired schedule is a no-op.
type Scheduler interface {
	Schedule(ctx context.Context, correlationID models.ID, delay time.Duration, event *events.Event) error
	Unschedule(ctx context.Context, correlationID models.ID) error
}
