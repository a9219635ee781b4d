package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradeflow/ordering-system/shared/events"
	"github.com/tradeflow/ordering-system/shared/messaging"
	"github.com/tradeflow/ordering-system/shared/models"
)

func submittedEvent(orderID models.ID) *events.Event {
	return events.NewEvent(orderID, events.OrderSubmittedEvent, messaging.OrderSubmitted{
		OrderID:    orderID,
		UserID:     "user-1",
		CurrencyID: "BTC",
		Price:      50000,
		OrderType:  messaging.OrderTypeBuy,
		Quantity:   0.5,
		CreatedAt:  time.Now(),
	}).WithCorrelationID(orderID)
}

func placedEvent(orderID models.ID) *events.Event {
	return events.NewEvent(orderID, events.OrderPlacedEvent, messaging.OrderPlaced{
		OrderID:    orderID,
		UserID:     "user-1",
		CurrencyID: "BTC",
		Price:      50000,
		OrderType:  messaging.OrderTypeBuy,
		Quantity:   0.5,
		CreatedAt:  time.Now(),
	}).WithCorrelationID(orderID)
}

func filledEvent(orderID models.ID) *events.Event {
	return events.NewEvent(orderID, events.OrderFilledEvent, messaging.OrderFilled{
		OrderID:    orderID,
		UserID:     "user-1",
		CurrencyID: "BTC",
		Price:      50000,
		OrderType:  messaging.OrderTypeBuy,
		Quantity:   0.5,
		CreatedAt:  time.Now(),
	}).WithCorrelationID(orderID)
}

func cancelledEvent(orderID models.ID) *events.Event {
	return events.NewEvent(orderID, events.OrderCancelledEvent, messaging.OrderCancelled{
		OrderID:    orderID,
		UserID:     "user-1",
		CurrencyID: "BTC",
		Price:      50000,
		OrderType:  messaging.OrderTypeBuy,
		Quantity:   0.5,
		CreatedAt:  time.Now(),
	}).WithCorrelationID(orderID)
}

func expiredEvent(orderID models.ID) *events.Event {
	return events.NewEvent(orderID, events.OrderExpiredEvent, messaging.OrderExpired{
		OrderID:    orderID,
		UserID:     "user-1",
		CurrencyID: "BTC",
		Price:      50000,
		OrderType:  messaging.OrderTypeBuy,
		Quantity:   0.5,
		CreatedAt:  time.Now(),
	}).WithCorrelationID(orderID)
}

func TestOrderSaga_FullLifecycle_Filled(t *testing.T) {
	orderID := models.GenerateUUID()
	saga := NewOrderSaga(orderID)
	now := time.Now()

	// Submitted
	effects, err := saga.Apply(submittedEvent(orderID), now)
	require.NoError(t, err)
	assert.Equal(t, SagaStateSubmitted, saga.CurrentState)
	assert.Equal(t, orderID, saga.OrderID)
	require.NotNil(t, saga.SubmittedAt)
	assert.Equal(t, models.StripSeconds(now), *saga.SubmittedAt)
	assert.Empty(t, effects.Publish)
	assert.Nil(t, effects.ScheduleExpiry)
	assert.Equal(t, 1, saga.Version.Value)

	// Placed: republishes and arms the expiry timer
	effects, err = saga.Apply(placedEvent(orderID), now)
	require.NoError(t, err)
	assert.Equal(t, SagaStatePlaced, saga.CurrentState)
	require.NotNil(t, saga.PlacedAt)
	require.Len(t, effects.Publish, 1)
	assert.Equal(t, events.Topic(events.OrderPlacedEvent), effects.Publish[0].Topic)
	assert.Equal(t, orderID, effects.Publish[0].CorrelationID)
	require.NotNil(t, effects.ScheduleExpiry)
	assert.Equal(t, events.Topic(events.OrderExpiredEvent), effects.ScheduleExpiry.Topic)
	assert.False(t, effects.CancelExpiry)
	assert.Equal(t, 2, saga.Version.Value)

	// Filled: republishes and cancels the timer
	effects, err = saga.Apply(filledEvent(orderID), now)
	require.NoError(t, err)
	assert.Equal(t, SagaStateFilled, saga.CurrentState)
	require.NotNil(t, saga.FilledAt)
	assert.Nil(t, saga.CancelledAt)
	require.Len(t, effects.Publish, 1)
	assert.Equal(t, events.Topic(events.OrderFilledEvent), effects.Publish[0].Topic)
	assert.True(t, effects.CancelExpiry)
	assert.True(t, saga.CurrentState.Terminal())
	assert.Equal(t, 3, saga.Version.Value)
}

func TestOrderSaga_PlacedExpires_Cancelled(t *testing.T) {
	orderID := models.GenerateUUID()
	saga := NewOrderSaga(orderID)
	now := time.Now()

	_, err := saga.Apply(submittedEvent(orderID), now)
	require.NoError(t, err)
	_, err = saga.Apply(placedEvent(orderID), now)
	require.NoError(t, err)

	effects, err := saga.Apply(expiredEvent(orderID), now)
	require.NoError(t, err)
	assert.Equal(t, SagaStateCancelled, saga.CurrentState)
	require.NotNil(t, saga.CancelledAt)
	assert.Nil(t, saga.FilledAt)
	assert.True(t, effects.CancelExpiry)

	// Expiration is announced as a cancellation, not as order.expired
	require.Len(t, effects.Publish, 1)
	assert.Equal(t, events.Topic(events.OrderCancelledEvent), effects.Publish[0].Topic)
}

func TestOrderSaga_UserCancel(t *testing.T) {
	orderID := models.GenerateUUID()
	saga := NewOrderSaga(orderID)
	now := time.Now()

	_, err := saga.Apply(submittedEvent(orderID), now)
	require.NoError(t, err)
	_, err = saga.Apply(placedEvent(orderID), now)
	require.NoError(t, err)

	effects, err := saga.Apply(cancelledEvent(orderID), now)
	require.NoError(t, err)
	assert.Equal(t, SagaStateCancelled, saga.CurrentState)
	require.Len(t, effects.Publish, 1)
	assert.Equal(t, events.Topic(events.OrderCancelledEvent), effects.Publish[0].Topic)
	assert.True(t, effects.CancelExpiry)
}

func TestOrderSaga_DirectPlaced_DoesNotSchedule(t *testing.T) {
	orderID := models.GenerateUUID()
	saga := NewOrderSaga(orderID)

	effects, err := saga.Apply(placedEvent(orderID), time.Now())
	require.NoError(t, err)
	assert.Equal(t, SagaStatePlaced, saga.CurrentState)
	assert.Equal(t, orderID, saga.OrderID)
	require.Len(t, effects.Publish, 1)
	assert.Equal(t, events.Topic(events.OrderPlacedEvent), effects.Publish[0].Topic)
	assert.Nil(t, effects.ScheduleExpiry)
	assert.False(t, effects.CancelExpiry)
}

func TestOrderSaga_IllegalTransitions(t *testing.T) {
	orderID := models.GenerateUUID()
	now := time.Now()

	tests := []struct {
		name  string
		setup func(saga *OrderSaga)
		event *events.Event
	}{
		{
			name:  "fill with no instance",
			setup: func(saga *OrderSaga) {},
			event: filledEvent(orderID),
		},
		{
			name:  "cancel with no instance",
			setup: func(saga *OrderSaga) {},
			event: cancelledEvent(orderID),
		},
		{
			name:  "expire with no instance",
			setup: func(saga *OrderSaga) {},
			event: expiredEvent(orderID),
		},
		{
			name: "fill while submitted",
			setup: func(saga *OrderSaga) {
				_, err := saga.Apply(submittedEvent(orderID), now)
				require.NoError(t, err)
			},
			event: filledEvent(orderID),
		},
		{
			name: "submit twice",
			setup: func(saga *OrderSaga) {
				_, err := saga.Apply(submittedEvent(orderID), now)
				require.NoError(t, err)
			},
			event: submittedEvent(orderID),
		},
		{
			name: "place twice",
			setup: func(saga *OrderSaga) {
				_, err := saga.Apply(submittedEvent(orderID), now)
				require.NoError(t, err)
				_, err = saga.Apply(placedEvent(orderID), now)
				require.NoError(t, err)
			},
			event: placedEvent(orderID),
		},
		{
			name: "fill after cancel",
			setup: func(saga *OrderSaga) {
				_, err := saga.Apply(submittedEvent(orderID), now)
				require.NoError(t, err)
				_, err = saga.Apply(placedEvent(orderID), now)
				require.NoError(t, err)
				_, err = saga.Apply(cancelledEvent(orderID), now)
				require.NoError(t, err)
			},
			event: filledEvent(orderID),
		},
		{
			name: "expire after fill",
			setup: func(saga *OrderSaga) {
				_, err := saga.Apply(submittedEvent(orderID), now)
				require.NoError(t, err)
				_, err = saga.Apply(placedEvent(orderID), now)
				require.NoError(t, err)
				_, err = saga.Apply(filledEvent(orderID), now)
				require.NoError(t, err)
			},
			event: expiredEvent(orderID),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saga := NewOrderSaga(orderID)
			tt.setup(saga)

			stateBefore := saga.CurrentState
			versionBefore := saga.Version.Value

			effects, err := saga.Apply(tt.event, now)

			assert.ErrorIs(t, err, ErrIllegalTransition)
			assert.Equal(t, stateBefore, saga.CurrentState)
			assert.Equal(t, versionBefore, saga.Version.Value)
			assert.Empty(t, effects.Publish)
			assert.Nil(t, effects.ScheduleExpiry)
			assert.False(t, effects.CancelExpiry)
		})
	}
}

func TestOrderSaga_TimestampsSetOncePerTransition(t *testing.T) {
	orderID := models.GenerateUUID()
	saga := NewOrderSaga(orderID)

	first := time.Date(2026, 3, 1, 10, 30, 45, 0, time.UTC)
	later := first.Add(2 * time.Hour)

	_, err := saga.Apply(submittedEvent(orderID), first)
	require.NoError(t, err)
	_, err = saga.Apply(placedEvent(orderID), later)
	require.NoError(t, err)

	// Seconds are stripped and each timestamp keeps the time of its own
	// transition.
	assert.Equal(t, time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC), *saga.SubmittedAt)
	assert.Equal(t, time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC), *saga.PlacedAt)
	assert.Nil(t, saga.FilledAt)
	assert.Nil(t, saga.CancelledAt)
}

func TestSagaState_Terminal(t *testing.T) {
	assert.False(t, SagaStateInitial.Terminal())
	assert.False(t, SagaStateSubmitted.Terminal())
	assert.False(t, SagaStatePlaced.Terminal())
	assert.True(t, SagaStateFilled.Terminal())
	assert.True(t, SagaStateCancelled.Terminal())
}

func TestSagaState_String(t *testing.T) {
	assert.Equal(t, "initial", SagaStateInitial.String())
	assert.Equal(t, "placed", SagaStatePlaced.String())
}
