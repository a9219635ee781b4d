package application

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tradeflow/ordering-system/ordering-service/domain"
	"github.com/tradeflow/ordering-system/ordering-service/mocks"
	"github.com/tradeflow/ordering-system/shared/events"
	"github.com/tradeflow/ordering-system/shared/messaging"
	"github.com/tradeflow/ordering-system/shared/models"
)

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

func submittedSaga(orderID models.ID) *domain.OrderSaga {
	at := time.Now()
	return &domain.OrderSaga{
		CorrelationID: orderID,
		CurrentState:  domain.SagaStateSubmitted,
		OrderID:       orderID,
		SubmittedAt:   &at,
		Timestamps:    models.NewTimestamps(),
		Version:       models.Version{Value: 1},
	}
}

func placedSaga(orderID models.ID) *domain.OrderSaga {
	saga := submittedSaga(orderID)
	at := time.Now()
	saga.CurrentState = domain.SagaStatePlaced
	saga.PlacedAt = &at
	saga.Version = models.Version{Value: 2}
	return saga
}

func TestRunOrderSaga_PlacedSchedulesExpiryAndPublishes(t *testing.T) {
	orderID := models.GenerateUUID()

	repo := mocks.NewMockSagaRepository(t)
	publisher := mocks.NewMockPublisher(t)
	scheduler := mocks.NewMockScheduler(t)

	repo.EXPECT().Find(mock.Anything, orderID).Return(submittedSaga(orderID), nil).Once()
	repo.EXPECT().Save(mock.Anything, mock.MatchedBy(func(saga *domain.OrderSaga) bool {
		return saga.CurrentState == domain.SagaStatePlaced && saga.Version.Value == 2
	})).Return(nil).Once()
	scheduler.EXPECT().Schedule(mock.Anything, orderID, time.Hour, mock.MatchedBy(func(evt *events.Event) bool {
		return evt.Topic == events.Topic(events.OrderExpiredEvent)
	})).Return(nil).Once()
	publisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(evt *events.Event) bool {
		return evt.Topic == events.Topic(events.OrderPlacedEvent)
	})).Return(nil).Once()

	useCase := NewRunOrderSaga(repo, publisher, scheduler, time.Hour)

	err := useCase.Execute(context.Background(), placedEvent(orderID))
	assert.NoError(t, err)
}

func TestRunOrderSaga_FilledCancelsExpiry(t *testing.T) {
	orderID := models.GenerateUUID()

	repo := mocks.NewMockSagaRepository(t)
	publisher := mocks.NewMockPublisher(t)
	scheduler := mocks.NewMockScheduler(t)

	repo.EXPECT().Find(mock.Anything, orderID).Return(placedSaga(orderID), nil).Once()
	repo.EXPECT().Save(mock.Anything, mock.MatchedBy(func(saga *domain.OrderSaga) bool {
		return saga.CurrentState == domain.SagaStateFilled && saga.Version.Value == 3
	})).Return(nil).Once()
	scheduler.EXPECT().Unschedule(mock.Anything, orderID).Return(nil).Once()
	publisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(evt *events.Event) bool {
		return evt.Topic == events.Topic(events.OrderFilledEvent)
	})).Return(nil).Once()

	useCase := NewRunOrderSaga(repo, publisher, scheduler, time.Hour)

	err := useCase.Execute(context.Background(), filledEvent(orderID))
	assert.NoError(t, err)
}

func TestRunOrderSaga_NoInstanceCreatesOne(t *testing.T) {
	orderID := models.GenerateUUID()

	repo := mocks.NewMockSagaRepository(t)
	publisher := mocks.NewMockPublisher(t)
	scheduler := mocks.NewMockScheduler(t)

	// The direct placed path publishes but never arms the timer.
	repo.EXPECT().Find(mock.Anything, orderID).Return(nil, nil).Once()
	repo.EXPECT().Save(mock.Anything, mock.MatchedBy(func(saga *domain.OrderSaga) bool {
		return saga.CurrentState == domain.SagaStatePlaced && saga.Version.Value == 1
	})).Return(nil).Once()
	publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil).Once()

	useCase := NewRunOrderSaga(repo, publisher, scheduler, time.Hour)

	err := useCase.Execute(context.Background(), placedEvent(orderID))
	assert.NoError(t, err)
}

func TestRunOrderSaga_IllegalTransitionIsRejectedNotFailed(t *testing.T) {
	orderID := models.GenerateUUID()

	repo := mocks.NewMockSagaRepository(t)
	publisher := mocks.NewMockPublisher(t)
	scheduler := mocks.NewMockScheduler(t)

	// A fill for an unknown order: no instance, no save, no side effects.
	repo.EXPECT().Find(mock.Anything, orderID).Return(nil, nil).Once()

	useCase := NewRunOrderSaga(repo, publisher, scheduler, time.Hour)

	err := useCase.Execute(context.Background(), filledEvent(orderID))
	assert.NoError(t, err)
}

func TestRunOrderSaga_VersionConflictRetries(t *testing.T) {
	orderID := models.GenerateUUID()

	repo := mocks.NewMockSagaRepository(t)
	publisher := mocks.NewMockPublisher(t)
	scheduler := mocks.NewMockScheduler(t)

	// First attempt loses the race; the reload sees fresh state and the
	// second save wins.
	repo.EXPECT().Find(mock.Anything, orderID).RunAndReturn(
		func(ctx context.Context, id models.ID) (*domain.OrderSaga, error) {
			return submittedSaga(orderID), nil
		}).Twice()
	repo.EXPECT().Save(mock.Anything, mock.Anything).Return(domain.ErrVersionConflict).Once()
	repo.EXPECT().Save(mock.Anything, mock.Anything).Return(nil).Once()
	scheduler.EXPECT().Schedule(mock.Anything, orderID, time.Hour, mock.Anything).Return(nil).Once()
	publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil).Once()

	useCase := NewRunOrderSaga(repo, publisher, scheduler, time.Hour)

	err := useCase.Execute(context.Background(), placedEvent(orderID))
	assert.NoError(t, err)
}

func TestRunOrderSaga_ConflictThenTerminalStateRejects(t *testing.T) {
	orderID := models.GenerateUUID()

	repo := mocks.NewMockSagaRepository(t)
	publisher := mocks.NewMockPublisher(t)
	scheduler := mocks.NewMockScheduler(t)

	// An expiry and a fill race: the fill here loses the save, reloads, and
	// finds the saga already cancelled. The fill is rejected, nothing is
	// republished.
	cancelled := placedSaga(orderID)
	repo.EXPECT().Find(mock.Anything, orderID).Return(placedSaga(orderID), nil).Once()
	repo.EXPECT().Save(mock.Anything, mock.Anything).Return(domain.ErrVersionConflict).Once()
	cancelled.CurrentState = domain.SagaStateCancelled
	cancelled.Version = models.Version{Value: 3}
	repo.EXPECT().Find(mock.Anything, orderID).Return(cancelled, nil).Once()

	useCase := NewRunOrderSaga(repo, publisher, scheduler, time.Hour)

	err := useCase.Execute(context.Background(), filledEvent(orderID))
	assert.NoError(t, err)
}

func TestRunOrderSaga_GivesUpAfterBoundedConflictRetries(t *testing.T) {
	orderID := models.GenerateUUID()

	repo := mocks.NewMockSagaRepository(t)
	publisher := mocks.NewMockPublisher(t)
	scheduler := mocks.NewMockScheduler(t)

	repo.EXPECT().Find(mock.Anything, orderID).RunAndReturn(
		func(ctx context.Context, id models.ID) (*domain.OrderSaga, error) {
			return submittedSaga(orderID), nil
		}).Times(maxConflictRetries + 1)
	repo.EXPECT().Save(mock.Anything, mock.Anything).Return(domain.ErrVersionConflict).Times(maxConflictRetries + 1)

	useCase := NewRunOrderSaga(repo, publisher, scheduler, time.Hour)

	err := useCase.Execute(context.Background(), placedEvent(orderID))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrVersionConflict)
	assert.False(t, events.IsFatal(err))
}

func TestRunOrderSaga_FindErrorIsRetryable(t *testing.T) {
	orderID := models.GenerateUUID()

	repo := mocks.NewMockSagaRepository(t)
	publisher := mocks.NewMockPublisher(t)
	scheduler := mocks.NewMockScheduler(t)

	repo.EXPECT().Find(mock.Anything, orderID).Return(nil, errors.New("connection refused")).Once()

	useCase := NewRunOrderSaga(repo, publisher, scheduler, time.Hour)

	err := useCase.Execute(context.Background(), placedEvent(orderID))
	require.Error(t, err)
	assert.False(t, events.IsFatal(err))
}

func TestRunOrderSaga_MissingCorrelationIsFatal(t *testing.T) {
	repo := mocks.NewMockSagaRepository(t)
	publisher := mocks.NewMockPublisher(t)
	scheduler := mocks.NewMockScheduler(t)

	useCase := NewRunOrderSaga(repo, publisher, scheduler, time.Hour)

	event := events.NewEvent("", events.OrderPlacedEvent, map[string]interface{}{"foo": "bar"})

	err := useCase.Execute(context.Background(), event)
	require.Error(t, err)
	assert.True(t, events.IsFatal(err))
}

func TestCorrelationIDOf_FallsBackToPayloadOrderID(t *testing.T) {
	orderID := models.GenerateUUID()

	event := events.NewEvent(orderID, events.OrderPlacedEvent, messaging.OrderPlaced{OrderID: orderID})

	resolved, err := correlationIDOf(event)
	require.NoError(t, err)
	assert.Equal(t, orderID, resolved)
}
