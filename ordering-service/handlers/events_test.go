package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tradeflow/ordering-system/ordering-service/application"
	"github.com/tradeflow/ordering-system/ordering-service/domain"
	"github.com/tradeflow/ordering-system/ordering-service/mocks"
	"github.com/tradeflow/ordering-system/shared/events"
	"github.com/tradeflow/ordering-system/shared/messaging"
	"github.com/tradeflow/ordering-system/shared/models"
)

type eventHandlerMocks struct {
	orders    *mocks.MockOrderRepository
	sagas     *mocks.MockSagaRepository
	scheduler *mocks.MockScheduler
	publisher *mocks.MockPublisher
	replier   *mocks.MockReplier
}

func newEventHandlers(t *testing.T) (*OrderingEventHandlers, *eventHandlerMocks) {
	m := &eventHandlerMocks{
		orders:    mocks.NewMockOrderRepository(t),
		sagas:     mocks.NewMockSagaRepository(t),
		scheduler: mocks.NewMockScheduler(t),
		publisher: mocks.NewMockPublisher(t),
		replier:   mocks.NewMockReplier(t),
	}

	submitOrder := application.NewSubmitOrder(m.orders, m.publisher)
	placeOrder := application.NewPlaceOrder(m.publisher)
	runSaga := application.NewRunOrderSaga(m.sagas, m.publisher, m.scheduler, time.Hour)

	return NewOrderingEventHandlers(submitOrder, placeOrder, runSaga, m.replier), m
}

func submitCommand(orderID models.ID) messaging.SubmitOrder {
	return messaging.SubmitOrder{
		OrderID:    orderID,
		UserID:     "user-1",
		CurrencyID: "BTC",
		Price:      50000,
		OrderType:  messaging.OrderTypeBuy,
		Quantity:   0.5,
	}
}

func TestOrderingEventHandlers_SubmitOrderRepliesOnSuccess(t *testing.T) {
	handlers, m := newEventHandlers(t)

	orderID := models.GenerateUUID()
	m.orders.EXPECT().Save(mock.Anything, mock.Anything).Return(nil).Once()
	m.publisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(event *events.Event) bool {
		return event.Topic.String() == events.OrderSubmittedEvent
	})).Return(nil).Once()
	m.replier.EXPECT().Reply(mock.Anything, mock.Anything, mock.MatchedBy(func(response *events.Event) bool {
		return response.Topic.String() == events.OrderSubmittedEvent && response.CorrelationID == orderID
	})).Return(nil).Once()

	request := events.NewEvent(orderID, events.SubmitOrderCommand, submitCommand(orderID))

	err := handlers.Handle(context.Background(), request)
	assert.NoError(t, err)
}

func TestOrderingEventHandlers_SubmitOrderFailureDoesNotReply(t *testing.T) {
	handlers, m := newEventHandlers(t)

	orderID := models.GenerateUUID()
	m.orders.EXPECT().Save(mock.Anything, mock.Anything).Return(errors.New("connection refused")).Once()

	request := events.NewEvent(orderID, events.SubmitOrderCommand, submitCommand(orderID))

	err := handlers.Handle(context.Background(), request)
	require.Error(t, err)
	m.replier.AssertNotCalled(t, "Reply", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderingEventHandlers_OrderSubmittedRecordsSagaBeforePlacing(t *testing.T) {
	handlers, m := newEventHandlers(t)

	orderID := models.GenerateUUID()
	var sequence []string

	m.sagas.EXPECT().Find(mock.Anything, orderID).Return(nil, nil).Once()
	m.sagas.EXPECT().Save(mock.Anything, mock.MatchedBy(func(saga *domain.OrderSaga) bool {
		return saga.CurrentState == domain.SagaStateSubmitted && saga.Version.Value == 1
	})).RunAndReturn(func(ctx context.Context, saga *domain.OrderSaga) error {
		sequence = append(sequence, "saga saved")
		return nil
	}).Once()
	m.publisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(event *events.Event) bool {
		return event.Topic.String() == events.OrderPlacedEvent
	})).RunAndReturn(func(ctx context.Context, evts ...*events.Event) error {
		sequence = append(sequence, "placed published")
		return nil
	}).Once()
	m.replier.EXPECT().Reply(mock.Anything, mock.Anything, mock.MatchedBy(func(response *events.Event) bool {
		return response.Topic.String() == events.OrderPlacedEvent
	})).Return(nil).Once()

	submitted := messaging.OrderSubmitted{
		OrderID:    orderID,
		UserID:     "user-1",
		CurrencyID: "BTC",
		Price:      50000,
		OrderType:  messaging.OrderTypeBuy,
		Quantity:   0.5,
		CreatedAt:  time.Now(),
	}
	request := events.NewEvent(orderID, events.OrderSubmittedEvent, submitted).WithCorrelationID(orderID)

	err := handlers.Handle(context.Background(), request)
	require.NoError(t, err)

	assert.Equal(t, []string{"saga saved", "placed published"}, sequence)
}

func TestOrderingEventHandlers_SagaFailureStopsPlacement(t *testing.T) {
	handlers, m := newEventHandlers(t)

	orderID := models.GenerateUUID()
	m.sagas.EXPECT().Find(mock.Anything, orderID).Return(nil, errors.New("connection refused")).Once()

	submitted := messaging.OrderSubmitted{
		OrderID:   orderID,
		UserID:    "user-1",
		OrderType: messaging.OrderTypeBuy,
	}
	request := events.NewEvent(orderID, events.OrderSubmittedEvent, submitted).WithCorrelationID(orderID)

	err := handlers.Handle(context.Background(), request)
	require.Error(t, err)
	m.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	m.replier.AssertNotCalled(t, "Reply", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderingEventHandlers_UndecodableSubmitPayloadIsFatal(t *testing.T) {
	handlers, _ := newEventHandlers(t)

	request := events.NewEvent(models.GenerateUUID(), events.SubmitOrderCommand, []byte("{not json"))

	err := handlers.Handle(context.Background(), request)
	require.Error(t, err)
	assert.True(t, events.IsFatal(err))
}

func TestOrderingEventHandlers_IgnoresOtherTopics(t *testing.T) {
	handlers, _ := newEventHandlers(t)

	request := events.NewEvent(models.GenerateUUID(), events.NotificationSentEvent, nil)

	err := handlers.Handle(context.Background(), request)
	assert.NoError(t, err)
}
