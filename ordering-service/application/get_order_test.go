package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tradeflow/ordering-system/ordering-service/domain"
	"github.com/tradeflow/ordering-system/ordering-service/mocks"
	"github.com/tradeflow/ordering-system/shared/messaging"
	"github.com/tradeflow/ordering-system/shared/models"
)

func storedOrder(orderID models.ID) *domain.Order {
	return &domain.Order{
		ID:         orderID,
		UserID:     "user-1",
		CurrencyID: "BTC",
		Price:      50000,
		OrderType:  messaging.OrderTypeBuy,
		Quantity:   0.5,
		Timestamps: models.NewTimestamps(),
		Version:    models.NewVersion(),
	}
}

func TestGetOrder_WithSagaState(t *testing.T) {
	orderID := models.GenerateUUID()

	orders := mocks.NewMockOrderRepository(t)
	sagas := mocks.NewMockSagaRepository(t)

	filledAt := time.Now()
	orders.EXPECT().FindByID(mock.Anything, orderID).Return(storedOrder(orderID), nil).Once()
	sagas.EXPECT().Find(mock.Anything, orderID).Return(&domain.OrderSaga{
		CorrelationID: orderID,
		CurrentState:  domain.SagaStateFilled,
		OrderID:       orderID,
		FilledAt:      &filledAt,
	}, nil).Once()

	useCase := NewGetOrder(orders, sagas)

	response, err := useCase.Execute(context.Background(), &GetOrderQuery{OrderID: orderID.String()})
	require.NoError(t, err)

	assert.Equal(t, orderID, response.OrderID)
	assert.Equal(t, "filled", response.Status)
	require.NotNil(t, response.FilledAt)
	assert.Nil(t, response.CancelledAt)
}

func TestGetOrder_NoSagaYet(t *testing.T) {
	orderID := models.GenerateUUID()

	orders := mocks.NewMockOrderRepository(t)
	sagas := mocks.NewMockSagaRepository(t)

	orders.EXPECT().FindByID(mock.Anything, orderID).Return(storedOrder(orderID), nil).Once()
	sagas.EXPECT().Find(mock.Anything, orderID).Return(nil, nil).Once()

	useCase := NewGetOrder(orders, sagas)

	response, err := useCase.Execute(context.Background(), &GetOrderQuery{OrderID: orderID.String()})
	require.NoError(t, err)

	assert.Equal(t, "initial", response.Status)
	assert.Nil(t, response.SubmittedAt)
}

func TestGetOrder_NotFound(t *testing.T) {
	orderID := models.GenerateUUID()

	orders := mocks.NewMockOrderRepository(t)
	sagas := mocks.NewMockSagaRepository(t)

	orders.EXPECT().FindByID(mock.Anything, orderID).Return(nil, nil).Once()

	useCase := NewGetOrder(orders, sagas)

	response, err := useCase.Execute(context.Background(), &GetOrderQuery{OrderID: orderID.String()})
	assert.ErrorIs(t, err, ErrOrderNotFound)
	assert.Nil(t, response)
}

func TestGetOrder_InvalidID(t *testing.T) {
	orders := mocks.NewMockOrderRepository(t)
	sagas := mocks.NewMockSagaRepository(t)

	useCase := NewGetOrder(orders, sagas)

	_, err := useCase.Execute(context.Background(), &GetOrderQuery{OrderID: "not-a-uuid"})
	assert.Error(t, err)

	_, err = useCase.Execute(context.Background(), &GetOrderQuery{OrderID: ""})
	assert.Error(t, err)
}
