package application

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tradeflow/ordering-system/ordering-service/domain"
	"github.com/tradeflow/ordering-system/ordering-service/mocks"
	"github.com/tradeflow/ordering-system/shared/models"
)

func TestListOrders_ReturnsUserOrders(t *testing.T) {
	orders := mocks.NewMockOrderRepository(t)

	first := storedOrder(models.GenerateUUID())
	second := storedOrder(models.GenerateUUID())
	orders.EXPECT().FindByUserID(mock.Anything, "user-1").Return([]*domain.Order{first, second}, nil).Once()

	useCase := NewListOrders(orders)

	summaries, err := useCase.Execute(context.Background(), &ListOrdersQuery{UserID: "user-1"})
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, first.ID, summaries[0].OrderID)
	assert.Equal(t, "user-1", summaries[0].UserID)
	assert.Equal(t, first.CurrencyID, summaries[0].CurrencyID)
	assert.Equal(t, second.ID, summaries[1].OrderID)
}

func TestListOrders_NoOrdersIsEmptyNotNil(t *testing.T) {
	orders := mocks.NewMockOrderRepository(t)

	orders.EXPECT().FindByUserID(mock.Anything, "user-2").Return(nil, nil).Once()

	useCase := NewListOrders(orders)

	summaries, err := useCase.Execute(context.Background(), &ListOrdersQuery{UserID: "user-2"})
	require.NoError(t, err)
	assert.NotNil(t, summaries)
	assert.Empty(t, summaries)
}

func TestListOrders_RequiresUserID(t *testing.T) {
	orders := mocks.NewMockOrderRepository(t)

	useCase := NewListOrders(orders)

	_, err := useCase.Execute(context.Background(), &ListOrdersQuery{})
	assert.EqualError(t, err, "user ID is required")
}

func TestListOrders_RepositoryErrorIsReturned(t *testing.T) {
	orders := mocks.NewMockOrderRepository(t)

	orders.EXPECT().FindByUserID(mock.Anything, "user-1").Return(nil, errors.New("connection refused")).Once()

	useCase := NewListOrders(orders)

	_, err := useCase.Execute(context.Background(), &ListOrdersQuery{UserID: "user-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to find orders")
}
