package application

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/tradeflow/ordering-system/ordering-service/domain"
	"github.com/tradeflow/ordering-system/ordering-service/mocks"
	"github.com/tradeflow/ordering-system/shared/events"
	"github.com/tradeflow/ordering-system/shared/messaging"
	"github.com/tradeflow/ordering-system/shared/models"
)

func TestSubmitOrder_Execute(t *testing.T) {
	tests := []struct {
		name          string
		command       *messaging.SubmitOrder
		setupMocks    func(*mocks.MockOrderRepository, *mocks.MockPublisher)
		expectedError string
	}{
		{
			name: "successful submission",
			command: &messaging.SubmitOrder{
				UserID:     "user-1",
				CurrencyID: "BTC",
				Price:      50000,
				OrderType:  messaging.OrderTypeBuy,
				Quantity:   0.5,
			},
			setupMocks: func(repo *mocks.MockOrderRepository, publisher *mocks.MockPublisher) {
				repo.EXPECT().Save(mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(evt *events.Event) bool {
					return evt.Topic == events.Topic(events.OrderSubmittedEvent) &&
						evt.CorrelationID == evt.AggregateID
				})).Return(nil).Once()
			},
			expectedError: "",
		},
		{
			name: "missing user ID",
			command: &messaging.SubmitOrder{
				CurrencyID: "BTC",
				Price:      50000,
				OrderType:  messaging.OrderTypeBuy,
				Quantity:   0.5,
			},
			setupMocks:    func(repo *mocks.MockOrderRepository, publisher *mocks.MockPublisher) {},
			expectedError: "user ID is required",
		},
		{
			name: "missing currency",
			command: &messaging.SubmitOrder{
				UserID:    "user-1",
				Price:     50000,
				OrderType: messaging.OrderTypeBuy,
				Quantity:  0.5,
			},
			setupMocks:    func(repo *mocks.MockOrderRepository, publisher *mocks.MockPublisher) {},
			expectedError: "currency ID is required",
		},
		{
			name: "non-positive price",
			command: &messaging.SubmitOrder{
				UserID:     "user-1",
				CurrencyID: "BTC",
				Price:      0,
				OrderType:  messaging.OrderTypeBuy,
				Quantity:   0.5,
			},
			setupMocks:    func(repo *mocks.MockOrderRepository, publisher *mocks.MockPublisher) {},
			expectedError: "price must be positive",
		},
		{
			name: "non-positive quantity",
			command: &messaging.SubmitOrder{
				UserID:     "user-1",
				CurrencyID: "BTC",
				Price:      50000,
				OrderType:  messaging.OrderTypeBuy,
				Quantity:   -1,
			},
			setupMocks:    func(repo *mocks.MockOrderRepository, publisher *mocks.MockPublisher) {},
			expectedError: "quantity must be positive",
		},
		{
			name: "unknown order type",
			command: &messaging.SubmitOrder{
				UserID:     "user-1",
				CurrencyID: "BTC",
				Price:      50000,
				OrderType:  "HOLD",
				Quantity:   0.5,
			},
			setupMocks:    func(repo *mocks.MockOrderRepository, publisher *mocks.MockPublisher) {},
			expectedError: "unknown order type",
		},
		{
			name: "repository save error",
			command: &messaging.SubmitOrder{
				UserID:     "user-1",
				CurrencyID: "BTC",
				Price:      50000,
				OrderType:  messaging.OrderTypeSell,
				Quantity:   0.5,
			},
			setupMocks: func(repo *mocks.MockOrderRepository, publisher *mocks.MockPublisher) {
				repo.EXPECT().Save(mock.Anything, mock.Anything).Return(errors.New("database error")).Once()
			},
			expectedError: "failed to save order",
		},
		{
			name: "publish error",
			command: &messaging.SubmitOrder{
				UserID:     "user-1",
				CurrencyID: "BTC",
				Price:      50000,
				OrderType:  messaging.OrderTypeSell,
				Quantity:   0.5,
			},
			setupMocks: func(repo *mocks.MockOrderRepository, publisher *mocks.MockPublisher) {
				repo.EXPECT().Save(mock.Anything, mock.Anything).Return(nil).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(errors.New("sns error")).Once()
			},
			expectedError: "failed to publish order submitted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewMockOrderRepository(t)
			mockPublisher := mocks.NewMockPublisher(t)

			tt.setupMocks(mockRepo, mockPublisher)

			useCase := NewSubmitOrder(mockRepo, mockPublisher)

			result, err := useCase.Execute(context.Background(), tt.command)

			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, result)
				assert.NotEmpty(t, result.OrderID)

				_, err := models.NewID(result.OrderID.String())
				assert.NoError(t, err)
			}
		})
	}
}

func TestSubmitOrder_HonorsProvidedOrderID(t *testing.T) {
	orderID := models.GenerateUUID()

	mockRepo := mocks.NewMockOrderRepository(t)
	mockPublisher := mocks.NewMockPublisher(t)

	mockRepo.EXPECT().Save(mock.Anything, mock.MatchedBy(func(order *domain.Order) bool {
		return order.ID == orderID
	})).Return(nil).Once()
	mockPublisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil).Once()

	useCase := NewSubmitOrder(mockRepo, mockPublisher)

	result, err := useCase.Execute(context.Background(), &messaging.SubmitOrder{
		OrderID:    orderID,
		UserID:     "user-1",
		CurrencyID: "BTC",
		Price:      50000,
		OrderType:  messaging.OrderTypeBuy,
		Quantity:   0.5,
	})

	assert.NoError(t, err)
	assert.Equal(t, orderID, result.OrderID)
}
