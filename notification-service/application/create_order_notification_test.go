package application

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tradeflow/ordering-system/notification-service/domain"
	"github.com/tradeflow/ordering-system/notification-service/mocks"
	"github.com/tradeflow/ordering-system/shared/messaging"
	"github.com/tradeflow/ordering-system/shared/models"
)

func TestCreateOrderNotification_QueuesMessageWithRecipient(t *testing.T) {
	repo := mocks.NewMockMessageRepository(t)
	contacts := mocks.NewMockContactRepository(t)

	orderID := models.GenerateUUID()
	contacts.EXPECT().PhoneNumberFor(mock.Anything, "user-1").Return("+5215512345678", nil).Once()

	var saved *domain.Message
	repo.EXPECT().Save(mock.Anything, mock.Anything).Run(func(ctx context.Context, message *domain.Message) {
		saved = message
	}).Return(nil).Once()

	useCase := NewCreateOrderNotification(repo, contacts)

	err := useCase.OrderFilled(context.Background(), &messaging.OrderFilled{
		OrderID:    orderID,
		UserID:     "user-1",
		CurrencyID: "BTC",
		Price:      50000,
		OrderType:  messaging.OrderTypeBuy,
		Quantity:   0.5,
		CreatedAt:  time.Now(),
	})
	require.NoError(t, err)

	require.NotNil(t, saved)
	assert.Equal(t, "+5215512345678", saved.PhoneNumber)
	assert.NotEmpty(t, saved.PhoneNumber)
	assert.Equal(t, "user-1", saved.UserID)
	assert.Equal(t, orderID, saved.OrderID)
	assert.True(t, saved.Pending())
}

func TestCreateOrderNotification_MissingContactIsSkipped(t *testing.T) {
	repo := mocks.NewMockMessageRepository(t)
	contacts := mocks.NewMockContactRepository(t)

	contacts.EXPECT().PhoneNumberFor(mock.Anything, "user-1").Return("", domain.ErrContactNotFound).Once()

	useCase := NewCreateOrderNotification(repo, contacts)

	err := useCase.OrderCancelled(context.Background(), &messaging.OrderCancelled{
		OrderID:    models.GenerateUUID(),
		UserID:     "user-1",
		CurrencyID: "BTC",
		OrderType:  messaging.OrderTypeSell,
		Quantity:   0.5,
	})
	assert.NoError(t, err)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCreateOrderNotification_ContactLookupErrorIsReturned(t *testing.T) {
	repo := mocks.NewMockMessageRepository(t)
	contacts := mocks.NewMockContactRepository(t)

	contacts.EXPECT().PhoneNumberFor(mock.Anything, "user-1").Return("", errors.New("connection refused")).Once()

	useCase := NewCreateOrderNotification(repo, contacts)

	err := useCase.OrderFilled(context.Background(), &messaging.OrderFilled{
		OrderID:   models.GenerateUUID(),
		UserID:    "user-1",
		OrderType: messaging.OrderTypeBuy,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to resolve contact")
}
