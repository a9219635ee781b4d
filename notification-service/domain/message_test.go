package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradeflow/ordering-system/shared/models"
)

func TestNewMessage(t *testing.T) {
	orderID := models.GenerateUUID()

	message, err := NewMessage("user-1", orderID, "+5215512345678", "Your order has been filled")
	require.NoError(t, err)

	assert.NotEmpty(t, message.ID)
	assert.Equal(t, "user-1", message.UserID)
	assert.Equal(t, orderID, message.OrderID)
	assert.Equal(t, "+5215512345678", message.PhoneNumber)
	assert.True(t, message.Pending())
	assert.Equal(t, MessageStatusPending, message.Status())
	assert.Zero(t, message.Attempts)
}

func TestNewMessage_Validation(t *testing.T) {
	orderID := models.GenerateUUID()

	_, err := NewMessage("", orderID, "+5215512345678", "text")
	assert.EqualError(t, err, "user ID is required")

	_, err = NewMessage("user-1", orderID, "", "text")
	assert.EqualError(t, err, "phone number is required")

	_, err = NewMessage("user-1", orderID, "+5215512345678", "")
	assert.EqualError(t, err, "message text is required")
}

func TestMessage_MarkSent(t *testing.T) {
	message, err := NewMessage("user-1", models.GenerateUUID(), "+5215512345678", "text")
	require.NoError(t, err)

	at := time.Now()
	message.MarkSent(at)

	assert.False(t, message.Pending())
	assert.Equal(t, MessageStatusSent, message.Status())
	require.NotNil(t, message.SentTime)
	assert.Equal(t, at, *message.SentTime)
}

func TestMessage_MarkFailed(t *testing.T) {
	message, err := NewMessage("user-1", models.GenerateUUID(), "+5215512345678", "text")
	require.NoError(t, err)

	message.MarkFailed(time.Now(), 3)
	assert.Equal(t, 1, message.Attempts)
	assert.True(t, message.Pending())

	message.MarkFailed(time.Now(), 3)
	assert.Equal(t, 2, message.Attempts)
	assert.True(t, message.Pending())

	// Third failure hits the limit and abandons the message.
	message.MarkFailed(time.Now(), 3)
	assert.Equal(t, 3, message.Attempts)
	assert.False(t, message.Pending())
	assert.Equal(t, MessageStatusAbandoned, message.Status())
	assert.NotNil(t, message.AbandonedAt)
}
