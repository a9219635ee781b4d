package domain

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/tradeflow/ordering-system/shared/models"
)

// MessageStatus represents the delivery status of a message
type MessageStatus string

const (
	MessageStatusPending   MessageStatus = "PENDING"
	MessageStatusSent      MessageStatus = "SENT"
	MessageStatusAbandoned MessageStatus = "ABANDONED"
)

// Message is a notification waiting to be delivered to a user. A message is
// pending until sent_time is stamped; delivery failures bump attempts, and
// a message whose attempts reach the limit is abandoned rather than retried
// forever.
type Message struct {
	ID          models.ID
	UserID      string
	OrderID     models.ID
	PhoneNumber string
	Text        string
	SentTime    *time.Time
	Attempts    int
	AbandonedAt *time.Time
	models.Timestamps
}

// NewMessage creates a pending message for a user
func NewMessage(userID string, orderID models.ID, phoneNumber, text string) (*Message, error) {
	if userID == "" {
		return nil, errors.New("user ID is required")
	}
	if phoneNumber == "" {
		return nil, errors.New("phone number is required")
	}
	if text == "" {
		return nil, errors.New("message text is required")
	}

	return &Message{
		ID:          models.GenerateUUID(),
		UserID:      userID,
		OrderID:     orderID,
		PhoneNumber: phoneNumber,
		Text:        text,
		Timestamps:  models.NewTimestamps(),
	}, nil
}

// Pending reports whether the message still needs delivery
func (m *Message) Pending() bool {
	return m.SentTime == nil && m.AbandonedAt == nil
}

// Status returns the delivery status of the message
func (m *Message) Status() MessageStatus {
	switch {
	case m.SentTime != nil:
		return MessageStatusSent
	case m.AbandonedAt != nil:
		return MessageStatusAbandoned
	default:
		return MessageStatusPending
	}
}

// MarkSent stamps the delivery time
func (m *Message) MarkSent(at time.Time) {
	sent := at
	m.SentTime = &sent
	m.UpdatedAt = at
}

// MarkFailed records one failed delivery attempt. Once attempts reach the
// limit the message is abandoned and Pending turns false.
func (m *Message) MarkFailed(at time.Time, maxAttempts int) {
	m.Attempts++
	m.UpdatedAt = at
	if m.Attempts >= maxAttempts {
		abandoned := at
		m.AbandonedAt = &abandoned
	}
}

// MessageRepository persists notification messages
type MessageRepository interface {
	Save(ctx context.Context, message *Message) error
	FindPending(ctx context.Context, userID string) ([]*Message, error)
}

// NotificationSender delivers a message to the user's device
type NotificationSender interface {
	Send(ctx context.Context, message *Message) error
}

// ErrContactNotFound is returned when a user has no registered phone number
var ErrContactNotFound = errors.New("contact not found")

// ContactRepository resolves the phone number a user's notifications go to
type ContactRepository interface {
	PhoneNumberFor(ctx context.Context, userID string) (string, error)
}
