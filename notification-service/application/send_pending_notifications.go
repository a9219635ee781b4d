package application

import (
	"context"
	"log"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/tradeflow/ordering-system/notification-service/domain"
	"github.com/tradeflow/ordering-system/shared/telemetry"
)

// DefaultMaxAttempts bounds delivery retries per message
const DefaultMaxAttempts = 5

// SendPendingNotifications delivers all pending messages through the
// notification gateway. Each message is handled independently: a delivery
// failure bumps that message's attempt count and the run continues, so one
// unreachable user never blocks the rest of the batch.
type SendPendingNotifications struct {
	messages    domain.MessageRepository
	sender      domain.NotificationSender
	maxAttempts int
}

// NewSendPendingNotifications creates the use case
func NewSendPendingNotifications(
	messages domain.MessageRepository,
	sender domain.NotificationSender,
	maxAttempts int,
) *SendPendingNotifications {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &SendPendingNotifications{
		messages:    messages,
		sender:      sender,
		maxAttempts: maxAttempts,
	}
}

// Execute sends every pending message, optionally filtered by user.
// Returns an error only when the pending set cannot be loaded; per-message
// outcomes are persisted on each message.
func (uc *SendPendingNotifications) Execute(ctx context.Context, userID string) error {
	ctx, span := telemetry.StartSpan(ctx, "notifications.send_pending")
	defer span.End()

	pending, err := uc.messages.FindPending(ctx, userID)
	if err != nil {
		return errors.Wrap(err, "failed to load pending messages")
	}

	for _, message := range pending {
		uc.deliver(ctx, message)
	}

	return nil
}

func (uc *SendPendingNotifications) deliver(ctx context.Context, message *domain.Message) {
	if err := uc.sender.Send(ctx, message); err != nil {
		message.MarkFailed(time.Now(), uc.maxAttempts)
		if message.AbandonedAt != nil {
			log.Printf("abandoning message %s for user %s after %d attempts: %v",
				message.ID, message.UserID, message.Attempts, err)
			telemetry.RecordCounter(ctx, "notifications_abandoned_total", "Messages abandoned after exhausting delivery attempts", 1)
		} else {
			log.Printf("failed to send message %s for user %s (attempt %d): %v",
				message.ID, message.UserID, message.Attempts, err)
			telemetry.RecordCounter(ctx, "notifications_failed_total", "Message delivery attempts that failed", 1)
		}
	} else {
		message.MarkSent(time.Now())
		telemetry.RecordCounter(ctx, "notifications_sent_total", "Messages delivered", 1,
			attribute.String("user_id", message.UserID),
		)
	}

	if err := uc.messages.Save(ctx, message); err != nil {
		log.Printf("failed to save message %s: %v", message.ID, err)
	}
}
