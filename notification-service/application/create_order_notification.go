package application

import (
	"context"
	"fmt"
	"log"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/tradeflow/ordering-system/notification-service/domain"
	"github.com/tradeflow/ordering-system/shared/messaging"
	"github.com/tradeflow/ordering-system/shared/models"
	"github.com/tradeflow/ordering-system/shared/telemetry"
)

// CreateOrderNotification queues a message telling the user what happened
// to their order. The recipient phone number is resolved from the contact
// directory at queue time; the recurring job performs the actual delivery.
type CreateOrderNotification struct {
	messages domain.MessageRepository
	contacts domain.ContactRepository
}

// NewCreateOrderNotification creates the use case
func NewCreateOrderNotification(messages domain.MessageRepository, contacts domain.ContactRepository) *CreateOrderNotification {
	return &CreateOrderNotification{
		messages: messages,
		contacts: contacts,
	}
}

// OrderFilled queues a notification for a filled order
func (uc *CreateOrderNotification) OrderFilled(ctx context.Context, filled *messaging.OrderFilled) error {
	text := fmt.Sprintf("Your %s order for %.4f %s has been filled at %.2f",
		filled.OrderType, filled.Quantity, filled.CurrencyID, filled.Price)
	return uc.create(ctx, filled.UserID, filled.OrderID, text)
}

// OrderCancelled queues a notification for a cancelled order
func (uc *CreateOrderNotification) OrderCancelled(ctx context.Context, cancelled *messaging.OrderCancelled) error {
	text := fmt.Sprintf("Your %s order for %.4f %s has been cancelled",
		cancelled.OrderType, cancelled.Quantity, cancelled.CurrencyID)
	return uc.create(ctx, cancelled.UserID, cancelled.OrderID, text)
}

func (uc *CreateOrderNotification) create(ctx context.Context, userID string, orderID models.ID, text string) error {
	phoneNumber, err := uc.contacts.PhoneNumberFor(ctx, userID)
	if errors.Is(err, domain.ErrContactNotFound) {
		// No registered number, no message. Skipped, not retried.
		log.Printf("skipping notification for user %s: no contact", userID)
		telemetry.RecordCounter(ctx, "notifications_skipped_total", "Notifications skipped for users without a contact", 1,
			attribute.String("user_id", userID),
		)
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to resolve contact")
	}

	message, err := domain.NewMessage(userID, orderID, phoneNumber, text)
	if err != nil {
		return errors.Wrap(err, "failed to build notification message")
	}

	if err := uc.messages.Save(ctx, message); err != nil {
		return errors.Wrap(err, "failed to save notification message")
	}

	return nil
}
