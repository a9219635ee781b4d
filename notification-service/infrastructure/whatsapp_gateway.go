package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/tradeflow/ordering-system/notification-service/domain"
)

var _ domain.NotificationSender = (*WhatsAppGateway)(nil)

// WhatsAppGateway delivers messages through a WhatsApp provider HTTP API
type WhatsAppGateway struct {
	url    string
	apiKey string
	client *http.Client
}

// NewWhatsAppGateway creates a gateway that POSTs messages to the given URL
func NewWhatsAppGateway(url, apiKey string, client *http.Client) *WhatsAppGateway {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &WhatsAppGateway{
		url:    url,
		apiKey: apiKey,
		client: client,
	}
}

type whatsAppRequest struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

// Send delivers one message. Any transport error or non-2xx response is a
// failed attempt; the caller decides whether to retry.
func (g *WhatsAppGateway) Send(ctx context.Context, message *domain.Message) error {
	body, err := json.Marshal(whatsAppRequest{
		To:   message.PhoneNumber,
		Body: message.Text,
	})
	if err != nil {
		return errors.Wrap(err, "failed to marshal whatsapp request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "failed to build whatsapp request")
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "whatsapp request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("whatsapp provider returned %s", resp.Status)
	}

	return nil
}
