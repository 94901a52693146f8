// Package payment abstracts the card payment gateway so checkout code
// never talks to Stripe directly.
package payment

import (
	"context"

	"github.com/766ms/Glam-rent-v1/app/models"
)

// Intent is a gateway payment intent. ClientSecret is handed to the
// browser SDK; ID is what webhooks and confirmations reference.
// OrderID is carried in the intent's metadata so a confirmation can be
// matched back to the order it was opened for.
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
	OrderID      uint   `json:"-"`
}

// Succeeded reports whether the intent has been captured.
func (i Intent) Succeeded() bool { return i.Status == "succeeded" }

// WebhookEvent is a verified gateway notification.
type WebhookEvent struct {
	Type     string
	IntentID string
	OrderID  uint
}

// Gateway is the payment provider surface used by checkout.
type Gateway interface {
	// PublishableKey returns the browser-side API key.
	PublishableKey() string

	// CreateIntent opens a payment intent for the order's total.
	CreateIntent(ctx context.Context, order *models.Order) (Intent, error)

	// RetrieveIntent fetches the current state of an intent.
	RetrieveIntent(ctx context.Context, intentID string) (Intent, error)

	// ParseWebhook verifies the signature on a raw webhook payload and
	// decodes it into a WebhookEvent.
	ParseWebhook(payload []byte, signature string) (WebhookEvent, error)
}
