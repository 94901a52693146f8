package payment

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"

	"github.com/766ms/Glam-rent-v1/app/models"
	"github.com/766ms/Glam-rent-v1/pkg/apperr"
)

// StripeGateway implements Gateway on top of the Stripe API.
type StripeGateway struct {
	api            *client.API
	publishableKey string
	webhookSecret  string
	currency       string
}

// NewStripeGateway builds a gateway from API keys. currency is a
// lowercase ISO code; COP is zero-decimal so amounts pass through as-is.
func NewStripeGateway(secretKey, publishableKey, webhookSecret, currency string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{
		api:            api,
		publishableKey: publishableKey,
		webhookSecret:  webhookSecret,
		currency:       currency,
	}
}

func (g *StripeGateway) PublishableKey() string { return g.publishableKey }

func (g *StripeGateway) CreateIntent(ctx context.Context, order *models.Order) (Intent, error) {
	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(int64(order.Total)),
		Currency: stripe.String(g.currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("order_id", strconv.FormatUint(uint64(order.ID), 10))

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return Intent{}, apperr.Wrap(apperr.Gateway, err, "Payment provider rejected the request")
	}
	return Intent{ID: pi.ID, ClientSecret: pi.ClientSecret, Status: string(pi.Status), OrderID: order.ID}, nil
}

func (g *StripeGateway) RetrieveIntent(ctx context.Context, intentID string) (Intent, error) {
	params := &stripe.PaymentIntentParams{Params: stripe.Params{Context: ctx}}
	pi, err := g.api.PaymentIntents.Get(intentID, params)
	if err != nil {
		return Intent{}, apperr.Wrap(apperr.Gateway, err, "Payment provider rejected the request")
	}

	in := Intent{ID: pi.ID, ClientSecret: pi.ClientSecret, Status: string(pi.Status)}
	if raw, ok := pi.Metadata["order_id"]; ok {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			in.OrderID = uint(id)
		}
	}
	return in, nil
}

func (g *StripeGateway) ParseWebhook(payload []byte, signature string) (WebhookEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, g.webhookSecret)
	if err != nil {
		return WebhookEvent{}, apperr.Wrap(apperr.Validation, err, "Invalid webhook signature")
	}

	out := WebhookEvent{Type: string(event.Type)}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return WebhookEvent{}, apperr.Wrap(apperr.Validation, err, "Malformed webhook payload")
	}
	out.IntentID = pi.ID

	if raw, ok := pi.Metadata["order_id"]; ok {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return WebhookEvent{}, apperr.Wrap(apperr.Validation, err, "Malformed order reference in webhook")
		}
		out.OrderID = uint(id)
	}

	return out, nil
}
