package controllers

import (
	"io"
	"net/http"

	"github.com/766ms/Glam-rent-v1/app/services"
	"github.com/766ms/Glam-rent-v1/pkg/bind"
	"github.com/766ms/Glam-rent-v1/pkg/middleware"
	"github.com/766ms/Glam-rent-v1/pkg/response"
)

// maxWebhookBytes caps the raw webhook body read before signature
// verification.
const maxWebhookBytes = 1 << 20

type PaymentController struct {
	checkout *services.CheckoutService
}

func NewPaymentController(checkout *services.CheckoutService) *PaymentController {
	return &PaymentController{checkout: checkout}
}

// Config hands the browser its publishable gateway key.
func (c *PaymentController) Config(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]string{
		"publishable_key": c.checkout.PublishableKey(),
	})
}

type createIntentRequest struct {
	OrderID uint `json:"order_id" validate:"required,gte=1"`
}

// CreateIntent opens a payment intent for a pending order.
func (c *PaymentController) CreateIntent(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var body createIntentRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Err(w, err)
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	intent, err := c.checkout.RequestPayment(r.Context(), user.ID, body.OrderID)
	if err != nil {
		response.Err(w, err)
		return
	}

	response.Success(w, map[string]string{
		"payment_intent_id": intent.ID,
		"client_secret":     intent.ClientSecret,
	})
}

type confirmPaymentRequest struct {
	PaymentIntentID string `json:"payment_intent_id" validate:"required"`
}

// Confirm is the client-driven confirmation: the browser posts the
// intent ID after the gateway SDK reports success.
func (c *PaymentController) Confirm(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	orderID, err := uintParam(r, "id")
	if err != nil {
		response.Err(w, err)
		return
	}

	var body confirmPaymentRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Err(w, err)
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.checkout.ConfirmPaymentByClient(r.Context(), user.ID, orderID, body.PaymentIntentID)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Success(w, order)
}

// Webhook receives gateway notifications. The body is read raw because
// signature verification covers the exact bytes sent.
func (c *PaymentController) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBytes))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Unreadable payload")
		return
	}

	event, err := c.checkout.ParseWebhook(payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		response.Err(w, err)
		return
	}

	if err := c.checkout.HandleWebhook(r.Context(), event); err != nil {
		response.Err(w, err)
		return
	}
	response.Success(w, map[string]bool{"received": true})
}
