package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/766ms/Glam-rent-v1/app/models"
	"github.com/766ms/Glam-rent-v1/app/repositories"
	"github.com/766ms/Glam-rent-v1/internal/payment"
	"github.com/766ms/Glam-rent-v1/pkg/apperr"
	"github.com/766ms/Glam-rent-v1/pkg/logger"
	"github.com/766ms/Glam-rent-v1/pkg/metrics"
)

// CheckoutService owns the order lifecycle: order creation from the
// cart, payment intents, and the pending→paid confirmation that
// decrements stock and empties the cart.
type CheckoutService struct {
	orders  *repositories.OrderRepository
	carts   *repositories.CartRepository
	gateway payment.Gateway

	// strictStock refuses confirmations that would take stock below
	// zero. Off by default: an oversold dress is a support call, a
	// rejected payment is a lost one.
	strictStock bool
}

func NewCheckoutService(
	orders *repositories.OrderRepository,
	carts *repositories.CartRepository,
	gateway payment.Gateway,
	strictStock bool,
) *CheckoutService {
	return &CheckoutService{
		orders:      orders,
		carts:       carts,
		gateway:     gateway,
		strictStock: strictStock,
	}
}

// CreateOrder snapshots the user's cart into an order. Line prices are
// frozen from the current catalogue; the cart itself stays intact until
// payment is confirmed, so an abandoned checkout loses nothing.
func (s *CheckoutService) CreateOrder(ctx context.Context, userID uint, shippingAddress string) (models.Order, error) {
	items, err := s.carts.ItemsForUser(userID)
	if err != nil {
		return models.Order{}, err
	}
	if len(items) == 0 {
		return models.Order{}, apperr.New(apperr.InvalidState, "Cart is empty")
	}

	order := models.Order{
		UserID:          userID,
		Status:          models.OrderStatusPending,
		ShippingAddress: shippingAddress,
	}
	for _, item := range items {
		// Advisory only: nothing is reserved, so two checkouts can
		// both pass this and race at confirmation time.
		if item.Product.Stock < item.Quantity {
			return models.Order{}, apperr.New(apperr.InsufficientStock,
				"Not enough stock for %q (%d left)", item.Product.Name, item.Product.Stock)
		}
		order.Items = append(order.Items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Product.Price,
		})
		order.Total += item.Product.Price * float64(item.Quantity)
	}

	if err := s.orders.Create(&order); err != nil {
		return models.Order{}, err
	}

	metrics.OrdersCreated.Inc()
	logger.WithCtx(ctx).Info("order created",
		"order_id", order.ID, "user_id", userID, "total", order.Total)

	return s.orders.FindByID(order.ID)
}

// RequestPayment opens a gateway intent for a pending order and records
// its reference on the order.
func (s *CheckoutService) RequestPayment(ctx context.Context, userID, orderID uint) (payment.Intent, error) {
	order, err := s.orders.FindForUser(userID, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payment.Intent{}, apperr.New(apperr.NotFound, "Order not found")
	}
	if err != nil {
		return payment.Intent{}, err
	}
	if order.Status != models.OrderStatusPending {
		return payment.Intent{}, apperr.New(apperr.InvalidState, "Order is not awaiting payment")
	}

	intent, err := s.gateway.CreateIntent(ctx, &order)
	if err != nil {
		return payment.Intent{}, err
	}

	if err := s.orders.DB().Model(&models.Order{}).
		Where("id = ?", order.ID).
		Update("payment_ref", intent.ID).Error; err != nil {
		return payment.Intent{}, err
	}

	logger.WithCtx(ctx).Info("payment intent created",
		"order_id", order.ID, "intent_id", intent.ID)
	return intent, nil
}

// ConfirmPaymentByClient is the browser-driven confirmation path: the
// client posts the intent ID after the gateway SDK reports success, and
// we re-check the intent with the gateway before trusting it.
func (s *CheckoutService) ConfirmPaymentByClient(ctx context.Context, userID, orderID uint, intentID string) (models.Order, error) {
	order, err := s.orders.FindForUser(userID, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Order{}, apperr.New(apperr.NotFound, "Order not found")
	}
	if err != nil {
		return models.Order{}, err
	}

	intent, err := s.gateway.RetrieveIntent(ctx, intentID)
	if err != nil {
		return models.Order{}, err
	}
	if !intent.Succeeded() {
		return models.Order{}, apperr.New(apperr.InvalidState, "Payment has not completed")
	}
	if intent.OrderID != order.ID {
		return models.Order{}, apperr.New(apperr.InvalidState, "Payment does not belong to this order")
	}

	return s.confirm(ctx, order.ID, intent.ID, "client")
}

// HandleWebhook applies a verified gateway event. Only successful
// payment events change state; everything else is acknowledged and
// dropped.
func (s *CheckoutService) HandleWebhook(ctx context.Context, event payment.WebhookEvent) error {
	if event.Type != "payment_intent.succeeded" {
		logger.WithCtx(ctx).Debug("ignoring webhook event", "type", event.Type)
		return nil
	}
	if event.OrderID == 0 {
		return apperr.New(apperr.Validation, "Webhook event carries no order reference")
	}

	_, err := s.confirm(ctx, event.OrderID, event.IntentID, "webhook")
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.New(apperr.NotFound, "Order not found")
	}
	return err
}

// confirm performs the pending→paid transition: mark paid, decrement
// stock for every line, and clear the buyer's cart, all in one
// transaction. Confirming an already-paid order is a successful no-op
// so gateway retries and the client racing the webhook stay harmless.
func (s *CheckoutService) confirm(ctx context.Context, orderID uint, intentID, path string) (models.Order, error) {
	var confirmed bool
	var buyer uint
	var total float64

	err := s.orders.DB().Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Preload("Items").First(&order, orderID).Error; err != nil {
			return err
		}

		switch order.Status {
		case models.OrderStatusCancelled:
			return apperr.New(apperr.InvalidState, "Order has been cancelled")
		case models.OrderStatusPending:
			// fall through to the transition
		default:
			// Already past pending: idempotent success.
			return nil
		}

		for _, line := range order.Items {
			if err := s.decrementStock(tx, line); err != nil {
				return err
			}
		}

		updates := map[string]any{
			"status":      models.OrderStatusPaid,
			"payment_ref": intentID,
		}
		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Updates(updates).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", order.UserID).
			Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		confirmed = true
		buyer = order.UserID
		total = order.Total
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}

	if confirmed {
		metrics.PaymentsConfirmed.WithLabelValues(path).Inc()
		metrics.Revenue.Add(total)
		logger.WithCtx(ctx).Info("payment confirmed",
			"order_id", orderID, "user_id", buyer, "intent_id", intentID, "path", path)
	} else {
		metrics.DuplicateConfirmations.Inc()
		logger.WithCtx(ctx).Info("duplicate payment confirmation ignored",
			"order_id", orderID, "intent_id", intentID, "path", path)
	}

	return s.orders.FindByID(orderID)
}

func (s *CheckoutService) decrementStock(tx *gorm.DB, line models.OrderItem) error {
	if s.strictStock {
		res := tx.Model(&models.Product{}).
			Where("id = ? AND stock >= ?", line.ProductID, line.Quantity).
			Update("stock", gorm.Expr("stock - ?", line.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.New(apperr.InsufficientStock, "Not enough stock to fulfil the order")
		}
		return nil
	}

	// Stock may go negative here: two orders for the last unit both
	// confirm, and the shortfall is handled out of band.
	return tx.Model(&models.Product{}).
		Where("id = ?", line.ProductID).
		Update("stock", gorm.Expr("stock - ?", line.Quantity)).Error
}

// GetOrder returns one of the user's orders.
func (s *CheckoutService) GetOrder(userID, orderID uint) (models.Order, error) {
	order, err := s.orders.FindForUser(userID, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Order{}, apperr.New(apperr.NotFound, "Order not found")
	}
	return order, err
}

// ListOrders returns the user's order history, newest first.
func (s *CheckoutService) ListOrders(userID uint) ([]models.Order, error) {
	return s.orders.ForUser(userID)
}

// ListAllOrders is the admin listing, optionally filtered by status.
func (s *CheckoutService) ListAllOrders(status string) ([]models.Order, error) {
	if status != "" && !models.ValidOrderStatus(status) {
		return nil, apperr.New(apperr.Validation, "Unknown order status")
	}
	return s.orders.All(status)
}

// SetOrderStatus is the admin override. Any known status may be set
// regardless of the current one; only the value itself is checked.
func (s *CheckoutService) SetOrderStatus(ctx context.Context, orderID uint, status string) (models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return models.Order{}, apperr.New(apperr.Validation, "Unknown order status")
	}

	if _, err := s.orders.FindByID(orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, apperr.New(apperr.NotFound, "Order not found")
		}
		return models.Order{}, err
	}

	if err := s.orders.UpdateStatus(orderID, status); err != nil {
		return models.Order{}, err
	}
	logger.WithCtx(ctx).Info("order status set", "order_id", orderID, "status", status)
	return s.orders.FindByID(orderID)
}

// Stats returns the admin dashboard aggregates.
func (s *CheckoutService) Stats() (repositories.OrderStats, error) {
	return s.orders.Stats()
}

// PublishableKey exposes the gateway's browser key for the config
// endpoint.
func (s *CheckoutService) PublishableKey() string {
	return s.gateway.PublishableKey()
}

// ParseWebhook verifies and decodes a raw webhook payload.
func (s *CheckoutService) ParseWebhook(payload []byte, signature string) (payment.WebhookEvent, error) {
	return s.gateway.ParseWebhook(payload, signature)
}
