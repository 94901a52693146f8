package controllers

import (
	"net/http"

	"github.com/766ms/Glam-rent-v1/app/services"
	"github.com/766ms/Glam-rent-v1/pkg/bind"
	"github.com/766ms/Glam-rent-v1/pkg/middleware"
	"github.com/766ms/Glam-rent-v1/pkg/response"
)

type OrderController struct {
	checkout *services.CheckoutService
}

func NewOrderController(checkout *services.CheckoutService) *OrderController {
	return &OrderController{checkout: checkout}
}

type createOrderRequest struct {
	ShippingAddress string `json:"shipping_address" validate:"required,min=5,max=1000"`
}

// Create snapshots the caller's cart into a pending order.
func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var body createOrderRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Err(w, err)
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.checkout.CreateOrder(r.Context(), user.ID, body.ShippingAddress)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Created(w, order)
}

// List serves the caller's order history.
func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	orders, err := c.checkout.ListOrders(user.ID)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Success(w, orders)
}

// Get serves one of the caller's orders.
func (c *OrderController) Get(w http.ResponseWriter, r *http.Request) {
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

	order, err := c.checkout.GetOrder(user.ID, orderID)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Success(w, order)
}

// ListAll is the admin listing, optionally filtered by ?status=.
func (c *OrderController) ListAll(w http.ResponseWriter, r *http.Request) {
	orders, err := c.checkout.ListAllOrders(r.URL.Query().Get("status"))
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Success(w, orders)
}

type setStatusRequest struct {
	Status string `json:"status" validate:"required,in=pending,paid,shipped,completed,cancelled"`
}

// SetStatus is the admin status override.
func (c *OrderController) SetStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := uintParam(r, "id")
	if err != nil {
		response.Err(w, err)
		return
	}

	var body setStatusRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Err(w, err)
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.checkout.SetOrderStatus(r.Context(), orderID, body.Status)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Success(w, order)
}

// Stats serves the admin dashboard aggregates.
func (c *OrderController) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.checkout.Stats()
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Success(w, stats)
}
