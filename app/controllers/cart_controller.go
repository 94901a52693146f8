package controllers

import (
	"net/http"

	"github.com/766ms/Glam-rent-v1/app/services"
	"github.com/766ms/Glam-rent-v1/pkg/bind"
	"github.com/766ms/Glam-rent-v1/pkg/middleware"
	"github.com/766ms/Glam-rent-v1/pkg/response"
)

type CartController struct {
	cart *services.CartService
}

func NewCartController(cart *services.CartService) *CartController {
	return &CartController{cart: cart}
}

// List serves the caller's priced cart.
func (c *CartController) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	view, err := c.cart.List(user.ID)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Success(w, view)
}

type addToCartRequest struct {
	ProductID uint `json:"product_id" validate:"required,gte=1"`
	Quantity  int  `json:"quantity" validate:"required,gte=1"`
}

// Add puts a product in the cart, merging duplicates.
func (c *CartController) Add(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var body addToCartRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Err(w, err)
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	item, err := c.cart.Add(user.ID, body.ProductID, body.Quantity)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Created(w, item)
}

// Quantity carries no validation rule: zero and negative values are
// meaningful (they remove the row).
type updateCartRequest struct {
	Quantity int `json:"quantity"`
}

// Update sets a row's quantity; zero or less removes the row.
func (c *CartController) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	itemID, err := uintParam(r, "id")
	if err != nil {
		response.Err(w, err)
		return
	}

	var body updateCartRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Err(w, err)
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	if err := c.cart.UpdateQuantity(user.ID, itemID, body.Quantity); err != nil {
		response.Err(w, err)
		return
	}

	view, err := c.cart.List(user.ID)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Success(w, view)
}

// Remove deletes one cart row.
func (c *CartController) Remove(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	itemID, err := uintParam(r, "id")
	if err != nil {
		response.Err(w, err)
		return
	}

	if err := c.cart.Remove(user.ID, itemID); err != nil {
		response.Err(w, err)
		return
	}
	response.Success(w, map[string]any{"deleted": itemID})
}

// Clear empties the cart.
func (c *CartController) Clear(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	if err := c.cart.Clear(user.ID); err != nil {
		response.Err(w, err)
		return
	}
	response.Success(w, map[string]any{"cleared": true})
}
