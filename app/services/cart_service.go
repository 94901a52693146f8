package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/766ms/Glam-rent-v1/app/models"
	"github.com/766ms/Glam-rent-v1/app/repositories"
	"github.com/766ms/Glam-rent-v1/pkg/apperr"
)

// CartLine is one cart row priced at the product's current price.
type CartLine struct {
	ID       int64          `json:"id"`
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
	Subtotal float64        `json:"subtotal"`
}

// CartView is the priced cart returned to the client.
type CartView struct {
	Items []CartLine `json:"items"`
	Total float64    `json:"total"`
}

// CartService manages the per-user shopping cart. Cart pricing always
// reflects the current catalogue; prices only freeze at order creation.
type CartService struct {
	carts    *repositories.CartRepository
	products *repositories.ProductRepository
}

func NewCartService(carts *repositories.CartRepository, products *repositories.ProductRepository) *CartService {
	return &CartService{carts: carts, products: products}
}

// List returns the user's cart with per-line subtotals and the total.
func (s *CartService) List(userID uint) (CartView, error) {
	items, err := s.carts.ItemsForUser(userID)
	if err != nil {
		return CartView{}, err
	}

	view := CartView{Items: make([]CartLine, 0, len(items))}
	for _, item := range items {
		line := CartLine{
			ID:       int64(item.ID),
			Product:  item.Product,
			Quantity: item.Quantity,
			Subtotal: item.Product.Price * float64(item.Quantity),
		}
		view.Items = append(view.Items, line)
		view.Total += line.Subtotal
	}
	return view, nil
}

// Add puts quantity units of a product into the cart, merging with any
// existing row for the same product.
func (s *CartService) Add(userID, productID uint, quantity int) (models.CartItem, error) {
	if quantity <= 0 {
		return models.CartItem{}, apperr.New(apperr.Validation, "Quantity must be positive")
	}

	if _, err := s.products.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.CartItem{}, apperr.New(apperr.NotFound, "Product not found")
		}
		return models.CartItem{}, err
	}

	return s.carts.Upsert(userID, productID, quantity)
}

// UpdateQuantity sets a cart row's quantity. Zero or negative removes
// the row.
func (s *CartService) UpdateQuantity(userID, itemID uint, quantity int) error {
	item, err := s.carts.Find(userID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.NotFound, "Cart item not found")
		}
		return err
	}

	if quantity <= 0 {
		return s.carts.Delete(&item)
	}
	return s.carts.SetQuantity(&item, quantity)
}

// Remove deletes one cart row owned by the user.
func (s *CartService) Remove(userID, itemID uint) error {
	item, err := s.carts.Find(userID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.NotFound, "Cart item not found")
		}
		return err
	}
	return s.carts.Delete(&item)
}

// Clear empties the user's cart. Clearing an already empty cart
// succeeds.
func (s *CartService) Clear(userID uint) error {
	return s.carts.Clear(userID)
}
