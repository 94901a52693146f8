package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/766ms/Glam-rent-v1/app/models"
)

// CartRepository handles database operations for cart items.
type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// ItemsForUser returns the user's cart rows with products preloaded,
// oldest first so the cart keeps a stable display order.
func (r *CartRepository) ItemsForUser(userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.Preload("Product").
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&items).Error
	return items, err
}

// Find returns one cart row owned by the user.
func (r *CartRepository) Find(userID, itemID uint) (models.CartItem, error) {
	var item models.CartItem
	err := r.db.Preload("Product").
		Where("id = ? AND user_id = ?", itemID, userID).
		First(&item).Error
	return item, err
}

// Upsert adds quantity to an existing row for (user, product), or creates
// the row when the product is not in the cart yet.
func (r *CartRepository) Upsert(userID, productID uint, quantity int) (models.CartItem, error) {
	var item models.CartItem
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND product_id = ?", userID, productID).First(&item)
		if res.Error == nil {
			item.Quantity += quantity
			return tx.Save(&item).Error
		}
		if !errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return res.Error
		}
		item = models.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
		return tx.Create(&item).Error
	})
	if err != nil {
		return models.CartItem{}, err
	}
	return r.Find(userID, item.ID)
}

// SetQuantity overwrites the quantity of one cart row.
func (r *CartRepository) SetQuantity(item *models.CartItem, quantity int) error {
	item.Quantity = quantity
	return r.db.Save(item).Error
}

// Delete removes one cart row.
func (r *CartRepository) Delete(item *models.CartItem) error {
	return r.db.Delete(item).Error
}

// Clear removes every cart row for the user. Clearing an empty cart is
// not an error.
func (r *CartRepository) Clear(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}
