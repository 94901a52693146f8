package models

import "time"

// CartItem is one product row in a user's cart. A user holds at most one
// row per product; adding the same product again merges quantities.
//
// No soft delete here: a removed cart row is gone, and the unique index
// on (user_id, product_id) must not collide with archived rows when the
// user adds the product again.
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Quantity  int       `gorm:"not null;default:1"                        json:"quantity"`

	Product Product `gorm:"foreignKey:ProductID" json:"product"`
}
