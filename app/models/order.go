package models

import "gorm.io/gorm"

// Order statuses. An order starts pending and moves forward when its
// payment is confirmed; admins may set any status from the console.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// OrderStatuses lists every valid order status.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusPaid,
	OrderStatusShipped,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// ValidOrderStatus reports whether s is a recognised order status.
func ValidOrderStatus(s string) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Order is a placed order with its snapshot total in COP.
type Order struct {
	gorm.Model
	UserID          uint    `gorm:"not null;index"         json:"user_id"`
	Total           float64 `gorm:"not null;default:0"     json:"total"`
	Status          string  `gorm:"size:50;default:pending;index" json:"status"`
	PaymentRef      string  `gorm:"size:255"               json:"payment_ref,omitempty"`
	ShippingAddress string  `gorm:"type:text"              json:"shipping_address"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	User  *User       `gorm:"foreignKey:UserID"  json:"user,omitempty"`
}

// OrderItem is one line of an order. Price is frozen at order creation so
// later catalogue edits never change what the customer owes.
type OrderItem struct {
	gorm.Model
	OrderID   uint    `gorm:"not null;index"     json:"order_id"`
	ProductID uint    `gorm:"not null;index"     json:"product_id"`
	Quantity  int     `gorm:"not null;default:1" json:"quantity"`
	Price     float64 `gorm:"not null;default:0" json:"price"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
