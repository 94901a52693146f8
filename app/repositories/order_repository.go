package repositories

import (
	"gorm.io/gorm"

	"github.com/766ms/Glam-rent-v1/app/models"
)

// OrderStats aggregates the numbers shown on the admin dashboard.
type OrderStats struct {
	TotalOrders   int64   `json:"total_orders"`
	PendingOrders int64   `json:"pending_orders"`
	PaidOrders    int64   `json:"paid_orders"`
	Revenue       float64 `json:"revenue"`
	StockOuts     int64   `json:"stock_outs"`
}

// OrderRepository handles database operations for orders and their lines.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// DB exposes the underlying handle so services can run multi-repository
// work inside one transaction.
func (r *OrderRepository) DB() *gorm.DB {
	return r.db
}

// Create persists an order together with its lines in one transaction.
func (r *OrderRepository) Create(order *models.Order) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
}

// FindByID returns one order with lines and products preloaded.
func (r *OrderRepository) FindByID(id uint) (models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").Preload("Items.Product").First(&order, id).Error
	return order, err
}

// FindForUser returns one order only if it belongs to the user.
func (r *OrderRepository) FindForUser(userID, orderID uint) (models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").Preload("Items.Product").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	return order, err
}

// ForUser returns the user's orders, newest first, with lines preloaded.
func (r *OrderRepository) ForUser(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("id desc").
		Find(&orders).Error
	return orders, err
}

// All returns every order, newest first, optionally filtered by status.
func (r *OrderRepository) All(status string) ([]models.Order, error) {
	q := r.db.Preload("Items").Preload("Items.Product").Preload("User").
		Order("id desc")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var orders []models.Order
	err := q.Find(&orders).Error
	return orders, err
}

// UpdateStatus overwrites the status of one order.
func (r *OrderRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.Order{}).Where("id = ?", id).
		Update("status", status).Error
}

// Stats returns the admin dashboard aggregates. Revenue counts paid,
// shipped and completed orders.
func (r *OrderRepository) Stats() (OrderStats, error) {
	var s OrderStats

	if err := r.db.Model(&models.Order{}).Count(&s.TotalOrders).Error; err != nil {
		return s, err
	}
	if err := r.db.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusPending).
		Count(&s.PendingOrders).Error; err != nil {
		return s, err
	}
	if err := r.db.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusPaid).
		Count(&s.PaidOrders).Error; err != nil {
		return s, err
	}

	var revenue struct{ Total float64 }
	err := r.db.Model(&models.Order{}).
		Select("COALESCE(SUM(total), 0) as total").
		Where("status IN ?", []string{
			models.OrderStatusPaid,
			models.OrderStatusShipped,
			models.OrderStatusCompleted,
		}).
		Scan(&revenue).Error
	if err != nil {
		return s, err
	}
	s.Revenue = revenue.Total

	if err := r.db.Model(&models.Product{}).
		Where("stock <= 0").
		Count(&s.StockOuts).Error; err != nil {
		return s, err
	}
	return s, nil
}
