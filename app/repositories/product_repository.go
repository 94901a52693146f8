package repositories

import (
	"strings"

	"gorm.io/gorm"

	"github.com/766ms/Glam-rent-v1/app/models"
)

// ProductRepository handles database operations for the catalogue.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// All returns every product with its category preloaded, newest first.
func (r *ProductRepository) All() ([]models.Product, error) {
	var products []models.Product
	err := r.db.Preload("Category").Order("id desc").Find(&products).Error
	return products, err
}

// FindByID looks up one product with its category preloaded.
func (r *ProductRepository) FindByID(id uint) (models.Product, error) {
	var p models.Product
	err := r.db.Preload("Category").First(&p, id).Error
	return p, err
}

// Search matches q case-insensitively against name, description and
// color. An empty query matches nothing.
func (r *ProductRepository) Search(q string) ([]models.Product, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []models.Product{}, nil
	}

	pattern := "%" + strings.ToLower(q) + "%"
	var products []models.Product
	err := r.db.Preload("Category").
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(color) LIKE ?",
			pattern, pattern, pattern).
		Order("id desc").
		Find(&products).Error
	return products, err
}

// ByCategory returns all products belonging to one category.
func (r *ProductRepository) ByCategory(categoryID uint) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Preload("Category").
		Where("category_id = ?", categoryID).
		Order("id desc").
		Find(&products).Error
	return products, err
}

// Create persists a new product.
func (r *ProductRepository) Create(p *models.Product) error {
	return r.db.Create(p).Error
}

// Update applies the given column changes to a product. Only the fields
// present in the map are touched.
func (r *ProductRepository) Update(id uint, fields map[string]any) error {
	return r.db.Model(&models.Product{}).Where("id = ?", id).Updates(fields).Error
}

// Delete soft-deletes a product.
func (r *ProductRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}

// CountProducts returns total products in the catalogue.
func (r *ProductRepository) CountProducts() (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Count(&count).Error
	return count, err
}

// Categories returns all categories ordered by name.
func (r *ProductRepository) Categories() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Order("name asc").Find(&categories).Error
	return categories, err
}

// CategoryByName looks up a category by its unique name.
func (r *ProductRepository) CategoryByName(name string) (models.Category, error) {
	var c models.Category
	err := r.db.Where("name = ?", name).First(&c).Error
	return c, err
}

// CategoryByID looks up a category by primary key.
func (r *ProductRepository) CategoryByID(id uint) (models.Category, error) {
	var c models.Category
	err := r.db.First(&c, id).Error
	return c, err
}

// CreateCategory persists a new category.
func (r *ProductRepository) CreateCategory(c *models.Category) error {
	return r.db.Create(c).Error
}
