package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/766ms/Glam-rent-v1/app/models"
	"github.com/766ms/Glam-rent-v1/app/repositories"
	"github.com/766ms/Glam-rent-v1/pkg/apperr"
	"github.com/766ms/Glam-rent-v1/pkg/cache"
	"github.com/766ms/Glam-rent-v1/pkg/metrics"
)

const (
	cacheKeyProducts   = "catalog:products"
	cacheKeyCategories = "catalog:categories"
	catalogCacheTTL    = 5 * time.Minute
)

// ProductInput carries every writable product field for create and
// update. Pointer fields distinguish "absent" from zero on updates.
type ProductInput struct {
	Name        string   `json:"name" validate:"required,min=2,max=255"`
	Description string   `json:"description" validate:"nullable,max=5000"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Size        string   `json:"size" validate:"nullable,max=100"`
	Color       string   `json:"color" validate:"nullable,max=100"`
	ImageURL    string   `json:"image_url" validate:"nullable,max=500"`
	Stock       *int     `json:"stock" validate:"required,gte=0"`
	CategoryID  *uint    `json:"category_id" validate:"nullable"`
}

// ProductUpdate is a partial update; only non-nil fields are applied.
type ProductUpdate struct {
	Name        *string  `json:"name" validate:"nullable,min=2,max=255"`
	Description *string  `json:"description" validate:"nullable,max=5000"`
	Price       *float64 `json:"price" validate:"nullable,gte=0"`
	Size        *string  `json:"size" validate:"nullable,max=100"`
	Color       *string  `json:"color" validate:"nullable,max=100"`
	ImageURL    *string  `json:"image_url" validate:"nullable,max=500"`
	Stock       *int     `json:"stock" validate:"nullable,gte=0"`
	CategoryID  *uint    `json:"category_id" validate:"nullable"`
}

// CatalogService serves products and categories, with a Redis read
// cache in front of the listing queries.
type CatalogService struct {
	products *repositories.ProductRepository
	cache    *cache.Store
}

func NewCatalogService(products *repositories.ProductRepository, store *cache.Store) *CatalogService {
	return &CatalogService{products: products, cache: store}
}

// List returns the full catalogue, served from cache when warm.
func (s *CatalogService) List(ctx context.Context) ([]models.Product, error) {
	var cached []models.Product
	if s.cache.Get(ctx, cacheKeyProducts, &cached) {
		metrics.CacheHits.Inc()
		return cached, nil
	}
	metrics.CacheMisses.Inc()

	products, err := s.products.All()
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, cacheKeyProducts, products, catalogCacheTTL)
	return products, nil
}

// Get returns one product by ID.
func (s *CatalogService) Get(id uint) (models.Product, error) {
	p, err := s.products.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Product{}, apperr.New(apperr.NotFound, "Product not found")
	}
	return p, err
}

// Search matches the query against name, description and color. An
// empty or whitespace query returns an empty result, never the whole
// catalogue.
func (s *CatalogService) Search(q string) ([]models.Product, error) {
	return s.products.Search(q)
}

// Categories lists every category, served from cache when warm.
func (s *CatalogService) Categories(ctx context.Context) ([]models.Category, error) {
	var cached []models.Category
	if s.cache.Get(ctx, cacheKeyCategories, &cached) {
		metrics.CacheHits.Inc()
		return cached, nil
	}
	metrics.CacheMisses.Inc()

	categories, err := s.products.Categories()
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, cacheKeyCategories, categories, catalogCacheTTL)
	return categories, nil
}

// CreateProduct adds a dress to the catalogue. A category reference must
// point at an existing category.
func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (models.Product, error) {
	if in.CategoryID != nil {
		if _, err := s.products.CategoryByID(*in.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.Product{}, apperr.New(apperr.Validation, "Category does not exist")
			}
			return models.Product{}, err
		}
	}

	p := models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       *in.Price,
		Size:        in.Size,
		Color:       in.Color,
		ImageURL:    in.ImageURL,
		Stock:       *in.Stock,
		CategoryID:  in.CategoryID,
	}
	if err := s.products.Create(&p); err != nil {
		return models.Product{}, err
	}

	s.invalidate(ctx)
	return s.Get(p.ID)
}

// UpdateProduct applies a partial update to one product.
func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, in ProductUpdate) (models.Product, error) {
	if _, err := s.Get(id); err != nil {
		return models.Product{}, err
	}

	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Price != nil {
		fields["price"] = *in.Price
	}
	if in.Size != nil {
		fields["size"] = *in.Size
	}
	if in.Color != nil {
		fields["color"] = *in.Color
	}
	if in.ImageURL != nil {
		fields["image_url"] = *in.ImageURL
	}
	if in.Stock != nil {
		fields["stock"] = *in.Stock
	}
	if in.CategoryID != nil {
		if _, err := s.products.CategoryByID(*in.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.Product{}, apperr.New(apperr.Validation, "Category does not exist")
			}
			return models.Product{}, err
		}
		fields["category_id"] = *in.CategoryID
	}

	if len(fields) > 0 {
		if err := s.products.Update(id, fields); err != nil {
			return models.Product{}, err
		}
		s.invalidate(ctx)
	}
	return s.Get(id)
}

// DeleteProduct removes a product from the catalogue.
func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.products.Delete(id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// CreateCategory adds a category. Names are unique.
func (s *CatalogService) CreateCategory(ctx context.Context, name, description string) (models.Category, error) {
	if _, err := s.products.CategoryByName(name); err == nil {
		return models.Category{}, apperr.New(apperr.Conflict, "Category already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Category{}, err
	}

	c := models.Category{Name: name, Description: description}
	if err := s.products.CreateCategory(&c); err != nil {
		return models.Category{}, err
	}
	s.invalidate(ctx)
	return c, nil
}

func (s *CatalogService) invalidate(ctx context.Context) {
	_ = s.cache.Del(ctx, cacheKeyProducts, cacheKeyCategories)
}
