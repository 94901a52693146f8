package controllers

import (
	"net/http"

	"github.com/766ms/Glam-rent-v1/app/services"
	"github.com/766ms/Glam-rent-v1/pkg/bind"
	"github.com/766ms/Glam-rent-v1/pkg/response"
)

type CategoryController struct {
	catalog *services.CatalogService
}

func NewCategoryController(catalog *services.CatalogService) *CategoryController {
	return &CategoryController{catalog: catalog}
}

func (c *CategoryController) List(w http.ResponseWriter, r *http.Request) {
	categories, err := c.catalog.Categories(r.Context())
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Success(w, categories)
}

type createCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Description string `json:"description" validate:"nullable,max=5000"`
}

// Create adds a category. Admin only.
func (c *CategoryController) Create(w http.ResponseWriter, r *http.Request) {
	var body createCategoryRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Err(w, err)
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	category, err := c.catalog.CreateCategory(r.Context(), body.Name, body.Description)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Created(w, category)
}
