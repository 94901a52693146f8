package controllers

import (
	"net/http"

	"github.com/766ms/Glam-rent-v1/app/services"
	"github.com/766ms/Glam-rent-v1/pkg/bind"
	"github.com/766ms/Glam-rent-v1/pkg/response"
)

type ProductController struct {
	catalog *services.CatalogService
}

func NewProductController(catalog *services.CatalogService) *ProductController {
	return &ProductController{catalog: catalog}
}

// List serves the whole catalogue.
func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	products, err := c.catalog.List(r.Context())
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Success(w, products)
}

// Search filters the catalogue by the q query parameter.
func (c *ProductController) Search(w http.ResponseWriter, r *http.Request) {
	products, err := c.catalog.Search(r.URL.Query().Get("q"))
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Success(w, products)
}

// Get serves one product.
func (c *ProductController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "id")
	if err != nil {
		response.Err(w, err)
		return
	}

	product, err := c.catalog.Get(id)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Success(w, product)
}

// Create adds a product. Admin only.
func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	var body services.ProductInput
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Err(w, err)
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.catalog.CreateProduct(r.Context(), body)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Created(w, product)
}

// Update applies a partial product edit. Admin only.
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "id")
	if err != nil {
		response.Err(w, err)
		return
	}

	var body services.ProductUpdate
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Err(w, err)
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.catalog.UpdateProduct(r.Context(), id, body)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Success(w, product)
}

// Delete removes a product. Admin only.
func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "id")
	if err != nil {
		response.Err(w, err)
		return
	}

	if err := c.catalog.DeleteProduct(r.Context(), id); err != nil {
		response.Err(w, err)
		return
	}
	response.Success(w, map[string]any{"deleted": id})
}
