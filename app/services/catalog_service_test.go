package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/766ms/Glam-rent-v1/app/models"
	"github.com/766ms/Glam-rent-v1/pkg/apperr"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }

func TestSearchMatchesNameDescriptionColor(t *testing.T) {
	env := newTestEnv(t)
	env.createProduct(t, "Wings of Losie Corset Dress", 299999, 10)
	require.NoError(t, env.db.Create(&models.Product{
		Name:        "Secret Envoy Dress",
		Description: "Vestido secreto de gala",
		Price:       199999,
		Color:       "Blanco",
		Stock:       15,
	}).Error)

	byName, err := env.catalog.Search("wings")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Wings of Losie Corset Dress", byName[0].Name)

	byDescription, err := env.catalog.Search("GALA")
	require.NoError(t, err)
	require.Len(t, byDescription, 1)
	assert.Equal(t, "Secret Envoy Dress", byDescription[0].Name)

	byColor, err := env.catalog.Search("blanco")
	require.NoError(t, err)
	assert.Len(t, byColor, 1)
}

func TestSearchEmptyQueryReturnsNothing(t *testing.T) {
	env := newTestEnv(t)
	env.createProduct(t, "Perla Encantada", 249999, 12)

	for _, q := range []string{"", "   "} {
		results, err := env.catalog.Search(q)
		require.NoError(t, err)
		assert.Empty(t, results)
	}
}

func TestCreateProductWithCategory(t *testing.T) {
	env := newTestEnv(t)
	cat, err := env.catalog.CreateCategory(context.Background(), "Vestidos de Fiesta", "")
	require.NoError(t, err)

	product, err := env.catalog.CreateProduct(context.Background(), ProductInput{
		Name:       "Dama Carmesí",
		Price:      floatPtr(189999),
		Stock:      intPtr(10),
		Color:      "Rojo",
		CategoryID: &cat.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, product.Category)
	assert.Equal(t, "Vestidos de Fiesta", product.Category.Name)

	// A missing category is a client error.
	missing := uint(999)
	_, err = env.catalog.CreateProduct(context.Background(), ProductInput{
		Name:       "Aurora de Cristal",
		Price:      floatPtr(329999),
		Stock:      intPtr(7),
		CategoryID: &missing,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestUpdateProductPartial(t *testing.T) {
	env := newTestEnv(t)
	dress := env.createProduct(t, "Susurro de Cielo", 159999, 9)

	updated, err := env.catalog.UpdateProduct(context.Background(), dress.ID, ProductUpdate{
		Price: floatPtr(179999),
		Stock: intPtr(4),
	})
	require.NoError(t, err)
	assert.Equal(t, float64(179999), updated.Price)
	assert.Equal(t, 4, updated.Stock)
	// Untouched fields survive.
	assert.Equal(t, "Susurro de Cielo", updated.Name)
	assert.Equal(t, "Rosa", updated.Color)

	renamed, err := env.catalog.UpdateProduct(context.Background(), dress.ID, ProductUpdate{
		Name: strPtr("Susurro del Cielo"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Susurro del Cielo", renamed.Name)
	assert.Equal(t, float64(179999), renamed.Price)
}

func TestDeleteProduct(t *testing.T) {
	env := newTestEnv(t)
	dress := env.createProduct(t, "Jardín Secreto", 349999, 6)

	require.NoError(t, env.catalog.DeleteProduct(context.Background(), dress.ID))

	_, err := env.catalog.Get(dress.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	err = env.catalog.DeleteProduct(context.Background(), dress.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestCreateCategoryDuplicate(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.catalog.CreateCategory(context.Background(), "Vestidos de Noche", "")
	require.NoError(t, err)

	_, err = env.catalog.CreateCategory(context.Background(), "Vestidos de Noche", "otra")
	require.Error(t, err)
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
}
