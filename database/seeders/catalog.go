package seeders

import (
	"errors"

	"gorm.io/gorm"

	"github.com/766ms/Glam-rent-v1/app/models"
)

func init() {
	Register("categories", SeedCategories)
	Register("products", SeedProducts)
}

var baseCategories = []string{
	"Vestidos de Fiesta",
	"Vestidos de Noche",
	"Vestidos Casuales",
	"Vestidos de Graduación",
	"Vestidos de Coctel",
}

// SeedCategories inserts the base categories, skipping ones that
// already exist.
func SeedCategories(db *gorm.DB) error {
	for _, name := range baseCategories {
		var existing models.Category
		err := db.Where("name = ?", name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&models.Category{Name: name}).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedProducts loads the launch catalogue. Prices are in COP. The
// seeder is a no-op when the catalogue already has products.
func SeedProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := []models.Product{
		{
			Name:        "Wings of Losie Corset Dress",
			Description: "Elegante vestido con corsé estilo wings, perfecto para eventos especiales",
			Price:       299999,
			Size:        "S/M/L",
			Color:       "Rosa",
			ImageURL:    "imagenes/vestido 1.png",
			Stock:       10,
		},
		{
			Name:        "Secret Envoy Dress",
			Description: "Vestido secreto de gala con detalles únicos",
			Price:       199999,
			Size:        "S/M/L",
			Color:       "Blanco",
			ImageURL:    "imagenes/vestido 2.png",
			Stock:       15,
		},
		{
			Name:        "Flowing Light Hymn Dress",
			Description: "Vestido fluido con detalles de luz, diseño exclusivo",
			Price:       399999,
			Size:        "S/M/L",
			Color:       "Azul",
			ImageURL:    "imagenes/vestido 3.png",
			Stock:       8,
		},
		{
			Name:        "Perla Encantada",
			Description: "Corsé elegante con detalles de perlas incrustadas",
			Price:       249999,
			Size:        "S/M/L",
			Color:       "Perla",
			ImageURL:    "imagenes/CORSET 3.png",
			Stock:       12,
		},
		{
			Name:        "Dama Carmesí",
			Description: "Corsé rojo carmesí con ajuste perfecto",
			Price:       189999,
			Size:        "S/M/L",
			Color:       "Rojo",
			ImageURL:    "imagenes/CORSET 4.png",
			Stock:       10,
		},
		{
			Name:        "Aurora de Cristal",
			Description: "Corsé con cristales brillantes, diseño premium",
			Price:       329999,
			Size:        "S/M/L",
			Color:       "Cristal",
			ImageURL:    "imagenes/CORSET 5.png",
			Stock:       7,
		},
		{
			Name:        "Susurro de Cielo",
			Description: "Corsé celestial azul con bordados delicados",
			Price:       159999,
			Size:        "S/M/L",
			Color:       "Azul Cielo",
			ImageURL:    "imagenes/CORSET 6.png",
			Stock:       9,
		},
		{
			Name:        "Rosa de Ensueño",
			Description: "Corsé rosa de ensueño con detalles románticos",
			Price:       219999,
			Size:        "S/M/L",
			Color:       "Rosa",
			ImageURL:    "imagenes/CORSET 7.png",
			Stock:       11,
		},
		{
			Name:        "Jardín Secreto",
			Description: "Vestido corsé con detalles florales y encajes",
			Price:       349999,
			Size:        "S/M/L",
			Color:       "Verde",
			ImageURL:    "imagenes/VESTIDO CORSET 1.png",
			Stock:       6,
		},
	}

	return db.Create(&products).Error
}
