package models

import "gorm.io/gorm"

// Category groups products in the catalogue.
type Category struct {
	gorm.Model
	Name        string `gorm:"uniqueIndex;size:255;not null" json:"name"`
	Description string `gorm:"type:text"                     json:"description"`
}

// Product represents a dress in the catalogue. Price is stored in COP,
// a zero-decimal currency, so float values are always whole numbers.
type Product struct {
	gorm.Model
	Name        string  `gorm:"size:255;not null;index" json:"name"`
	Description string  `gorm:"type:text"              json:"description"`
	Price       float64 `gorm:"not null;default:0"     json:"price"`
	Size        string  `gorm:"size:100"               json:"size"`
	Color       string  `gorm:"size:100"               json:"color"`
	ImageURL    string  `gorm:"size:500"               json:"image_url"`
	Stock       int     `gorm:"not null;default:0"     json:"stock"`
	CategoryID  *uint   `gorm:"index"                  json:"category_id"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
