// internal/models/product.go
package models

import (
	"github.com/lib/pq"
)

type Product struct {
	BaseModel
	Title        string         `json:"title" gorm:"size:255;not null"`
	Description  string         `json:"description" gorm:"type:text"`
	Category     string         `json:"category" gorm:"size:100;index"`
	Price        float64        `json:"price" gorm:"type:decimal(10,2);not null"`
	Status       ProductStatus  `json:"status" gorm:"type:varchar(20);default:'IN STOCK';index"`
	ImageURL     string         `json:"image_url" gorm:"size:512"`
	AltText      string         `json:"alt_text" gorm:"size:255"`
	Images       pq.StringArray `json:"images" gorm:"type:text[]"`
	Rating       float64        `json:"rating" gorm:"type:decimal(3,2);default:0"`
	ReviewsCount int64          `json:"reviews_count" gorm:"default:0"`
}

// Categories carried by the storefront. The catalog schema does not model
// per-product color/size variants; those live on cart lines only.
var Categories = []string{
	"Cerveja",
	"Vinho",
	"Whiskey",
	"Vodka",
	"Gin",
	"Licor",
	"Espumante",
}

func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}
