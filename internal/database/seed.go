// internal/database/seed.go
package database

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/vanleybasso/ladiversite/internal/models"
)

type seedProduct struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	Status      string   `json:"status"`
	ImageURL    string   `json:"image_url"`
	AltText     string   `json:"alt_text"`
	Images      []string `json:"images"`
}

// Seed loads the initial catalog from a JSON file. It only runs against an
// empty products table, so restarts never duplicate the catalog. A missing
// seed file is not an error.
func Seed(db *gorm.DB, path string) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		logrus.WithField("products", count).Debug("Catalog already seeded, skipping")
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logrus.WithField("path", path).Warn("Seed file not found, starting with an empty catalog")
			return nil
		}
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var seeds []seedProduct
	if err := json.Unmarshal(data, &seeds); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	products := make([]models.Product, 0, len(seeds))
	for _, s := range seeds {
		status := models.ProductStatus(s.Status)
		if status != models.ProductStatusInStock && status != models.ProductStatusNoStock {
			status = models.ProductStatusInStock
		}
		products = append(products, models.Product{
			Title:       s.Title,
			Description: s.Description,
			Category:    s.Category,
			Price:       s.Price,
			Status:      status,
			ImageURL:    s.ImageURL,
			AltText:     s.AltText,
			Images:      s.Images,
		})
	}

	if len(products) == 0 {
		return nil
	}

	if err := db.Create(&products).Error; err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	logrus.WithField("products", len(products)).Info("Catalog seeded")
	return nil
}
