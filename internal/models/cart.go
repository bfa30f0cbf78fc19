// internal/models/cart.go
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartSchemaVersion is the current shape of the persisted cart state.
// Version 1 carts carried a client-computed subtotal that could be stale;
// migration recomputes it and normalizes quantities.
const CartSchemaVersion = 2

type Cart struct {
	BaseModel
	UserID        string     `json:"user_id" gorm:"size:64;uniqueIndex;not null"`
	SchemaVersion int        `json:"schema_version" gorm:"default:2"`
	Version       int        `json:"version" gorm:"default:1"`
	Subtotal      float64    `json:"subtotal" gorm:"type:decimal(10,2);default:0"`
	Items         []CartItem `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

type CartItem struct {
	BaseModel
	CartID        uuid.UUID `json:"cart_id" gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	Title         string    `json:"title" gorm:"size:255;not null"`
	Price         float64   `json:"price" gorm:"type:decimal(10,2);not null"`
	ImageURL      string    `json:"image_url" gorm:"size:512"`
	SelectedColor string    `json:"selected_color" gorm:"size:50"`
	SelectedSize  string    `json:"selected_size" gorm:"size:50"`
	Quantity      int       `json:"quantity" gorm:"not null"`
}

// MergeItem folds a new line into the cart: an existing line with the same
// product, color and size absorbs the quantity; otherwise the line is
// appended. Returns the affected line.
func (c *Cart) MergeItem(item CartItem) *CartItem {
	for i := range c.Items {
		existing := &c.Items[i]
		if existing.ProductID == item.ProductID &&
			existing.SelectedColor == item.SelectedColor &&
			existing.SelectedSize == item.SelectedSize {
			existing.Quantity += item.Quantity
			c.RecalculateSubtotal()
			return existing
		}
	}

	c.Items = append(c.Items, item)
	c.RecalculateSubtotal()
	return &c.Items[len(c.Items)-1]
}

// SetQuantity updates a line's quantity, never below one.
func (c *Cart) SetQuantity(itemID uuid.UUID, quantity int) *CartItem {
	if quantity < 1 {
		quantity = 1
	}

	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items[i].Quantity = quantity
			c.RecalculateSubtotal()
			return &c.Items[i]
		}
	}
	return nil
}

// RemoveItem drops a line from the cart. Returns false when the line is not
// in the cart.
func (c *Cart) RemoveItem(itemID uuid.UUID) bool {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.RecalculateSubtotal()
			return true
		}
	}
	return false
}

// RecalculateSubtotal derives the subtotal from the current lines. Cents
// precision via decimal; the float is only the storage form.
func (c *Cart) RecalculateSubtotal() {
	sum := decimal.Zero
	for _, item := range c.Items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		sum = sum.Add(line)
	}
	c.Subtotal, _ = sum.Round(2).Float64()
}

// Migrate upgrades a cart loaded from an older schema version to the current
// one. Reports whether anything changed and needs to be written back.
func (c *Cart) Migrate() bool {
	if c.SchemaVersion >= CartSchemaVersion {
		return false
	}

	for i := range c.Items {
		if c.Items[i].Quantity < 1 {
			c.Items[i].Quantity = 1
		}
	}
	c.RecalculateSubtotal()
	c.SchemaVersion = CartSchemaVersion
	return true
}
