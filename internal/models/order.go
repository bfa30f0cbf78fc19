// internal/models/order.go
package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrReviewRating   = errors.New("rating must be between 1 and 5")
	ErrItemNotInOrder = errors.New("item does not belong to this order")
)

type ShippingAddress struct {
	ZipCode       string `json:"zip_code" gorm:"size:8;not null"`
	StreetAddress string `json:"street_address" gorm:"size:255;not null"`
	City          string `json:"city" gorm:"size:100;not null"`
	State         string `json:"state" gorm:"size:100;not null"`
	Country       string `json:"country" gorm:"size:100;not null"`
}

type Order struct {
	BaseModel
	UserID          string          `json:"user_id" gorm:"size:64;not null;index"`
	Items           []OrderItem     `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Subtotal        float64         `json:"subtotal" gorm:"type:decimal(10,2);not null"`
	Shipping        float64         `json:"shipping" gorm:"type:decimal(10,2);not null"`
	Tax             float64         `json:"tax" gorm:"type:decimal(10,2);not null"`
	OriginalTotal   float64         `json:"original_total" gorm:"type:decimal(10,2);not null"`
	DiscountApplied float64         `json:"discount_applied" gorm:"type:decimal(10,2);default:0"`
	Total           float64         `json:"total" gorm:"type:decimal(10,2);not null"`
	IsFirstOrder    bool            `json:"is_first_order" gorm:"default:false"`
	ShippingAddress ShippingAddress `json:"shipping_address" gorm:"embedded;embeddedPrefix:shipping_"`
	PaymentMethod   PaymentMethod   `json:"payment_method" gorm:"type:varchar(20);not null"`
	PaymentStatus   PaymentStatus   `json:"payment_status" gorm:"type:varchar(20);default:'pending';index"`
	PlacedAt        time.Time       `json:"placed_at"`
}

// A review is keyed to a specific purchase, so it is embedded in the order
// line item rather than stored globally on the product.
type Review struct {
	Rating       int        `json:"rating,omitempty" gorm:"default:0"`
	Comment      string     `json:"comment,omitempty" gorm:"type:text"`
	ReviewerName string     `json:"reviewer_name,omitempty" gorm:"size:255"`
	Date         *time.Time `json:"date,omitempty"`
}

type OrderItem struct {
	BaseModel
	OrderID       uuid.UUID `json:"order_id" gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	Title         string    `json:"title" gorm:"size:255;not null"`
	Price         float64   `json:"price" gorm:"type:decimal(10,2);not null"`
	ImageURL      string    `json:"image_url" gorm:"size:512"`
	SelectedColor string    `json:"selected_color" gorm:"size:50"`
	SelectedSize  string    `json:"selected_size" gorm:"size:50"`
	Quantity      int       `json:"quantity" gorm:"not null"`
	Review        Review    `json:"review,omitempty" gorm:"embedded;embeddedPrefix:review_"`
}

func (i *OrderItem) Reviewed() bool {
	return i.Review.Rating > 0
}

// AttachReview stores a review on the line item identified by itemID.
// Rating zero (or anything outside 1..5) is rejected.
func (o *Order) AttachReview(itemID uuid.UUID, review Review) (*OrderItem, error) {
	if review.Rating < 1 || review.Rating > 5 {
		return nil, ErrReviewRating
	}

	for i := range o.Items {
		if o.Items[i].ID == itemID {
			if review.Date == nil {
				now := time.Now()
				review.Date = &now
			}
			o.Items[i].Review = review
			return &o.Items[i], nil
		}
	}
	return nil, ErrItemNotInOrder
}
