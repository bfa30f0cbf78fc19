// internal/services/order_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vanleybasso/ladiversite/internal/models"
	"github.com/vanleybasso/ladiversite/internal/utils"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrNotOrderOwner = errors.New("unauthorized to access this order")
)

type OrderService struct {
	db *gorm.DB
}

type AttachReviewRequest struct {
	OrderItemID uuid.UUID `json:"order_item_id" validate:"required"`
	Rating      int       `json:"rating" validate:"required,min=1,max=5"`
	Comment     string    `json:"comment,omitempty"`
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// ListByUser returns a shopper's orders, newest first.
func (s *OrderService) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.WithContext(ctx).Preload("Items").
		Where("user_id = ?", userID).
		Order("placed_at DESC").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

// AttachReview stores a review on one line item of the caller's order and
// refreshes the product's derived rating aggregates.
func (s *OrderService) AttachReview(ctx context.Context, orderID uuid.UUID, userID, reviewerName string, req *AttachReviewRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrNotOrderOwner
	}

	item, err := order.AttachReview(req.OrderItemID, models.Review{
		Rating:       req.Rating,
		Comment:      req.Comment,
		ReviewerName: reviewerName,
	})
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.OrderItem{}).Where("id = ?", item.ID).Updates(map[string]interface{}{
			"review_rating":        item.Review.Rating,
			"review_comment":       item.Review.Comment,
			"review_reviewer_name": item.Review.ReviewerName,
			"review_date":          item.Review.Date,
		}).Error; err != nil {
			return fmt.Errorf("failed to save review: %w", err)
		}
		return refreshProductRating(tx, item.ProductID)
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// refreshProductRating rederives the product's rating and review count from
// the reviews attached to order line items. The aggregates are display
// sugar; the line items stay authoritative.
func refreshProductRating(tx *gorm.DB, productID uuid.UUID) error {
	var agg struct {
		Count  int64
		Rating float64
	}
	if err := tx.Model(&models.OrderItem{}).
		Select("COUNT(*) AS count, COALESCE(AVG(review_rating), 0) AS rating").
		Where("product_id = ? AND review_rating > 0", productID).
		Scan(&agg).Error; err != nil {
		return fmt.Errorf("failed to aggregate reviews: %w", err)
	}

	if err := tx.Model(&models.Product{}).Where("id = ?", productID).Updates(map[string]interface{}{
		"rating":        agg.Rating,
		"reviews_count": agg.Count,
	}).Error; err != nil {
		return fmt.Errorf("failed to update product rating: %w", err)
	}
	return nil
}

// CountByUser implements CheckoutOrders.
func (s *OrderService) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

// Persist implements CheckoutOrders: one transaction counts prior orders,
// lets the caller finalize the first-order fields, writes the order and
// clears the shopper's cart.
func (s *OrderService) Persist(ctx context.Context, order *models.Order, finalize func(priorOrders int64)) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prior int64
		if err := tx.Model(&models.Order{}).
			Where("user_id = ?", order.UserID).Count(&prior).Error; err != nil {
			return fmt.Errorf("failed to count prior orders: %w", err)
		}

		finalize(prior)

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		return clearCartTx(tx, order.UserID)
	})
}

// MarkPaid implements CheckoutOrders.
func (s *OrderService) MarkPaid(ctx context.Context, orderID uuid.UUID) error {
	tag := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("payment_status", models.PaymentStatusPaid)
	if tag.Error != nil {
		return fmt.Errorf("failed to mark order paid: %w", tag.Error)
	}
	if tag.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
