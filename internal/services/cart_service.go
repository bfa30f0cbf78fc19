// internal/services/cart_service.go
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
	ErrCartConflict     = errors.New("cart was modified by another request")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrProductNoStock   = errors.New("product is out of stock")
)

type CartService struct {
	db *gorm.DB
}

type AddCartItemRequest struct {
	ProductID       uuid.UUID `json:"product_id" validate:"required"`
	Quantity        int       `json:"quantity" validate:"required,min=1"`
	SelectedColor   string    `json:"selected_color,omitempty"`
	SelectedSize    string    `json:"selected_size,omitempty"`
	ExpectedVersion *int      `json:"expected_version,omitempty"`
}

type UpdateCartItemRequest struct {
	Quantity        int  `json:"quantity" validate:"required,min=1"`
	ExpectedVersion *int `json:"expected_version,omitempty"`
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// GetOrCreate loads the shopper's cart, creating an empty one on first read.
// Carts persisted under an older schema version are migrated in place.
func (s *CartService) GetOrCreate(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := s.db.WithContext(ctx).Preload("Items").Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID, SchemaVersion: models.CartSchemaVersion, Version: 1}
		if err := s.db.WithContext(ctx).Create(&cart).Error; err != nil {
			return nil, fmt.Errorf("failed to create cart: %w", err)
		}
		return &cart, nil
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	if cart.Migrate() {
		if err := s.db.WithContext(ctx).Model(&cart).Updates(map[string]interface{}{
			"schema_version": cart.SchemaVersion,
			"subtotal":       cart.Subtotal,
		}).Error; err != nil {
			return nil, fmt.Errorf("failed to migrate cart: %w", err)
		}
		for _, item := range cart.Items {
			if err := s.db.WithContext(ctx).Model(&models.CartItem{}).
				Where("id = ?", item.ID).Update("quantity", item.Quantity).Error; err != nil {
				return nil, fmt.Errorf("failed to migrate cart item: %w", err)
			}
		}
	}

	return &cart, nil
}

// AddItem snapshots the product onto a cart line, merging with an existing
// line that carries the same product, color and size.
func (s *CartService) AddItem(ctx context.Context, userID string, req *AddCartItemRequest) (*models.Cart, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	cart, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := checkVersion(cart, req.ExpectedVersion); err != nil {
		return nil, err
	}

	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, "id = ?", req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	if product.Status != models.ProductStatusInStock {
		return nil, ErrProductNoStock
	}

	before := len(cart.Items)
	line := cart.MergeItem(models.CartItem{
		CartID:        cart.ID,
		ProductID:     product.ID,
		Title:         product.Title,
		Price:         product.Price,
		ImageURL:      product.ImageURL,
		SelectedColor: req.SelectedColor,
		SelectedSize:  req.SelectedSize,
		Quantity:      req.Quantity,
	})

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(cart.Items) > before {
			if err := tx.Create(line).Error; err != nil {
				return fmt.Errorf("failed to create cart item: %w", err)
			}
		} else {
			if err := tx.Model(&models.CartItem{}).Where("id = ?", line.ID).
				Update("quantity", line.Quantity).Error; err != nil {
				return fmt.Errorf("failed to update cart item: %w", err)
			}
		}
		return s.bumpCart(tx, cart)
	})
	if err != nil {
		return nil, err
	}

	return cart, nil
}

func (s *CartService) UpdateItem(ctx context.Context, userID string, itemID uuid.UUID, req *UpdateCartItemRequest) (*models.Cart, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	cart, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := checkVersion(cart, req.ExpectedVersion); err != nil {
		return nil, err
	}

	line := cart.SetQuantity(itemID, req.Quantity)
	if line == nil {
		return nil, ErrCartItemNotFound
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.CartItem{}).Where("id = ?", line.ID).
			Update("quantity", line.Quantity).Error; err != nil {
			return fmt.Errorf("failed to update cart item: %w", err)
		}
		return s.bumpCart(tx, cart)
	})
	if err != nil {
		return nil, err
	}

	return cart, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID string, itemID uuid.UUID, expectedVersion *int) (*models.Cart, error) {
	cart, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := checkVersion(cart, expectedVersion); err != nil {
		return nil, err
	}

	if !cart.RemoveItem(itemID) {
		return nil, ErrCartItemNotFound
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Delete(&models.CartItem{}, "id = ?", itemID).Error; err != nil {
			return fmt.Errorf("failed to delete cart item: %w", err)
		}
		return s.bumpCart(tx, cart)
	})
	if err != nil {
		return nil, err
	}

	return cart, nil
}

// Clear removes the persisted cart state entirely, not just its lines.
func (s *CartService) Clear(ctx context.Context, userID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return clearCartTx(tx, userID)
	})
}

// clearCartTx is shared with the order persist transaction so checkout
// clears the cart atomically with the order write.
func clearCartTx(tx *gorm.DB, userID string) error {
	var cart models.Cart
	err := tx.Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}

	if err := tx.Unscoped().Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to delete cart items: %w", err)
	}
	if err := tx.Unscoped().Delete(&cart).Error; err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

func (s *CartService) bumpCart(tx *gorm.DB, cart *models.Cart) error {
	cart.Version++
	if err := tx.Model(&models.Cart{}).Where("id = ?", cart.ID).Updates(map[string]interface{}{
		"subtotal": cart.Subtotal,
		"version":  cart.Version,
	}).Error; err != nil {
		return fmt.Errorf("failed to update cart: %w", err)
	}
	return nil
}

func checkVersion(cart *models.Cart, expected *int) error {
	if expected != nil && *expected != cart.Version {
		return ErrCartConflict
	}
	return nil
}
