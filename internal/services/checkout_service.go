// internal/services/checkout_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/vanleybasso/ladiversite/internal/config"
	"github.com/vanleybasso/ladiversite/internal/models"
	"github.com/vanleybasso/ladiversite/internal/utils"
)

var (
	ErrCartEmpty     = errors.New("cart is empty")
	ErrDraftNotFound = errors.New("checkout draft not found")
	ErrDraftConsumed = errors.New("checkout draft already consumed")
	ErrCardDetails   = errors.New("card details are required for credit card payments")
)

// CheckoutCarts is the slice of the cart layer the checkout flow needs.
type CheckoutCarts interface {
	GetOrCreate(ctx context.Context, userID string) (*models.Cart, error)
}

// CheckoutOrders persists and settles orders. Persist runs finalize with a
// fresh prior-order count inside the same transaction that writes the order
// and clears the cart, so the first-order decision cannot race a concurrent
// submission.
type CheckoutOrders interface {
	CountByUser(ctx context.Context, userID string) (int64, error)
	Persist(ctx context.Context, order *models.Order, finalize func(priorOrders int64)) error
	MarkPaid(ctx context.Context, orderID uuid.UUID) error
}

// Notifier sends shopper-facing mail. May be nil when SMTP is unconfigured.
type Notifier interface {
	SendOrderConfirmation(order *models.Order, email, name string) error
}

type CheckoutService struct {
	carts    CheckoutCarts
	orders   CheckoutOrders
	drafts   *DraftStore
	notifier Notifier
	delay    time.Duration
}

type QuoteRequest struct {
	ZipCode       string `json:"zip_code" validate:"required,cep"`
	StreetAddress string `json:"street_address" validate:"required"`
	City          string `json:"city" validate:"required"`
	State         string `json:"state" validate:"required"`
	Country       string `json:"country" validate:"required"`
}

type CardDetails struct {
	Number string `json:"number" validate:"required"`
	Name   string `json:"name" validate:"required"`
	Expiry string `json:"expiry" validate:"required"`
	CVC    string `json:"cvc" validate:"required"`
}

type ConfirmPaymentRequest struct {
	DraftID       uuid.UUID    `json:"draft_id" validate:"required"`
	PaymentMethod string       `json:"payment_method" validate:"required,oneof=credit_card pix"`
	Card          *CardDetails `json:"card,omitempty"`
}

// Quote is the shopper-visible breakdown of a draft.
type Quote struct {
	DraftID         uuid.UUID `json:"draft_id"`
	Subtotal        float64   `json:"subtotal"`
	Shipping        float64   `json:"shipping"`
	Tax             float64   `json:"tax"`
	OriginalTotal   float64   `json:"original_total"`
	DiscountApplied float64   `json:"discount_applied"`
	Total           float64   `json:"total"`
	IsFirstOrder    bool      `json:"is_first_order"`
	ExpiresAt       time.Time `json:"expires_at"`
}

func NewCheckoutService(carts CheckoutCarts, orders CheckoutOrders, drafts *DraftStore, notifier Notifier, cfg config.PaymentConfig) *CheckoutService {
	return &CheckoutService{
		carts:    carts,
		orders:   orders,
		drafts:   drafts,
		notifier: notifier,
		delay:    time.Duration(cfg.SettlementDelayMs) * time.Millisecond,
	}
}

// PlaceOrder validates the shipping address, snapshots the cart into a
// transient draft and returns the quote. Nothing is persisted yet; the
// first-order flag here is advisory and is recomputed at confirmation.
func (s *CheckoutService) PlaceOrder(ctx context.Context, userID string, req *QuoteRequest) (*Quote, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}

	prior, err := s.orders.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count prior orders: %w", err)
	}
	firstOrder := prior == 0

	totals := ComputeTotals(decimal.NewFromFloat(cart.Subtotal), firstOrder)

	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, ci := range cart.Items {
		items = append(items, models.OrderItem{
			ProductID:     ci.ProductID,
			Title:         ci.Title,
			Price:         ci.Price,
			ImageURL:      ci.ImageURL,
			SelectedColor: ci.SelectedColor,
			SelectedSize:  ci.SelectedSize,
			Quantity:      ci.Quantity,
		})
	}

	draft := &OrderDraft{
		UserID: userID,
		Items:  items,
		ShippingAddress: models.ShippingAddress{
			ZipCode:       req.ZipCode,
			StreetAddress: req.StreetAddress,
			City:          req.City,
			State:         req.State,
			Country:       req.Country,
		},
		Totals:       totals,
		IsFirstOrder: firstOrder,
	}
	s.drafts.Put(draft)

	return &Quote{
		DraftID:         draft.ID,
		Subtotal:        totals.SubtotalFloat(),
		Shipping:        totals.ShippingFloat(),
		Tax:             totals.TaxFloat(),
		OriginalTotal:   totals.OriginalTotalFloat(),
		DiscountApplied: totals.DiscountAppliedFloat(),
		Total:           totals.TotalFloat(),
		IsFirstOrder:    firstOrder,
		ExpiresAt:       draft.ExpiresAt,
	}, nil
}

// ConfirmPayment consumes the draft exactly once and persists the order.
// Settlement is simulated: the order is created pending and flips to paid
// after a fixed delay, for both payment methods.
func (s *CheckoutService) ConfirmPayment(ctx context.Context, userID, email, fullName string, req *ConfirmPaymentRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	method := models.PaymentMethod(req.PaymentMethod)
	if method == models.PaymentMethodCreditCard {
		if req.Card == nil {
			return nil, ErrCardDetails
		}
		if err := utils.ValidateStruct(req.Card); err != nil {
			return nil, ErrCardDetails
		}
	}

	draft, result := s.drafts.Take(req.DraftID, userID)
	switch result {
	case DraftConsumed:
		return nil, ErrDraftConsumed
	case DraftMissing:
		return nil, ErrDraftNotFound
	}

	order := &models.Order{
		UserID:          userID,
		Items:           draft.Items,
		ShippingAddress: draft.ShippingAddress,
		PaymentMethod:   method,
		PaymentStatus:   models.PaymentStatusPending,
		PlacedAt:        time.Now(),
	}

	subtotal := draft.Totals.Subtotal
	err := s.orders.Persist(ctx, order, func(priorOrders int64) {
		totals := ComputeTotals(subtotal, priorOrders == 0)
		order.IsFirstOrder = priorOrders == 0
		order.Subtotal = totals.SubtotalFloat()
		order.Shipping = totals.ShippingFloat()
		order.Tax = totals.TaxFloat()
		order.OriginalTotal = totals.OriginalTotalFloat()
		order.DiscountApplied = totals.DiscountAppliedFloat()
		order.Total = totals.TotalFloat()
	})
	if err != nil {
		return nil, err
	}

	go s.settle(order, email, fullName)

	return order, nil
}

func (s *CheckoutService) settle(order *models.Order, email, fullName string) {
	time.Sleep(s.delay)

	if err := s.orders.MarkPaid(context.Background(), order.ID); err != nil {
		logrus.WithError(err).WithField("order_id", order.ID).Error("Failed to settle order")
		return
	}
	order.PaymentStatus = models.PaymentStatusPaid

	if s.notifier != nil {
		if err := s.notifier.SendOrderConfirmation(order, email, fullName); err != nil {
			logrus.WithError(err).WithField("order_id", order.ID).Warn("Failed to send order confirmation")
		}
	}
}
