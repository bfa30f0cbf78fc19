// internal/handlers/checkout_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanleybasso/ladiversite/internal/config"
	"github.com/vanleybasso/ladiversite/internal/models"
	"github.com/vanleybasso/ladiversite/internal/services"
)

type stubCarts struct {
	cart *models.Cart
}

func (s *stubCarts) GetOrCreate(ctx context.Context, userID string) (*models.Cart, error) {
	return s.cart, nil
}

type stubOrders struct {
	mtx       sync.Mutex
	prior     int64
	persisted []*models.Order
}

func (s *stubOrders) CountByUser(ctx context.Context, userID string) (int64, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.prior, nil
}

func (s *stubOrders) Persist(ctx context.Context, order *models.Order, finalize func(priorOrders int64)) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	finalize(s.prior)
	order.ID = uuid.New()
	s.persisted = append(s.persisted, order)
	s.prior++
	return nil
}

func (s *stubOrders) MarkPaid(ctx context.Context, orderID uuid.UUID) error {
	return nil
}

func newCheckoutRouter(carts services.CheckoutCarts, orders services.CheckoutOrders) *gin.Engine {
	gin.SetMode(gin.TestMode)

	drafts := services.NewDraftStore(time.Minute)
	svc := services.NewCheckoutService(carts, orders, drafts, nil, config.PaymentConfig{
		// Long enough that settlement never fires mid-test.
		SettlementDelayMs: 60_000,
	})
	handler := NewCheckoutHandler(svc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", "user-1")
		c.Set("email", "ana@example.com")
		c.Set("full_name", "Ana Souza")
	})
	r.POST("/checkout", handler.Checkout)
	r.POST("/payments/confirm", handler.ConfirmPayment)
	return r
}

func testCart(subtotal float64) *models.Cart {
	cart := &models.Cart{
		UserID:        "user-1",
		SchemaVersion: models.CartSchemaVersion,
		Version:       1,
	}
	item := models.CartItem{
		ProductID: uuid.New(),
		Title:     "Vinho Tinto Malbec Reserva 750ml",
		Price:     subtotal,
		Quantity:  1,
	}
	item.ID = uuid.New()
	cart.Items = []models.CartItem{item}
	cart.Subtotal = subtotal
	return cart
}

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBuffer(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validQuoteBody() map[string]interface{} {
	return map[string]interface{}{
		"zip_code":       "01310100",
		"street_address": "Avenida Paulista, 1000",
		"city":           "São Paulo",
		"state":          "SP",
		"country":        "Brasil",
	}
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope struct {
		Success bool                   `json:"success"`
		Data    map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.True(t, envelope.Success)
	return envelope.Data
}

func TestCheckoutQuoteFirstOrder(t *testing.T) {
	r := newCheckoutRouter(&stubCarts{cart: testCart(250)}, &stubOrders{})

	w := postJSON(r, "/checkout", validQuoteBody())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	quote := decodeData(t, w)["quote"].(map[string]interface{})
	assert.Equal(t, 250.0, quote["subtotal"])
	assert.Equal(t, 10.0, quote["shipping"])
	assert.Equal(t, 260.0, quote["original_total"])
	assert.Equal(t, 65.0, quote["discount_applied"])
	assert.Equal(t, 195.0, quote["total"])
	assert.Equal(t, true, quote["is_first_order"])
}

func TestCheckoutInvalidCEP(t *testing.T) {
	r := newCheckoutRouter(&stubCarts{cart: testCart(100)}, &stubOrders{})

	body := validQuoteBody()
	body["zip_code"] = "01310-100"

	w := postJSON(r, "/checkout", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckoutEmptyCart(t *testing.T) {
	cart := &models.Cart{UserID: "user-1", SchemaVersion: models.CartSchemaVersion}
	r := newCheckoutRouter(&stubCarts{cart: cart}, &stubOrders{})

	w := postJSON(r, "/checkout", validQuoteBody())
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestConfirmPaymentFlow(t *testing.T) {
	orders := &stubOrders{}
	r := newCheckoutRouter(&stubCarts{cart: testCart(250)}, orders)

	w := postJSON(r, "/checkout", validQuoteBody())
	require.Equal(t, http.StatusCreated, w.Code)
	quote := decodeData(t, w)["quote"].(map[string]interface{})
	draftID := quote["draft_id"].(string)

	w = postJSON(r, "/payments/confirm", map[string]interface{}{
		"draft_id":       draftID,
		"payment_method": "pix",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	order := decodeData(t, w)["order"].(map[string]interface{})
	assert.Equal(t, "pix", order["payment_method"])
	assert.Equal(t, "pending", order["payment_status"])
	assert.Equal(t, 195.0, order["total"])
	assert.Equal(t, true, order["is_first_order"])

	require.Len(t, orders.persisted, 1)
	assert.Equal(t, "user-1", orders.persisted[0].UserID)
}

func TestConfirmPaymentDuplicateSubmission(t *testing.T) {
	r := newCheckoutRouter(&stubCarts{cart: testCart(120)}, &stubOrders{})

	w := postJSON(r, "/checkout", validQuoteBody())
	require.Equal(t, http.StatusCreated, w.Code)
	quote := decodeData(t, w)["quote"].(map[string]interface{})
	draftID := quote["draft_id"].(string)

	confirm := map[string]interface{}{
		"draft_id":       draftID,
		"payment_method": "pix",
	}

	w = postJSON(r, "/payments/confirm", confirm)
	require.Equal(t, http.StatusCreated, w.Code)

	// The same draft submitted twice is a conflict, not a second order.
	w = postJSON(r, "/payments/confirm", confirm)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestConfirmPaymentUnknownDraft(t *testing.T) {
	r := newCheckoutRouter(&stubCarts{cart: testCart(120)}, &stubOrders{})

	w := postJSON(r, "/payments/confirm", map[string]interface{}{
		"draft_id":       uuid.New().String(),
		"payment_method": "pix",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestConfirmPaymentCreditCardRequiresDetails(t *testing.T) {
	r := newCheckoutRouter(&stubCarts{cart: testCart(120)}, &stubOrders{})

	w := postJSON(r, "/checkout", validQuoteBody())
	require.Equal(t, http.StatusCreated, w.Code)
	quote := decodeData(t, w)["quote"].(map[string]interface{})

	w = postJSON(r, "/payments/confirm", map[string]interface{}{
		"draft_id":       quote["draft_id"],
		"payment_method": "credit_card",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConfirmPaymentReturningCustomerKeepsFullPrice(t *testing.T) {
	// The quote was issued while the shopper had no orders, but another
	// order lands before confirmation; the persisted totals must drop the
	// first-order discount.
	orders := &stubOrders{}
	r := newCheckoutRouter(&stubCarts{cart: testCart(250)}, orders)

	w := postJSON(r, "/checkout", validQuoteBody())
	require.Equal(t, http.StatusCreated, w.Code)
	quote := decodeData(t, w)["quote"].(map[string]interface{})
	assert.Equal(t, true, quote["is_first_order"])

	orders.mtx.Lock()
	orders.prior = 1
	orders.mtx.Unlock()

	w = postJSON(r, "/payments/confirm", map[string]interface{}{
		"draft_id":       quote["draft_id"],
		"payment_method": "pix",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	order := decodeData(t, w)["order"].(map[string]interface{})
	assert.Equal(t, false, order["is_first_order"])
	assert.Equal(t, 0.0, order["discount_applied"])
	assert.Equal(t, 260.0, order["total"])
}

func TestConfirmPaymentInvalidMethod(t *testing.T) {
	r := newCheckoutRouter(&stubCarts{cart: testCart(120)}, &stubOrders{})

	w := postJSON(r, "/payments/confirm", map[string]interface{}{
		"draft_id":       uuid.New().String(),
		"payment_method": "boleto",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Code)
}
