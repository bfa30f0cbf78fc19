// internal/services/pricing_test.go
package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeTotalsFirstOrder(t *testing.T) {
	// Subtotal below the free-shipping threshold: 250 + 10 shipping = 260,
	// first-order discount 25% of 260 = 65, final 195.
	totals := ComputeTotals(decimal.NewFromInt(250), true)

	assert.Equal(t, 250.0, totals.SubtotalFloat())
	assert.Equal(t, 10.0, totals.ShippingFloat())
	assert.Equal(t, 0.0, totals.TaxFloat())
	assert.Equal(t, 260.0, totals.OriginalTotalFloat())
	assert.Equal(t, 65.0, totals.DiscountAppliedFloat())
	assert.Equal(t, 195.0, totals.TotalFloat())
}

func TestComputeTotalsFreeShipping(t *testing.T) {
	totals := ComputeTotals(decimal.NewFromInt(300), false)

	assert.Equal(t, 0.0, totals.ShippingFloat())
	assert.Equal(t, 300.0, totals.OriginalTotalFloat())
	assert.Equal(t, 300.0, totals.TotalFloat())
}

func TestComputeTotalsJustBelowThreshold(t *testing.T) {
	totals := ComputeTotals(decimal.NewFromFloat(299.99), false)

	assert.Equal(t, 10.0, totals.ShippingFloat())
	assert.Equal(t, 309.99, totals.TotalFloat())
}

func TestComputeTotalsReturningCustomer(t *testing.T) {
	totals := ComputeTotals(decimal.NewFromInt(250), false)

	assert.Equal(t, 0.0, totals.DiscountAppliedFloat())
	assert.Equal(t, 260.0, totals.TotalFloat())
}

func TestComputeTotalsDiscountRounding(t *testing.T) {
	// 90.50 + 10 = 100.50; 25% = 25.125, rounded to 25.13.
	totals := ComputeTotals(decimal.NewFromFloat(90.50), true)

	assert.Equal(t, 25.13, totals.DiscountAppliedFloat())
	assert.Equal(t, 75.37, totals.TotalFloat())
}

func TestComputeTotalsFreeShippingStillDiscounted(t *testing.T) {
	totals := ComputeTotals(decimal.NewFromInt(400), true)

	assert.Equal(t, 0.0, totals.ShippingFloat())
	assert.Equal(t, 100.0, totals.DiscountAppliedFloat())
	assert.Equal(t, 300.0, totals.TotalFloat())
}
