// internal/services/pricing.go
package services

import "github.com/shopspring/decimal"

// Pricing rules for the storefront. Every code path that needs an order
// total goes through ComputeTotals so the quote shown before payment and
// the values persisted on the order cannot diverge.
var (
	freeShippingThreshold = decimal.NewFromInt(300)
	shippingFee           = decimal.NewFromInt(10)
	flatTax               = decimal.Zero
	firstOrderDiscount    = decimal.NewFromFloat(0.25)
)

type Totals struct {
	Subtotal        decimal.Decimal
	Shipping        decimal.Decimal
	Tax             decimal.Decimal
	OriginalTotal   decimal.Decimal
	DiscountApplied decimal.Decimal
	Total           decimal.Decimal
}

// ComputeTotals derives shipping, tax, discount and the final total from a
// cart subtotal. Shipping is free from 300.00 up, otherwise a flat 10.00.
// A shopper's first order gets 25% off the pre-discount total
// (subtotal + shipping + tax); every later order pays full price.
func ComputeTotals(subtotal decimal.Decimal, firstOrder bool) Totals {
	subtotal = subtotal.Round(2)

	shipping := shippingFee
	if subtotal.GreaterThanOrEqual(freeShippingThreshold) {
		shipping = decimal.Zero
	}

	original := subtotal.Add(shipping).Add(flatTax)

	discount := decimal.Zero
	if firstOrder {
		discount = original.Mul(firstOrderDiscount).Round(2)
	}

	return Totals{
		Subtotal:        subtotal,
		Shipping:        shipping,
		Tax:             flatTax,
		OriginalTotal:   original,
		DiscountApplied: discount,
		Total:           original.Sub(discount),
	}
}

func (t Totals) SubtotalFloat() float64        { f, _ := t.Subtotal.Float64(); return f }
func (t Totals) ShippingFloat() float64        { f, _ := t.Shipping.Float64(); return f }
func (t Totals) TaxFloat() float64             { f, _ := t.Tax.Float64(); return f }
func (t Totals) OriginalTotalFloat() float64   { f, _ := t.OriginalTotal.Float64(); return f }
func (t Totals) DiscountAppliedFloat() float64 { f, _ := t.DiscountApplied.Float64(); return f }
func (t Totals) TotalFloat() float64           { f, _ := t.Total.Float64(); return f }
