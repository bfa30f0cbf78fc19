// internal/models/cart_test.go
package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newTestItem(productID uuid.UUID, color, size string, price float64, qty int) CartItem {
	item := CartItem{
		ProductID:     productID,
		Title:         "Vinho Tinto",
		Price:         price,
		SelectedColor: color,
		SelectedSize:  size,
		Quantity:      qty,
	}
	item.ID = uuid.New()
	return item
}

func TestCartMergeItemSameVariant(t *testing.T) {
	cart := &Cart{}
	productID := uuid.New()

	cart.MergeItem(newTestItem(productID, "", "750ml", 89.9, 1))
	line := cart.MergeItem(newTestItem(productID, "", "750ml", 89.9, 2))

	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 3, line.Quantity)
	assert.Equal(t, 269.7, cart.Subtotal)
}

func TestCartMergeItemDifferentVariantForksLine(t *testing.T) {
	cart := &Cart{}
	productID := uuid.New()

	cart.MergeItem(newTestItem(productID, "", "750ml", 89.9, 1))
	cart.MergeItem(newTestItem(productID, "", "1.5L", 159.9, 1))

	assert.Len(t, cart.Items, 2)
	assert.Equal(t, 249.8, cart.Subtotal)
}

func TestCartSetQuantityFloorsAtOne(t *testing.T) {
	cart := &Cart{}
	line := cart.MergeItem(newTestItem(uuid.New(), "", "", 10.0, 2))

	updated := cart.SetQuantity(line.ID, 0)

	assert.NotNil(t, updated)
	assert.Equal(t, 1, updated.Quantity)
	assert.Equal(t, 10.0, cart.Subtotal)
}

func TestCartSetQuantityUnknownLine(t *testing.T) {
	cart := &Cart{}
	cart.MergeItem(newTestItem(uuid.New(), "", "", 10.0, 1))

	assert.Nil(t, cart.SetQuantity(uuid.New(), 3))
}

func TestCartRemoveItem(t *testing.T) {
	cart := &Cart{}
	line := cart.MergeItem(newTestItem(uuid.New(), "", "", 25.0, 2))
	cart.MergeItem(newTestItem(uuid.New(), "", "", 10.0, 1))

	assert.True(t, cart.RemoveItem(line.ID))
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 10.0, cart.Subtotal)

	assert.False(t, cart.RemoveItem(line.ID))
}

func TestCartSubtotalRounding(t *testing.T) {
	cart := &Cart{}
	cart.MergeItem(newTestItem(uuid.New(), "", "", 3.33, 3))

	assert.Equal(t, 9.99, cart.Subtotal)
}

func TestCartMigrateFromVersionOne(t *testing.T) {
	cart := &Cart{
		SchemaVersion: 1,
		Subtotal:      999.99, // stale client-computed value
	}
	cart.Items = []CartItem{
		newTestItem(uuid.New(), "", "", 20.0, 0), // quantity below floor
		newTestItem(uuid.New(), "", "", 5.0, 2),
	}

	changed := cart.Migrate()

	assert.True(t, changed)
	assert.Equal(t, CartSchemaVersion, cart.SchemaVersion)
	assert.Equal(t, 1, cart.Items[0].Quantity)
	assert.Equal(t, 30.0, cart.Subtotal)
}

func TestCartMigrateCurrentVersionNoop(t *testing.T) {
	cart := &Cart{SchemaVersion: CartSchemaVersion, Subtotal: 42.0}

	assert.False(t, cart.Migrate())
	assert.Equal(t, 42.0, cart.Subtotal)
}
