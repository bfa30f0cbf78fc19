// internal/models/order_test.go
package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newOrderWithItem() (*Order, uuid.UUID) {
	item := OrderItem{
		ProductID: uuid.New(),
		Title:     "Gin London Dry 750ml",
		Price:     129.9,
		Quantity:  1,
	}
	item.ID = uuid.New()

	return &Order{Items: []OrderItem{item}}, item.ID
}

func TestAttachReviewRejectsRatingZero(t *testing.T) {
	order, itemID := newOrderWithItem()

	_, err := order.AttachReview(itemID, Review{Rating: 0, Comment: "sem nota"})

	assert.ErrorIs(t, err, ErrReviewRating)
	assert.False(t, order.Items[0].Reviewed())
}

func TestAttachReviewRejectsRatingAboveFive(t *testing.T) {
	order, itemID := newOrderWithItem()

	_, err := order.AttachReview(itemID, Review{Rating: 6})

	assert.ErrorIs(t, err, ErrReviewRating)
}

func TestAttachReviewAcceptsValidRating(t *testing.T) {
	order, itemID := newOrderWithItem()

	item, err := order.AttachReview(itemID, Review{
		Rating:       5,
		Comment:      "Excelente",
		ReviewerName: "Ana",
	})

	assert.NoError(t, err)
	assert.Equal(t, 5, item.Review.Rating)
	assert.NotNil(t, item.Review.Date)
	assert.True(t, order.Items[0].Reviewed())
}

func TestAttachReviewItemNotInOrder(t *testing.T) {
	order, _ := newOrderWithItem()

	_, err := order.AttachReview(uuid.New(), Review{Rating: 4})

	assert.ErrorIs(t, err, ErrItemNotInOrder)
}
