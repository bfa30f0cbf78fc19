// internal/services/draft_store_test.go
package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/vanleybasso/ladiversite/internal/models"
)

func TestDraftStoreTakeOnce(t *testing.T) {
	store := NewDraftStore(time.Minute)

	draft := &OrderDraft{UserID: "user-1", Items: []models.OrderItem{{Title: "Vodka Premium 1L"}}}
	store.Put(draft)

	taken, result := store.Take(draft.ID, "user-1")
	assert.Equal(t, DraftTaken, result)
	assert.Equal(t, "user-1", taken.UserID)

	// Second take of the same draft reports consumed, not missing.
	again, result := store.Take(draft.ID, "user-1")
	assert.Equal(t, DraftConsumed, result)
	assert.Nil(t, again)
}

func TestDraftStoreUnknownDraftMissing(t *testing.T) {
	store := NewDraftStore(time.Minute)

	draft := &OrderDraft{UserID: "user-1"}
	store.Put(draft)

	_, result := store.Take(uuid.New(), "user-1")
	assert.Equal(t, DraftMissing, result)
}

func TestDraftStoreForeignUserMissing(t *testing.T) {
	store := NewDraftStore(time.Minute)

	draft := &OrderDraft{UserID: "user-1"}
	store.Put(draft)

	_, result := store.Take(draft.ID, "user-2")
	assert.Equal(t, DraftMissing, result)

	// The draft stays available for its owner.
	_, result = store.Take(draft.ID, "user-1")
	assert.Equal(t, DraftTaken, result)
}

func TestDraftStoreExpiredDraftMissing(t *testing.T) {
	store := NewDraftStore(-time.Second)

	draft := &OrderDraft{UserID: "user-1"}
	store.Put(draft)

	_, result := store.Take(draft.ID, "user-1")
	assert.Equal(t, DraftMissing, result)
}

func TestDraftStorePutAssignsID(t *testing.T) {
	store := NewDraftStore(time.Minute)

	draft := &OrderDraft{UserID: "user-1"}
	store.Put(draft)

	assert.NotEqual(t, uuid.Nil, draft.ID)
	assert.True(t, draft.ExpiresAt.After(draft.CreatedAt))
}
