// internal/services/draft_store.go
package services

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vanleybasso/ladiversite/internal/models"
)

// OrderDraft is the transient state between "place order" and "confirm
// payment". It never touches the database; the order is persisted exactly
// once, when the draft is consumed.
type OrderDraft struct {
	ID              uuid.UUID              `json:"id"`
	UserID          string                 `json:"user_id"`
	Items           []models.OrderItem     `json:"items"`
	ShippingAddress models.ShippingAddress `json:"shipping_address"`
	Totals          Totals                 `json:"-"`
	IsFirstOrder    bool                   `json:"is_first_order"`
	CreatedAt       time.Time              `json:"created_at"`
	ExpiresAt       time.Time              `json:"expires_at"`
}

type TakeResult int

const (
	DraftTaken TakeResult = iota
	DraftMissing
	DraftConsumed
)

// DraftStore holds checkout drafts in memory with a TTL. Take is
// take-once: a second Take of the same id reports DraftConsumed, which is
// what turns a double-submitted payment confirmation into a 409 instead of
// a duplicate order.
type DraftStore struct {
	mtx      sync.Mutex
	drafts   map[uuid.UUID]*OrderDraft
	consumed map[uuid.UUID]time.Time
	ttl      time.Duration
}

func NewDraftStore(ttl time.Duration) *DraftStore {
	s := &DraftStore{
		drafts:   make(map[uuid.UUID]*OrderDraft),
		consumed: make(map[uuid.UUID]time.Time),
		ttl:      ttl,
	}

	go s.sweep()

	return s
}

func (s *DraftStore) sweep() {
	for {
		time.Sleep(time.Minute)
		now := time.Now()
		s.mtx.Lock()
		for id, d := range s.drafts {
			if now.After(d.ExpiresAt) {
				delete(s.drafts, id)
			}
		}
		for id, at := range s.consumed {
			if now.Sub(at) > s.ttl {
				delete(s.consumed, id)
			}
		}
		s.mtx.Unlock()
	}
}

func (s *DraftStore) Put(draft *OrderDraft) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if draft.ID == uuid.Nil {
		draft.ID = uuid.New()
	}
	draft.CreatedAt = time.Now()
	draft.ExpiresAt = draft.CreatedAt.Add(s.ttl)
	s.drafts[draft.ID] = draft
}

// Take removes and returns the draft with the given id for the given user.
// A draft that was already taken reports DraftConsumed; an unknown, expired
// or foreign draft reports DraftMissing.
func (s *DraftStore) Take(id uuid.UUID, userID string) (*OrderDraft, TakeResult) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	draft, ok := s.drafts[id]
	if !ok {
		if _, was := s.consumed[id]; was {
			return nil, DraftConsumed
		}
		return nil, DraftMissing
	}

	if draft.UserID != userID || time.Now().After(draft.ExpiresAt) {
		return nil, DraftMissing
	}

	delete(s.drafts, id)
	s.consumed[id] = time.Now()
	return draft, DraftTaken
}
