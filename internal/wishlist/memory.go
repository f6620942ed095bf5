// Package wishlist stores per-user saved products behind
// domain.WishlistRepository. The in-memory implementation guards the shared
// map with a mutex; swapping in an external key-value store only requires
// another implementation of the same interface.
package wishlist

import (
	"context"
	"sync"
	"time"

	"github.com/dealspot/backend/internal/domain"
)

type savedItem struct {
	product domain.ProductRecord
	addedAt time.Time
}

// MemoryStore is a thread-safe in-memory wishlist keyed by user id.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string][]savedItem
}

// NewMemoryStore creates an empty wishlist store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string][]savedItem)}
}

// Add saves a product for the user. Adding an id the user already saved is a
// no-op, so the operation is idempotent.
func (s *MemoryStore) Add(ctx context.Context, userID string, product domain.ProductRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.items[userID] {
		if item.product.ID == product.ID {
			return nil
		}
	}
	s.items[userID] = append(s.items[userID], savedItem{product: product, addedAt: time.Now()})
	return nil
}

// Remove deletes a saved product by id.
func (s *MemoryStore) Remove(ctx context.Context, userID, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := s.items[userID]
	for i, item := range saved {
		if item.product.ID == productID {
			s.items[userID] = append(saved[:i], saved[i+1:]...)
			return nil
		}
	}
	return domain.ErrWishlistItemNotFound
}

// List returns the user's saved products in insertion order.
func (s *MemoryStore) List(ctx context.Context, userID string) ([]domain.ProductRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	saved := s.items[userID]
	products := make([]domain.ProductRecord, 0, len(saved))
	for _, item := range saved {
		products = append(products, item.product)
	}
	return products, nil
}
