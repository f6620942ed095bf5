package domain

import (
	"context"
	"time"
)

// SourceAdapter is a pluggable integration with one upstream product source.
// Implementations are independent: a failing adapter must not prevent the
// orchestrator or its siblings from producing a result.
type SourceAdapter interface {
	// Name identifies the adapter for source filtering and diagnostics.
	Name() string

	// Fetch queries the upstream and maps its results into ProductRecords.
	// A missing optional credential yields an empty slice and a nil error.
	Fetch(ctx context.Context, query string) ([]ProductRecord, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// WishlistRepository defines the interface for per-user saved products.
type WishlistRepository interface {
	Add(ctx context.Context, userID string, product ProductRecord) error
	Remove(ctx context.Context, userID, productID string) error
	List(ctx context.Context, userID string) ([]ProductRecord, error)
}
