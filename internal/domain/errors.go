package domain

import "errors"

var (
	// ErrEmptyQuery is returned when an aggregation is requested without a query.
	// It is the only failure mode that surfaces to the caller.
	ErrEmptyQuery = errors.New("query parameter required")

	// ErrUpstreamFailure is returned when an upstream source request fails.
	ErrUpstreamFailure = errors.New("upstream source request failed")

	// ErrMissingCredential marks an adapter skipped for lack of an API key.
	// Adapters translate this into an empty result, never a failure.
	ErrMissingCredential = errors.New("source credential not configured")

	// ErrContentMarkerNotFound is returned when a scraped page loads but the
	// expected content marker is absent, usually a layout change or a block page.
	ErrContentMarkerNotFound = errors.New("content marker not found on page")

	// ErrCacheMiss is returned when data is not found in cache.
	ErrCacheMiss = errors.New("cache miss")

	// ErrWishlistItemNotFound is returned when removing an item the user never saved.
	ErrWishlistItemNotFound = errors.New("wishlist item not found")
)
