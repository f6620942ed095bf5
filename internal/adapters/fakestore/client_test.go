package fakestore

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealspot/backend/internal/domain"
	"github.com/dealspot/backend/internal/linkres"
)

const sampleCatalog = `[
	{"id": 1, "title": "Mens Cotton Jacket", "price": 55.99, "category": "men's clothing",
	 "image": "https://img.example.com/jacket.jpg", "rating": {"rate": 4.7, "count": 500}},
	{"id": 2, "title": "Gold Ring", "price": 168.0, "category": "jewelery",
	 "image": "https://img.example.com/ring.jpg", "rating": {"rate": 3.9, "count": 70}},
	{"id": 3, "title": "Winter Jacket", "price": 29.95, "category": "women's clothing",
	 "image": "", "rating": {"rate": 4.1, "count": 120}},
	{"id": 4, "title": "Leather Jacket", "price": 99.0, "category": "men's clothing",
	 "image": "https://img.example.com/leather.jpg", "rating": {"rate": 4.4, "count": 210}},
	{"id": 5, "title": "Rain Jacket", "price": 39.99, "category": "women's clothing",
	 "image": "https://img.example.com/rain.jpg", "rating": {"rate": 3.8, "count": 60}},
	{"id": 6, "title": "Denim Jacket", "price": 49.99, "category": "men's clothing",
	 "image": "https://img.example.com/denim.jpg", "rating": {"rate": 4.0, "count": 90}}
]`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, linkres.NewResolver())
}

func TestFetch_FiltersByTitle(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		w.Write([]byte(sampleCatalog))
	})

	records, err := client.Fetch(context.Background(), "jacket")
	require.NoError(t, err)

	// Five catalog entries match but results are capped.
	assert.Len(t, records, maxItems)
	for _, r := range records {
		assert.Contains(t, r.Title, "Jacket")
	}
}

func TestFetch_FiltersByCategory(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleCatalog))
	})

	records, err := client.Fetch(context.Background(), "jewelery")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Gold Ring", records[0].Title)
}

func TestFetch_ConvertsPricesToINR(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleCatalog))
	})

	records, err := client.Fetch(context.Background(), "gold ring")
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "fake_2", r.ID)
	require.NotNil(t, r.Price)
	assert.Equal(t, float64(13440), *r.Price)
	require.NotNil(t, r.OriginalPrice)
	assert.Greater(t, *r.OriginalPrice, *r.Price)
	assert.Contains(t, r.PriceText, "₹13,440")
	assert.Equal(t, "Amazon", r.Source)
	assert.Contains(t, r.Link, "amazon.in/s?k=")
	assert.Equal(t, "3.9", r.Rating)
	assert.Equal(t, 70, r.ReviewCount)
	assert.False(t, r.IsMock)
}

func TestFetch_BackfillsMissingImage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleCatalog))
	})

	records, err := client.Fetch(context.Background(), "winter")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.NotEmpty(t, records[0].Image)
}

func TestFetch_NoMatchesReturnsEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleCatalog))
	})

	records, err := client.Fetch(context.Background(), "lawnmower")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFetch_UpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.Fetch(context.Background(), "jacket")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstreamFailure)
}
