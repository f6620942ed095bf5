package serpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealspot/backend/internal/domain"
	"github.com/dealspot/backend/internal/linkres"
)

const sampleResponse = `{
	"shopping_results": [
		{
			"position": 1,
			"title": "Smart Watch Series 5",
			"price": "₹12,999",
			"original_price": "₹19,999",
			"thumbnail": "https://img.example.com/watch.jpg",
			"source": "Flipkart",
			"rating": 4.2,
			"reviews": 311
		},
		{
			"position": 2,
			"title": "Smart Watch Lite",
			"price": "₹4,999"
		}
	]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("test-key", srv.URL, 5*time.Second, linkres.NewResolver())
}

func TestFetch_MapsShoppingResults(t *testing.T) {
	var query url.Values
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Write([]byte(sampleResponse))
	})

	records, err := client.Fetch(context.Background(), "smart watch")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "google_shopping", query.Get("engine"))
	assert.Equal(t, "google.co.in", query.Get("google_domain"))
	assert.Equal(t, "in", query.Get("gl"))
	assert.Equal(t, "test-key", query.Get("api_key"))
	assert.Equal(t, "smart watch", query.Get("q"))

	first := records[0]
	assert.Equal(t, "serp_1", first.ID)
	assert.Equal(t, "Smart Watch Series 5", first.Title)
	require.NotNil(t, first.Price)
	assert.Equal(t, float64(12999), *first.Price)
	assert.Equal(t, 35, first.DiscountPercentage)
	assert.Equal(t, "₹12,999 M.R.P: ₹19,999 (35% off)", first.PriceText)
	assert.Equal(t, "Flipkart", first.Source)
	assert.Equal(t, "4.2", first.Rating)
	assert.Equal(t, 311, first.ReviewCount)

	second := records[1]
	assert.Equal(t, "serp_2", second.ID)
	require.NotNil(t, second.OriginalPrice)
	assert.Greater(t, *second.OriginalPrice, float64(4999))
	assert.NotEmpty(t, second.Image)
	assert.NotEmpty(t, second.Rating)
	assert.NotZero(t, second.ReviewCount)
}

func TestFetch_DefaultsToGoogleShoppingSource(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"shopping_results":[{"position":1,"title":"Mystery Item","price":"₹99"}]}`))
	})

	records, err := client.Fetch(context.Background(), "mystery")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Google Shopping", records[0].Source)
	assert.Contains(t, records[0].Link, "google.com/search")
}

func TestFetch_NoAPIKeySkipsSource(t *testing.T) {
	client := NewClient("", "http://unused.invalid", 5*time.Second, linkres.NewResolver())

	records, err := client.Fetch(context.Background(), "smart watch")
	assert.NoError(t, err)
	assert.Empty(t, records)
}

func TestFetch_UpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	_, err := client.Fetch(context.Background(), "smart watch")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstreamFailure)
}
