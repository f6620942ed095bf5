package rapidapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealspot/backend/internal/linkres"
)

const sampleResponse = `{
	"data": {
		"products": [
			{
				"product_id": "ABC123",
				"product_title": "Wireless Headphones",
				"offer": {"price": "₹1,299", "original_price": "₹1,999"},
				"product_photos": ["https://img.example.com/1.jpg"],
				"product_rating": "4.3",
				"source": "Flipkart"
			},
			{
				"product_title": "Bare Bones Product",
				"price": 499
			}
		]
	}
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient("test-key", srv.URL, "example.rapidapi.com", 5*time.Second, linkres.NewResolver())
	return client, srv
}

func TestFetch_MapsProducts(t *testing.T) {
	var gotKey, gotHost, gotQuery string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-RapidAPI-Key")
		gotHost = r.Header.Get("X-RapidAPI-Host")
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte(sampleResponse))
	})

	records, err := client.Fetch(context.Background(), "headphones")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "example.rapidapi.com", gotHost)
	assert.Equal(t, "headphones", gotQuery)

	first := records[0]
	assert.Equal(t, "rapid_ABC123", first.ID)
	assert.Equal(t, "Wireless Headphones", first.Title)
	require.NotNil(t, first.Price)
	assert.Equal(t, float64(1299), *first.Price)
	require.NotNil(t, first.OriginalPrice)
	assert.Equal(t, float64(1999), *first.OriginalPrice)
	assert.Equal(t, 35, first.DiscountPercentage)
	assert.Equal(t, "₹1,299 M.R.P: ₹1,999 (35% off)", first.PriceText)
	assert.Equal(t, "Flipkart", first.Source)
	assert.Equal(t, "https://img.example.com/1.jpg", first.Image)
	assert.Equal(t, "4.3", first.Rating)
	assert.False(t, first.IsMock)

	// Sparse upstream entries still map to a fully populated record.
	second := records[1]
	assert.Equal(t, "Bare Bones Product", second.Title)
	require.NotNil(t, second.Price)
	assert.Equal(t, float64(499), *second.Price)
	require.NotNil(t, second.OriginalPrice)
	assert.Greater(t, *second.OriginalPrice, *second.Price)
	assert.NotEmpty(t, second.Image)
	assert.NotEmpty(t, second.Rating)
	assert.NotEmpty(t, second.Link)
}

func TestFetch_NoAPIKeySkipsSource(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := NewClient("", srv.URL, "example.rapidapi.com", 5*time.Second, linkres.NewResolver())
	records, err := client.Fetch(context.Background(), "headphones")

	assert.NoError(t, err)
	assert.Empty(t, records)
	assert.False(t, called)
}

func TestFetch_UpstreamErrorAfterRetries(t *testing.T) {
	attempts := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Fetch(context.Background(), "headphones")
	require.Error(t, err)
	assert.Equal(t, maxAttempts, attempts)
}

func TestFetch_CapsItemCount(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"products":[
			{"product_title":"p1"},{"product_title":"p2"},{"product_title":"p3"},
			{"product_title":"p4"},{"product_title":"p5"},{"product_title":"p6"},
			{"product_title":"p7"},{"product_title":"p8"},{"product_title":"p9"},
			{"product_title":"p10"},{"product_title":"p11"},{"product_title":"p12"},
			{"product_title":"p13"},{"product_title":"p14"},{"product_title":"p15"},
			{"product_title":"p16"},{"product_title":"p17"},{"product_title":"p18"},
			{"product_title":"p19"},{"product_title":"p20"},{"product_title":"p21"},
			{"product_title":"p22"}
		]}}`))
	})

	records, err := client.Fetch(context.Background(), "widget")
	require.NoError(t, err)
	assert.Len(t, records, maxItems)
}
