// Package fakestore integrates the static FakeStore catalog API. The catalog
// has no search endpoint, so the full product list is fetched and filtered
// locally; prices arrive in USD and are converted to INR for display parity
// with the other sources.
package fakestore

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dealspot/backend/internal/domain"
	"github.com/dealspot/backend/internal/enrich"
	"github.com/dealspot/backend/internal/linkres"
	"github.com/dealspot/backend/internal/pricing"
)

const (
	adapterName = "fakestore"
	maxItems    = 4

	// usdToINR is a fixed display conversion, not a live exchange rate.
	usdToINR = 80
)

type catalogProduct struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Image    string  `json:"image"`
	Rating   struct {
		Rate  float64 `json:"rate"`
		Count int     `json:"count"`
	} `json:"rating"`
}

// Client is the FakeStore catalog source adapter.
type Client struct {
	httpClient *http.Client
	baseURL    string
	resolver   *linkres.Resolver
}

// NewClient creates a FakeStore adapter. The catalog needs no credential.
func NewClient(baseURL string, timeout time.Duration, resolver *linkres.Resolver) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		resolver:   resolver,
	}
}

// Name implements domain.SourceAdapter.
func (c *Client) Name() string { return adapterName }

// Fetch downloads the catalog and keeps products whose title or category
// contains the query, capped at maxItems.
func (c *Client) Fetch(ctx context.Context, query string) ([]domain.ProductRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrUpstreamFailure, resp.StatusCode)
	}

	var catalog []catalogProduct
	if err := json.NewDecoder(resp.Body).Decode(&catalog); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	needle := strings.ToLower(query)
	var records []domain.ProductRecord
	for _, p := range catalog {
		if len(records) >= maxItems {
			break
		}
		if !strings.Contains(strings.ToLower(p.Title), needle) &&
			!strings.Contains(strings.ToLower(p.Category), needle) {
			continue
		}
		records = append(records, c.mapProduct(p))
	}

	logrus.WithFields(logrus.Fields{"adapter": adapterName, "count": len(records)}).Debug("source fetch complete")
	return records, nil
}

// mapProduct converts one catalog entry. Catalog products link to an Amazon
// search since the catalog itself has no storefront.
func (c *Client) mapProduct(p catalogProduct) domain.ProductRecord {
	current := domain.Float(math.Round(p.Price * usdToINR))
	original := domain.Float(math.Round(enrich.SyntheticOriginal(*current, 0.4)))

	display := pricing.Normalize(current, original)

	image := p.Image
	if image == "" {
		image = enrich.PlaceholderImage()
	}

	return domain.ProductRecord{
		ID:                 fmt.Sprintf("fake_%d", p.ID),
		Title:              p.Title,
		Price:              current,
		OriginalPrice:      original,
		PriceText:          display.PriceText,
		CurrentPriceText:   display.CurrentPriceText,
		OriginalPriceText:  display.OriginalPriceText,
		DiscountText:       display.DiscountText,
		DiscountPercentage: display.DiscountPercentage,
		AdditionalInfo:     enrich.AdditionalInfo(),
		Image:              image,
		Link:               c.resolver.SearchLink(p.Title, "Amazon"),
		Source:             "Amazon",
		Category:           p.Category,
		Rating:             strconv.FormatFloat(p.Rating.Rate, 'f', 1, 64),
		ReviewCount:        p.Rating.Count,
		Timestamp:          time.Now(),
		IsMock:             false,
	}
}
