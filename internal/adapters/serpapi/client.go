// Package serpapi integrates Google Shopping results via the SerpAPI service.
package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dealspot/backend/internal/domain"
	"github.com/dealspot/backend/internal/enrich"
	"github.com/dealspot/backend/internal/linkres"
	"github.com/dealspot/backend/internal/pricing"
)

const (
	adapterName = "serpapi"
	maxItems    = 20
)

// searchResponse is the subset of the SerpAPI Google Shopping payload the
// adapter consumes.
type searchResponse struct {
	ShoppingResults []shoppingResult `json:"shopping_results"`
}

type shoppingResult struct {
	Position      int     `json:"position"`
	Title         string  `json:"title"`
	Price         string  `json:"price"`
	OriginalPrice string  `json:"original_price"`
	Thumbnail     string  `json:"thumbnail"`
	Source        string  `json:"source"`
	Rating        float64 `json:"rating"`
	Reviews       int     `json:"reviews"`
}

// Client is the SerpAPI Google Shopping source adapter.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	resolver   *linkres.Resolver
}

// NewClient creates a SerpAPI adapter. An empty apiKey makes every Fetch a
// no-op returning an empty result.
func NewClient(apiKey, baseURL string, timeout time.Duration, resolver *linkres.Resolver) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     apiKey,
		baseURL:    baseURL,
		resolver:   resolver,
	}
}

// Name implements domain.SourceAdapter.
func (c *Client) Name() string { return adapterName }

// Fetch runs a Google Shopping search scoped to the Indian storefront.
func (c *Client) Fetch(ctx context.Context, query string) ([]domain.ProductRecord, error) {
	if c.apiKey == "" {
		logrus.WithField("adapter", adapterName).Info("no API key configured, skipping source")
		return nil, nil
	}

	params := url.Values{}
	params.Add("engine", "google_shopping")
	params.Add("q", query)
	params.Add("google_domain", "google.co.in")
	params.Add("gl", "in")
	params.Add("hl", "en")
	params.Add("api_key", c.apiKey)
	reqURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d, body: %s", domain.ErrUpstreamFailure, resp.StatusCode, string(body))
	}

	var search searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	records := make([]domain.ProductRecord, 0, len(search.ShoppingResults))
	for i, item := range search.ShoppingResults {
		if i >= maxItems {
			break
		}
		records = append(records, c.mapResult(item))
	}

	logrus.WithFields(logrus.Fields{"adapter": adapterName, "count": len(records)}).Debug("source fetch complete")
	return records, nil
}

func (c *Client) mapResult(item shoppingResult) domain.ProductRecord {
	var current, original *float64
	if v, ok := pricing.ParsePrice(item.Price); ok {
		current = domain.Float(v)
	}
	if v, ok := pricing.ParsePrice(item.OriginalPrice); ok {
		original = domain.Float(v)
	} else if current != nil {
		original = domain.Float(enrich.SyntheticOriginal(*current, 0.2))
	}

	display := pricing.Normalize(current, original)

	source := item.Source
	if source == "" {
		source = "Google Shopping"
	}

	image := item.Thumbnail
	if image == "" {
		image = enrich.PlaceholderImage()
	}

	rating := enrich.Rating()
	if item.Rating > 0 {
		rating = strconv.FormatFloat(item.Rating, 'f', 1, 64)
	}

	reviews := item.Reviews
	if reviews == 0 {
		reviews = enrich.ReviewCount()
	}

	id := strconv.Itoa(item.Position)
	if item.Position == 0 {
		id = enrich.RandomSuffix(9)
	}

	return domain.ProductRecord{
		ID:                 "serp_" + id,
		Title:              item.Title,
		Price:              current,
		OriginalPrice:      original,
		PriceText:          display.PriceText,
		CurrentPriceText:   display.CurrentPriceText,
		OriginalPriceText:  display.OriginalPriceText,
		DiscountText:       display.DiscountText,
		DiscountPercentage: display.DiscountPercentage,
		AdditionalInfo:     enrich.AdditionalInfo(),
		Image:              image,
		Link:               c.resolver.SearchLink(item.Title, source),
		Source:             source,
		Category:           "general",
		Rating:             rating,
		ReviewCount:        reviews,
		Timestamp:          time.Now(),
		IsMock:             false,
	}
}
