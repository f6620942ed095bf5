// Package rapidapi integrates the real-time product search API on RapidAPI.
//
// The upstream response is loosely shaped (offers, photos and ratings appear
// or vanish per product), so mapping is done with gjson path lookups instead
// of a rigid struct, isolating the schema variability at this edge.
package rapidapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/dealspot/backend/internal/domain"
	"github.com/dealspot/backend/internal/enrich"
	"github.com/dealspot/backend/internal/linkres"
	"github.com/dealspot/backend/internal/pricing"
)

const (
	adapterName = "rapidapi"
	maxItems    = 20
	maxAttempts = 3
)

// Client is the RapidAPI product-search source adapter.
type Client struct {
	httpClient *http.Client
	apiKey     string
	host       string
	baseURL    string
	resolver   *linkres.Resolver
	limiter    *rate.Limiter
}

// NewClient creates a RapidAPI adapter. An empty apiKey is allowed: the
// adapter then short-circuits every Fetch with an empty result so a missing
// credential degrades gracefully instead of failing the aggregation.
func NewClient(apiKey, baseURL, host string, timeout time.Duration, resolver *linkres.Resolver) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     apiKey,
		host:       host,
		baseURL:    baseURL,
		resolver:   resolver,
		limiter:    rate.NewLimiter(rate.Limit(5), 10),
	}
}

// Name implements domain.SourceAdapter.
func (c *Client) Name() string { return adapterName }

// Fetch queries the upstream and maps up to maxItems raw entries into
// ProductRecords.
func (c *Client) Fetch(ctx context.Context, query string) ([]domain.ProductRecord, error) {
	if c.apiKey == "" {
		logrus.WithField("adapter", adapterName).Info("no API key configured, skipping source")
		return nil, nil
	}

	params := url.Values{}
	params.Add("q", query)
	params.Add("country", "in")
	params.Add("language", "en")
	reqURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())

	body, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	products := gjson.GetBytes(body, "data.products").Array()
	records := make([]domain.ProductRecord, 0, len(products))
	for i, p := range products {
		if i >= maxItems {
			break
		}
		records = append(records, c.mapProduct(p))
	}

	logrus.WithFields(logrus.Fields{"adapter": adapterName, "count": len(records)}).Debug("source fetch complete")
	return records, nil
}

// get executes a GET with the RapidAPI headers, retrying transient failures.
func (c *Client) get(ctx context.Context, reqURL string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("X-RapidAPI-Key", c.apiKey)
		req.Header.Set("X-RapidAPI-Host", c.host)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: %v", domain.ErrUpstreamFailure, err)
			sleepBackoff(ctx, attempt)
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("%w: status %d", domain.ErrUpstreamFailure, resp.StatusCode)
			sleepBackoff(ctx, attempt)
			continue
		}
		return body, nil
	}
	return nil, lastErr
}

func sleepBackoff(ctx context.Context, attempt int) {
	select {
	case <-time.After(time.Duration(attempt*500) * time.Millisecond):
	case <-ctx.Done():
	}
}

// mapProduct converts one raw upstream product into the canonical record.
// Ratings and review counts are synthetic when the upstream omits them.
func (c *Client) mapProduct(p gjson.Result) domain.ProductRecord {
	title := p.Get("product_title").String()

	current := priceValue(p.Get("offer.price"), p.Get("price"))
	var original *float64
	if v := priceValue(p.Get("offer.original_price"), gjson.Result{}); v != nil {
		original = v
	} else if current != nil {
		original = domain.Float(enrich.SyntheticOriginal(*current, 0.3))
	}

	display := pricing.Normalize(current, original)

	source := p.Get("source").String()
	if source == "" {
		source = linkres.GenericSource
	}

	image := p.Get("product_photos.0").String()
	if image == "" {
		image = enrich.PlaceholderImage()
	}

	id := p.Get("product_id").String()
	if id == "" {
		id = enrich.RandomSuffix(9)
	}

	rating := p.Get("product_rating").String()
	if rating == "" {
		rating = enrich.Rating()
	}

	return domain.ProductRecord{
		ID:                 "rapid_" + id,
		Title:              title,
		Price:              current,
		OriginalPrice:      original,
		PriceText:          display.PriceText,
		CurrentPriceText:   display.CurrentPriceText,
		OriginalPriceText:  display.OriginalPriceText,
		DiscountText:       display.DiscountText,
		DiscountPercentage: display.DiscountPercentage,
		AdditionalInfo:     enrich.AdditionalInfo(),
		Image:              image,
		Link:               c.resolver.SearchLink(title, source),
		Source:             source,
		Category:           "general",
		Rating:             rating,
		ReviewCount:        enrich.ReviewCount(),
		Timestamp:          time.Now(),
		IsMock:             false,
	}
}

// priceValue reads a price that may arrive as a number or a currency string,
// preferring the first result that exists.
func priceValue(primary, fallback gjson.Result) *float64 {
	for _, res := range []gjson.Result{primary, fallback} {
		if !res.Exists() {
			continue
		}
		if res.Type == gjson.Number {
			return domain.Float(res.Float())
		}
		if v, ok := pricing.ParsePrice(res.String()); ok {
			return domain.Float(v)
		}
	}
	return nil
}
