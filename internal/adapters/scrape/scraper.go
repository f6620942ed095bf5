// Package scrape extracts product deals directly from marketplace deal pages.
// Each site is wrapped as an independent source adapter sharing one generic
// card extractor.
package scrape

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"github.com/dealspot/backend/internal/domain"
	"github.com/dealspot/backend/internal/enrich"
	"github.com/dealspot/backend/internal/linkres"
	"github.com/dealspot/backend/internal/pricing"
)

const (
	maxItems = 20

	placeholderImage = "https://via.placeholder.com/300x200?text=No+Image"
)

// Adapter scrapes one marketplace deal page and maps matching cards into
// ProductRecords.
type Adapter struct {
	site     Site
	fetcher  Fetcher
	resolver *linkres.Resolver
}

// NewAdapter wraps a site definition as a source adapter.
func NewAdapter(site Site, fetcher Fetcher, resolver *linkres.Resolver) *Adapter {
	return &Adapter{site: site, fetcher: fetcher, resolver: resolver}
}

// Adapters builds one adapter per built-in site, all sharing the fetcher.
func Adapters(fetcher Fetcher, resolver *linkres.Resolver) []domain.SourceAdapter {
	var adapters []domain.SourceAdapter
	for _, site := range Sites() {
		adapters = append(adapters, NewAdapter(site, fetcher, resolver))
	}
	return adapters
}

// Name implements domain.SourceAdapter.
func (a *Adapter) Name() string { return a.site.AdapterName }

// Fetch loads the site's deal page and extracts cards whose title matches
// the query. The deal page is query-independent, so filtering happens here.
func (a *Adapter) Fetch(ctx context.Context, query string) ([]domain.ProductRecord, error) {
	doc, err := a.fetcher.Fetch(ctx, a.site.DealURL)
	if err != nil {
		return nil, err
	}

	if doc.Find(a.site.Marker).Length() == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrContentMarkerNotFound, a.site.Marker)
	}

	needle := strings.ToLower(query)
	var records []domain.ProductRecord

	doc.Find(a.site.Card).EachWithBreak(func(i int, card *goquery.Selection) bool {
		if len(records) >= maxItems {
			return false
		}
		record, ok := a.extractCard(i, card)
		if !ok {
			return true
		}
		if needle != "" && !strings.Contains(strings.ToLower(record.Title), needle) {
			return true
		}
		records = append(records, record)
		return true
	})

	logrus.WithFields(logrus.Fields{"adapter": a.site.AdapterName, "count": len(records)}).Debug("scrape complete")
	return records, nil
}

// extractCard maps one deal card into a record. Cards without a title, a
// parseable price, or a link are skipped; everything else is healed.
func (a *Adapter) extractCard(index int, card *goquery.Selection) (domain.ProductRecord, bool) {
	title := strings.TrimSpace(card.Find(a.site.Title).First().Text())
	priceRaw := strings.TrimSpace(card.Find(a.site.Price).First().Text())
	if title == "" || priceRaw == "" {
		return domain.ProductRecord{}, false
	}

	price, ok := pricing.ParsePrice(priceRaw)
	if !ok {
		return domain.ProductRecord{}, false
	}

	original := price
	if v, ok := pricing.ParsePrice(strings.TrimSpace(card.Find(a.site.OriginalPrice).First().Text())); ok {
		original = v
	}

	link := attrFirst(card.Find("a").First(), "href")
	if link == "" {
		return domain.ProductRecord{}, false
	}
	if !strings.HasPrefix(link, "http") {
		link = a.site.BaseURL + link
	}

	image := attrFirst(card.Find("img").First(), "src", "data-src")
	if image == "" {
		image = placeholderImage
	}

	display := pricing.Normalize(&price, &original)

	// Some sites only badge the discount without showing the struck price.
	if display.DiscountPercentage == 0 {
		if pct, ok := pricing.ParsePrice(card.Find(a.site.Discount).First().Text()); ok && pct > 0 && pct <= 100 {
			display.DiscountPercentage = int(pct)
			display.DiscountText = fmt.Sprintf("%d%% off", display.DiscountPercentage)
		}
	}

	return domain.ProductRecord{
		ID:                 fmt.Sprintf("%s_%d_%d", a.site.AdapterName, time.Now().UnixMilli(), index),
		Title:              title,
		Price:              domain.Float(price),
		OriginalPrice:      domain.Float(original),
		PriceText:          display.PriceText,
		CurrentPriceText:   display.CurrentPriceText,
		OriginalPriceText:  display.OriginalPriceText,
		DiscountText:       display.DiscountText,
		DiscountPercentage: display.DiscountPercentage,
		AdditionalInfo:     enrich.AdditionalInfo(),
		Image:              image,
		Link:               link,
		Source:             a.site.Name,
		Category:           a.site.Category,
		Rating:             enrich.Rating(),
		ReviewCount:        enrich.ReviewCount(),
		Timestamp:          time.Now(),
		IsMock:             false,
	}, true
}

// attrFirst returns the first non-empty attribute among names.
func attrFirst(sel *goquery.Selection, names ...string) string {
	for _, name := range names {
		if v, ok := sel.Attr(name); ok && v != "" {
			return v
		}
	}
	return ""
}
