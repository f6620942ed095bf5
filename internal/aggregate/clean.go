package aggregate

import (
	"strings"

	"github.com/dealspot/backend/internal/domain"
	"github.com/dealspot/backend/internal/enrich"
	"github.com/dealspot/backend/internal/linkres"
	"github.com/dealspot/backend/internal/pricing"
)

// Cleaner post-processes merged adapter output so every record reaches the
// client with all required display fields populated. Every step heals;
// records are never dropped here, only by dedup.
type Cleaner struct {
	resolver *linkres.Resolver
}

// NewCleaner creates a Cleaner backed by the given link resolver.
func NewCleaner(resolver *linkres.Resolver) *Cleaner {
	return &Cleaner{resolver: resolver}
}

// Clean mutates records in place and returns the same slice.
func (c *Cleaner) Clean(records []domain.ProductRecord) []domain.ProductRecord {
	for i := range records {
		r := &records[i]

		if r.ID == "" {
			r.ID = DeriveID(r)
		}

		// A link is kept only when absolute and passing deep-link
		// validation; everything else becomes a search link.
		r.Link = c.resolver.ValidateOrRewrite(r.Link, r.Title, r.Source)

		if r.Source == "" || r.Source == linkres.GenericSource {
			r.Source = c.resolver.InferSource(r.Link)
		}

		if r.PriceText == "" {
			display := pricing.Normalize(r.Price, r.OriginalPrice)
			r.PriceText = display.PriceText
			r.CurrentPriceText = display.CurrentPriceText
			r.OriginalPriceText = display.OriginalPriceText
			r.DiscountText = display.DiscountText
			r.DiscountPercentage = display.DiscountPercentage
		}

		if len(r.AdditionalInfo) == 0 {
			r.AdditionalInfo = enrich.AdditionalInfo()
		}

		if r.Image == "" {
			r.Image = enrich.PlaceholderImage()
		}
	}
	return records
}

// DeriveID builds a lowercase id from source, a title fragment and a random
// suffix. The suffix keeps ids unique within a response but unstable across
// responses, so dedup only ever applies within a single aggregation.
func DeriveID(r *domain.ProductRecord) string {
	titlePart := "product"
	if r.Title != "" {
		runes := []rune(r.Title)
		if len(runes) > 20 {
			runes = runes[:20]
		}
		titlePart = spaceRun.ReplaceAllString(string(runes), "_")
	}

	sourcePart := "unknown"
	if r.Source != "" {
		sourcePart = spaceRun.ReplaceAllString(r.Source, "_")
	}

	return strings.ToLower(sourcePart + "_" + titlePart + "_" + enrich.RandomSuffix(9))
}
