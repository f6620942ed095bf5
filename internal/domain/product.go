package domain

import "time"

// ProductRecord is the canonical product shape flowing through the
// aggregation pipeline and delivered to the UI as a flat JSON object.
// Field names and the composite priceText format are a compatibility
// contract with the consuming client.
type ProductRecord struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Price              *float64  `json:"price"`
	OriginalPrice      *float64  `json:"originalPrice"`
	PriceText          string    `json:"priceText"`
	CurrentPriceText   string    `json:"currentPriceText,omitempty"`
	OriginalPriceText  string    `json:"originalPriceText,omitempty"`
	DiscountText       string    `json:"discountText,omitempty"`
	DiscountPercentage int       `json:"discountPercentage"`
	AdditionalInfo     []string  `json:"additionalInfo"`
	Image              string    `json:"image"`
	Link               string    `json:"link"`
	Source             string    `json:"source"`
	Category           string    `json:"category"`
	Rating             string    `json:"rating,omitempty"`
	ReviewCount        int       `json:"reviewCount,omitempty"`
	Timestamp          time.Time `json:"timestamp"`
	IsMock             bool      `json:"isMock"`
}

// HasPrice reports whether the record carries a parsed current price.
func (p *ProductRecord) HasPrice() bool {
	return p.Price != nil
}

// Float returns a pointer to v, for filling the nullable price fields.
func Float(v float64) *float64 {
	return &v
}

// AggregationResult is the ordered, deduplicated, capped record list
// produced by one aggregation run.
type AggregationResult []ProductRecord
