package scrape

// Site describes one scraped marketplace deal page. The selector fields are
// comma-separated fallback lists: marketplaces rotate their obfuscated class
// names, so each field carries the stable data-testid hook first and the
// last-observed class names after it.
type Site struct {
	// Name is the marketplace display name ("Amazon").
	Name string
	// AdapterName is the lowercase identifier used for source filtering.
	AdapterName string
	// DealURL is the deals landing page to scrape.
	DealURL string
	// BaseURL prefixes relative product links.
	BaseURL string
	// Marker must be present in the document before extraction; its absence
	// means a layout change or a block page.
	Marker string

	Card          string
	Title         string
	Price         string
	OriginalPrice string
	Discount      string

	// Category is the best-effort category assigned to scraped records.
	Category string
}

// Sites returns the built-in scraped marketplaces.
func Sites() []Site {
	return []Site{
		{
			Name:          "Amazon",
			AdapterName:   "amazon",
			DealURL:       "https://www.amazon.in/gp/goldbox",
			BaseURL:       "https://www.amazon.in",
			Marker:        `[data-testid="deal-card"], .DealCard, .deal-card`,
			Card:          `[data-testid="deal-card"], .DealCard, .deal-card`,
			Title:         `h3, h4, [data-testid="deal-title"], .deal-title`,
			Price:         `[data-testid="deal-price"], .a-price-whole, .deal-price`,
			OriginalPrice: `[data-testid="deal-original-price"], .a-price-was, .deal-original-price`,
			Discount:      `[data-testid="deal-discount"], .a-badge-text, .deal-discount`,
			Category:      "electronics",
		},
		{
			Name:          "Flipkart",
			AdapterName:   "flipkart",
			DealURL:       "https://www.flipkart.com/offers-store",
			BaseURL:       "https://www.flipkart.com",
			Marker:        `[data-testid="product-card"], .product-card, ._1AtVbE`,
			Card:          `[data-testid="product-card"], .product-card, ._1AtVbE`,
			Title:         `[data-testid="product-title"], ._4rR01T, .product-title`,
			Price:         `[data-testid="product-price"], ._30jeq3, .product-price`,
			OriginalPrice: `[data-testid="product-original-price"], ._3I9_wc, .product-original-price`,
			Discount:      `[data-testid="product-discount"], ._3Ay6Sb, .product-discount`,
			Category:      "electronics",
		},
		{
			Name:          "Meesho",
			AdapterName:   "meesho",
			DealURL:       "https://www.meesho.com/offers",
			BaseURL:       "https://www.meesho.com",
			Marker:        `[data-testid="product-card"], .product-card, ._3YxL_`,
			Card:          `[data-testid="product-card"], .product-card, ._3YxL_`,
			Title:         `[data-testid="product-title"], ._3YxL_, .product-title`,
			Price:         `[data-testid="product-price"], ._2I5kpP, .product-price`,
			OriginalPrice: `[data-testid="product-original-price"], ._3I9_wc, .product-original-price`,
			Discount:      `[data-testid="product-discount"], ._3Ay6Sb, .product-discount`,
			Category:      "fashion",
		},
		{
			Name:          "Myntra",
			AdapterName:   "myntra",
			DealURL:       "https://www.myntra.com/offers",
			BaseURL:       "https://www.myntra.com",
			Marker:        `[data-testid="product-card"], .product-card, ._3YxL_`,
			Card:          `[data-testid="product-card"], .product-card, ._3YxL_`,
			Title:         `[data-testid="product-title"], ._3YxL_, .product-title`,
			Price:         `[data-testid="product-price"], ._2I5kpP, .product-price`,
			OriginalPrice: `[data-testid="product-original-price"], ._3I9_wc, .product-original-price`,
			Discount:      `[data-testid="product-discount"], ._3Ay6Sb, .product-discount`,
			Category:      "fashion",
		},
	}
}
