// Package linkres produces guaranteed-reachable outbound product links.
//
// Upstream sources routinely return deep links that look plausible but 404:
// fabricated product codes, stale listings, region mismatches. A search
// results page for the same title always works, so any deep link that does
// not match a known-good product URL pattern is replaced by a search link.
package linkres

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// GenericSource is the placeholder source name assigned when the upstream
// marketplace cannot be identified.
const GenericSource = "Online Store"

// DefaultSource receives searches for sources without a known template.
const DefaultSource = "Amazon"

// deepLinkRule accepts a deep link only when it matches a strict product-page
// pattern for one marketplace. The marker is the path fragment that announces
// a deep link attempt; anything carrying the marker but failing the pattern
// is rewritten to a search link on the rule's marketplace.
type deepLinkRule struct {
	marker  string
	pattern *regexp.Regexp
	source  string
}

type searchTemplate struct {
	format string
	// pathDashes renders the encoded title as a dash-separated path segment
	// instead of a query parameter (Myntra-style URLs).
	pathDashes bool
}

// Resolver maps source names to search-URL templates and validates
// adapter-supplied deep links. The zero value is not usable; construct with
// NewResolver.
type Resolver struct {
	templates map[string]searchTemplate
	deepLinks []deepLinkRule
}

// NewResolver returns a Resolver preloaded with the known marketplace search
// endpoints and deep-link patterns. Additional marketplaces can be registered
// on top of the defaults.
func NewResolver() *Resolver {
	r := &Resolver{
		templates: map[string]searchTemplate{
			"Amazon":           {format: "https://www.amazon.in/s?k=%s"},
			"Flipkart":         {format: "https://www.flipkart.com/search?q=%s"},
			"Myntra":           {format: "https://www.myntra.com/%s", pathDashes: true},
			"Ajio":             {format: "https://www.ajio.com/search/?text=%s"},
			"Nykaa":            {format: "https://www.nykaa.com/search/result/?q=%s"},
			"Meesho":           {format: "https://www.meesho.com/search?q=%s"},
			"Snapdeal":         {format: "https://www.snapdeal.com/search?keyword=%s"},
			"Tata CLiQ":        {format: "https://www.tatacliq.com/search/?searchCategory=all&text=%s"},
			"Reliance Digital": {format: "https://www.reliancedigital.in/search?q=%s"},
			"Croma":            {format: "https://www.croma.com/search/?q=%s"},
			"Google Shopping":  {format: "https://www.google.com/search?tbm=shop&q=%s"},
			"Purpile.com":      {format: "https://www.purpile.com/search?q=%s"},
			// Catalog/test sources have no storefront of their own.
			"FakeStore":   {format: "https://www.amazon.in/s?k=%s"},
			GenericSource: {format: "https://www.amazon.in/s?k=%s"},
		},
	}
	r.RegisterDeepLinkPattern("/dp/", regexp.MustCompile(`/dp/[A-Z0-9]{10}`), "Amazon")
	r.RegisterDeepLinkPattern("/p/", regexp.MustCompile(`(?i)/p/[a-z0-9]{16}`), "Flipkart")
	return r
}

// RegisterDeepLinkPattern adds a deep-link acceptance rule. Links containing
// marker that fail pattern are rewritten to a search link on source.
func (r *Resolver) RegisterDeepLinkPattern(marker string, pattern *regexp.Regexp, source string) {
	r.deepLinks = append(r.deepLinks, deepLinkRule{marker: marker, pattern: pattern, source: source})
}

// RegisterTemplate adds or replaces a search-URL template for a source.
// The template must contain a single %s for the encoded title.
func (r *Resolver) RegisterTemplate(source, format string) {
	r.templates[source] = searchTemplate{format: format}
}

// SearchLink builds a search-results URL for title on the named source.
// Unknown sources fall back to the default marketplace. The returned URL is
// always a syntactically valid absolute URL.
func (r *Resolver) SearchLink(title, source string) string {
	tpl, ok := r.templates[source]
	if !ok {
		tpl = r.templates[DefaultSource]
	}

	encoded := encodeComponent(title)
	if tpl.pathDashes {
		encoded = strings.ReplaceAll(encoded, "%20", "-")
	}
	return fmt.Sprintf(tpl.format, encoded)
}

// ValidateOrRewrite guarantees a working link for a record. A missing or
// non-absolute link becomes a search link for the record's source. A deep
// link carrying a known product-page marker is kept only when it matches the
// strict pattern for that marketplace; otherwise it is assumed fabricated or
// stale and replaced by a search link for the same title.
func (r *Resolver) ValidateOrRewrite(link, title, source string) string {
	if link == "" || !strings.HasPrefix(link, "http") {
		return r.SearchLink(title, source)
	}
	for _, rule := range r.deepLinks {
		if strings.Contains(link, rule.marker) && !rule.pattern.MatchString(link) {
			return r.SearchLink(title, rule.source)
		}
	}
	return link
}

// InferSource names the upstream marketplace from the link's domain. Records
// arriving without a source, or with the generic placeholder, get their
// source re-derived here.
func (r *Resolver) InferSource(link string) string {
	host := link
	if u, err := url.Parse(link); err == nil && u.Host != "" {
		host = u.Host
	}
	switch {
	case strings.Contains(host, "amazon"):
		return "Amazon"
	case strings.Contains(host, "flipkart"):
		return "Flipkart"
	case strings.Contains(host, "myntra"):
		return "Myntra"
	case strings.Contains(host, "nykaa"):
		return "Nykaa"
	case strings.Contains(host, "meesho"):
		return "Meesho"
	case strings.Contains(host, "purpile"):
		return "Purpile.com"
	default:
		return GenericSource
	}
}

// encodeComponent URL-encodes a title the way browsers encode query text,
// with spaces as %20 rather than +.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
