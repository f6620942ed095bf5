package linkres

import (
	"net/url"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchLink_KnownSources(t *testing.T) {
	r := NewResolver()

	tests := []struct {
		source string
		want   string
	}{
		{"Amazon", "https://www.amazon.in/s?k=iPhone"},
		{"Flipkart", "https://www.flipkart.com/search?q=iPhone"},
		{"Meesho", "https://www.meesho.com/search?q=iPhone"},
		{"Snapdeal", "https://www.snapdeal.com/search?keyword=iPhone"},
		{"Google Shopping", "https://www.google.com/search?tbm=shop&q=iPhone"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			assert.Equal(t, tt.want, r.SearchLink("iPhone", tt.source))
		})
	}
}

func TestSearchLink_EncodesTitle(t *testing.T) {
	r := NewResolver()

	assert.Equal(t, "https://www.amazon.in/s?k=iPhone%2015%20Pro", r.SearchLink("iPhone 15 Pro", "Amazon"))
}

func TestSearchLink_MyntraUsesDashedPath(t *testing.T) {
	r := NewResolver()

	assert.Equal(t, "https://www.myntra.com/running-shoes", r.SearchLink("running shoes", "Myntra"))
}

func TestSearchLink_UnknownSourceFallsBackToDefault(t *testing.T) {
	r := NewResolver()

	assert.Equal(t, "https://www.amazon.in/s?k=Widget", r.SearchLink("Widget", "Some Unknown Shop"))
}

func TestSearchLink_AlwaysValidURL(t *testing.T) {
	r := NewResolver()

	for _, source := range []string{"Amazon", "Myntra", "Tata CLiQ", "nope"} {
		link := r.SearchLink("blue & white kurta (size 40)", source)
		parsed, err := url.Parse(link)
		assert.NoError(t, err)
		assert.Contains(t, []string{"http", "https"}, parsed.Scheme)
	}
}

func TestValidateOrRewrite(t *testing.T) {
	r := NewResolver()

	tests := []struct {
		name   string
		link   string
		title  string
		source string
		want   string
	}{
		{
			name:   "missing link becomes search link",
			link:   "",
			title:  "Widget",
			source: "Flipkart",
			want:   "https://www.flipkart.com/search?q=Widget",
		},
		{
			name:   "relative link becomes search link",
			link:   "/dp/B0ABCD1234",
			title:  "Widget",
			source: "Amazon",
			want:   "https://www.amazon.in/s?k=Widget",
		},
		{
			name:   "invalid amazon deep link rewritten",
			link:   "https://site.com/dp/INVALIDID",
			title:  "Widget",
			source: "Amazon",
			want:   "https://www.amazon.in/s?k=Widget",
		},
		{
			name:   "valid amazon deep link kept",
			link:   "https://www.amazon.in/dp/B0ABCD1234",
			title:  "Widget",
			source: "Amazon",
			want:   "https://www.amazon.in/dp/B0ABCD1234",
		},
		{
			name:   "invalid flipkart deep link rewritten",
			link:   "https://www.flipkart.com/p/short",
			title:  "Widget",
			source: "Flipkart",
			want:   "https://www.flipkart.com/search?q=Widget",
		},
		{
			name:   "valid flipkart deep link kept",
			link:   "https://www.flipkart.com/item/p/itm1234567890abc",
			title:  "Widget",
			source: "Flipkart",
			want:   "https://www.flipkart.com/item/p/itm1234567890abc",
		},
		{
			name:   "plain absolute link without deep-link marker kept",
			link:   "https://www.meesho.com/search?q=Widget",
			title:  "Widget",
			source: "Meesho",
			want:   "https://www.meesho.com/search?q=Widget",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.ValidateOrRewrite(tt.link, tt.title, tt.source))
		})
	}
}

func TestRegisterDeepLinkPattern(t *testing.T) {
	r := NewResolver()
	r.RegisterTemplate("Croma", "https://www.croma.com/search/?q=%s")
	r.RegisterDeepLinkPattern("/product/", regexp.MustCompile(`/product/[0-9]{6}`), "Croma")

	// Fails the new pattern, rewritten to the registered source's search.
	got := r.ValidateOrRewrite("https://www.croma.com/product/abc", "Mixer", "Croma")
	assert.Equal(t, "https://www.croma.com/search/?q=Mixer", got)

	// Passes the new pattern, kept.
	keep := "https://www.croma.com/product/123456"
	assert.Equal(t, keep, r.ValidateOrRewrite(keep, "Mixer", "Croma"))
}

func TestInferSource(t *testing.T) {
	r := NewResolver()

	tests := []struct {
		link string
		want string
	}{
		{"https://www.amazon.in/s?k=tv", "Amazon"},
		{"https://www.flipkart.com/search?q=tv", "Flipkart"},
		{"https://www.myntra.com/shoes", "Myntra"},
		{"https://www.nykaa.com/search/result/?q=serum", "Nykaa"},
		{"https://www.purpile.com/search?q=tv", "Purpile.com"},
		{"https://www.example.com/item", GenericSource},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, r.InferSource(tt.link))
	}
}
