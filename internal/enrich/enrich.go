// Package enrich synthesizes presentation-only display metadata.
//
// Everything produced here is flavor, not fact: upstream sources frequently
// omit ratings, review counts, delivery estimates and imagery, and the UI
// requires every card to be fully populated. Synthetic values are only ever
// backfilled, never allowed to overwrite genuine upstream data.
package enrich

import (
	"fmt"
	"math/rand"
	"strconv"
)

var deliveryTexts = []string{
	"FREE delivery Mon, 3 Nov",
	"FREE delivery Tue, 4 Nov",
	"FREE delivery Wed, 5 Nov",
	"FREE delivery Thu, 6 Nov",
	"FREE delivery Fri, 7 Nov",
}

var popularityTexts = []string{
	"1K+ bought in past month",
	"500+ bought in past month",
	"2K+ bought in past month",
	"Popular pick",
	"Best seller",
}

// AdditionalInfo returns the short marketing lines shown under a product
// card: a popularity indicator followed by a delivery estimate.
func AdditionalInfo() []string {
	return []string{
		popularityTexts[rand.Intn(len(popularityTexts))],
		deliveryTexts[rand.Intn(len(deliveryTexts))],
	}
}

// Rating returns a plausible rating in [3.5, 4.5) with one decimal, for
// upstreams that omit one.
func Rating() string {
	return strconv.FormatFloat(3.5+rand.Float64(), 'f', 1, 64)
}

// ReviewCount returns a plausible review count in [100, 1100).
func ReviewCount() int {
	return rand.Intn(1000) + 100
}

// SyntheticOriginal invents a reference price above the current price when
// the upstream supplies none, spread being the maximum relative markup.
func SyntheticOriginal(price, spread float64) float64 {
	return price * (1 + rand.Float64()*spread)
}

// PlaceholderImage returns a stock image URL for records without one.
func PlaceholderImage() string {
	return fmt.Sprintf("https://picsum.photos/300/200?random=%d", rand.Intn(1000))
}

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// RandomSuffix returns n lowercase base-36 characters for derived record ids.
func RandomSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = suffixAlphabet[rand.Intn(len(suffixAlphabet))]
	}
	return string(b)
}
