package pricing

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// NotAvailable is the terminal display text for an unparseable current price.
const NotAvailable = "Price not available"

// india formats numbers with Indian digit grouping (1,23,456).
var india = message.NewPrinter(language.MustParse("en-IN"))

// Display holds the derived price display fields for one product record.
type Display struct {
	PriceText          string
	CurrentPriceText   string
	OriginalPriceText  string
	DiscountText       string
	DiscountPercentage int
}

// ParsePrice extracts a numeric price from a raw upstream value such as
// "₹1,299" or "1299.00". Every character except digits and the first decimal
// point is stripped before parsing. ok is false when nothing numeric remains.
func ParsePrice(raw string) (value float64, ok bool) {
	var b strings.Builder
	dotSeen := false
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !dotSeen:
			dotSeen = true
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" || cleaned == "." {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// FormatINR renders a price with Indian thousands grouping, e.g. 34900 ->
// "34,900" and 129999 -> "1,29,999".
func FormatINR(v float64) string {
	return india.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(2)))
}

// Normalize converts a parsed current/original price pair into the canonical
// display fields. A nil or non-finite current price yields only the
// NotAvailable text; this is a terminal outcome, not an error. The discount
// is round(((original-current)/original)*100) when original > current,
// otherwise 0, never negative and never derived from a missing original.
func Normalize(current, original *float64) Display {
	if current == nil || math.IsNaN(*current) || math.IsInf(*current, 0) {
		return Display{PriceText: NotAvailable}
	}

	d := Display{}
	formattedCurrent := FormatINR(*current)
	d.CurrentPriceText = "₹" + formattedCurrent

	formattedOriginal := ""
	if original != nil && *original > 0 && !math.IsNaN(*original) && !math.IsInf(*original, 0) {
		formattedOriginal = FormatINR(*original)
		d.OriginalPriceText = "₹" + formattedOriginal

		if *original > *current {
			d.DiscountPercentage = int(math.Round((*original - *current) / *original * 100))
		}
	}

	if formattedOriginal != "" && d.DiscountPercentage > 0 {
		d.DiscountText = fmt.Sprintf("%d%% off", d.DiscountPercentage)
		d.PriceText = fmt.Sprintf("₹%s M.R.P: ₹%s (%d%% off)", formattedCurrent, formattedOriginal, d.DiscountPercentage)
	} else {
		d.PriceText = "₹" + formattedCurrent
	}

	return d
}

// NormalizeStrings parses raw price strings first, then normalizes. Adapters
// that receive string prices from the upstream use this form.
func NormalizeStrings(currentRaw, originalRaw string) Display {
	var current, original *float64
	if v, ok := ParsePrice(currentRaw); ok {
		current = &v
	}
	if v, ok := ParsePrice(originalRaw); ok {
		original = &v
	}
	return Normalize(current, original)
}
