package aggregate

import (
	"regexp"
	"sort"

	"github.com/dealspot/backend/internal/domain"
)

var spaceRun = regexp.MustCompile(`\s+`)

// dedupByID drops records whose id was already seen. The first occurrence in
// iteration order wins; later duplicates are discarded without field merging.
func dedupByID(records []domain.ProductRecord) []domain.ProductRecord {
	seen := make(map[string]bool, len(records))
	unique := records[:0]
	for _, r := range records {
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		unique = append(unique, r)
	}
	return unique
}

// sortByDiscount orders records by discount percentage descending. The sort
// is stable so ties keep their prior relative order.
func sortByDiscount(records []domain.ProductRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].DiscountPercentage > records[j].DiscountPercentage
	})
}
