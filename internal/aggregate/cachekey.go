package aggregate

import (
	"fmt"
	"strings"
)

// CacheKey derives the response-cache key for one aggregation request.
// Format: "search:{normalized query}:{source}:{max}".
func CacheKey(query, sourceFilter string, maxResults int) string {
	normalized := strings.ToLower(strings.TrimSpace(query))
	normalized = spaceRun.ReplaceAllString(normalized, " ")
	return fmt.Sprintf("search:%s:%s:%d", normalized, strings.ToLower(sourceFilter), maxResults)
}
