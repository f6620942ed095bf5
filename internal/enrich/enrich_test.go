package enrich

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdditionalInfo(t *testing.T) {
	for i := 0; i < 20; i++ {
		info := AdditionalInfo()
		require.Len(t, info, 2)
		assert.NotEmpty(t, info[0])
		assert.Contains(t, info[1], "delivery")
	}
}

func TestRatingWithinRange(t *testing.T) {
	for i := 0; i < 100; i++ {
		raw := Rating()
		v, err := strconv.ParseFloat(raw, 64)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, 3.5)
		assert.LessOrEqual(t, v, 4.5)
		assert.Contains(t, raw, ".")
	}
}

func TestReviewCountWithinRange(t *testing.T) {
	for i := 0; i < 100; i++ {
		n := ReviewCount()
		assert.GreaterOrEqual(t, n, 100)
		assert.Less(t, n, 1100)
	}
}

func TestSyntheticOriginalNeverBelowPrice(t *testing.T) {
	for i := 0; i < 100; i++ {
		v := SyntheticOriginal(1000, 0.3)
		assert.GreaterOrEqual(t, v, float64(1000))
		assert.LessOrEqual(t, v, float64(1300))
	}
}

func TestPlaceholderImage(t *testing.T) {
	assert.True(t, strings.HasPrefix(PlaceholderImage(), "https://picsum.photos/"))
}

func TestRandomSuffix(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		s := RandomSuffix(9)
		require.Len(t, s, 9)
		assert.Equal(t, strings.ToLower(s), s)
		seen[s] = true
	}
	// Collisions across 50 draws of 36^9 values would indicate a broken source.
	assert.Len(t, seen, 50)
}
