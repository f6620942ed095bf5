package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/dealspot/backend/internal/aggregate"
	"github.com/dealspot/backend/internal/domain"
)

// Aggregator is the slice of the orchestrator the HTTP layer needs.
type Aggregator interface {
	Aggregate(ctx context.Context, query, sourceFilter string, maxResults int) (domain.AggregationResult, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	aggregator Aggregator
	cache      domain.CacheRepository
	wishlist   domain.WishlistRepository
	cacheTTL   time.Duration
}

// NewHandler creates a new HTTP handler
func NewHandler(aggregator Aggregator, cache domain.CacheRepository, wishlist domain.WishlistRepository, cacheTTL time.Duration) *Handler {
	return &Handler{
		aggregator: aggregator,
		cache:      cache,
		wishlist:   wishlist,
		cacheTTL:   cacheTTL,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "OK",
		"service":       "dealspot-backend",
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
		"exampleFormat": "₹33,990 M.R.P: ₹34,900 (3% off)",
	})
}

// Search handles GET /api/scrape: it aggregates deals for the query across
// the configured sources. An empty query is the only client error; all
// upstream failures degrade inside the aggregator.
func (h *Handler) Search(c *gin.Context) {
	query := c.Query("query")
	source := c.Query("source")

	maxResults, err := strconv.Atoi(c.DefaultQuery("maxResults", strconv.Itoa(aggregate.DefaultMaxResults)))
	if err != nil || maxResults <= 0 {
		maxResults = aggregate.DefaultMaxResults
	}

	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter required"})
		return
	}

	key := aggregate.CacheKey(query, source, maxResults)
	if cached, err := h.cache.Get(c.Request.Context(), key); err == nil {
		if result, ok := cached.(domain.AggregationResult); ok {
			c.JSON(http.StatusOK, result)
			return
		}
	}

	result, err := h.aggregator.Aggregate(c.Request.Context(), query, source, maxResults)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyQuery) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	if err := h.cache.Set(c.Request.Context(), key, result, h.cacheTTL); err != nil {
		logrus.WithError(err).Warn("response cache store failed")
	}

	c.JSON(http.StatusOK, result)
}

// addWishlistRequest is the POST /api/wishlist body.
type addWishlistRequest struct {
	Product *domain.ProductRecord `json:"product" binding:"required"`
}

// AddToWishlist saves a product for the identified user, backfilling the id
// when the client sends a record without one.
func (h *Handler) AddToWishlist(c *gin.Context) {
	var req addWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product is required"})
		return
	}

	product := *req.Product
	if product.ID == "" {
		product.ID = aggregate.DeriveID(&product)
	}

	userID := c.GetString(userIDKey)
	if err := h.wishlist.Add(c.Request.Context(), userID, product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add to wishlist: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Product added to wishlist",
		"productId": product.ID,
	})
}

// RemoveFromWishlist deletes a saved product. Removing an id the user never
// saved is treated as success, matching the idempotent client expectation.
func (h *Handler) RemoveFromWishlist(c *gin.Context) {
	productID := c.Param("productId")
	userID := c.GetString(userIDKey)

	err := h.wishlist.Remove(c.Request.Context(), userID, productID)
	if err != nil && !errors.Is(err, domain.ErrWishlistItemNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove from wishlist: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Product removed from wishlist",
		"productId": productID,
	})
}

// ListWishlist returns the user's saved products.
func (h *Handler) ListWishlist(c *gin.Context) {
	userID := c.GetString(userIDKey)

	products, err := h.wishlist.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, products)
}
