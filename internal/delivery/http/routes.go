package http

import (
	"github.com/gin-gonic/gin"

	"github.com/dealspot/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(RequestLogger())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	api := router.Group("/api")
	{
		api.GET("/health", handler.HealthCheck)
		api.GET("/scrape", handler.Search)

		wishlist := api.Group("/wishlist")
		wishlist.Use(RequireUser())
		{
			wishlist.POST("", handler.AddToWishlist)
			wishlist.DELETE("/:productId", handler.RemoveFromWishlist)
			wishlist.GET("/products", handler.ListWishlist)
		}
	}

	return router
}
