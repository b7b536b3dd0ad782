package http

import (
	"github.com/gin-gonic/gin"

	"github.com/convenuence/backend/config"
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
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		venues := v1.Group("/venues")
		{
			venues.GET("/search", handler.SearchVenues)
			venues.GET("/search/cached", handler.SearchVenuesFromCache)
			venues.GET("/:id", handler.GetVenueDetails)
		}

		favorites := v1.Group("/favorites")
		{
			favorites.GET("", handler.ListFavorites)
			favorites.GET("/:id", handler.GetFavorite)
			favorites.PUT("/:id", handler.SaveFavorite)
			favorites.DELETE("/:id", handler.RemoveFavorite)
		}
	}

	return router
}
