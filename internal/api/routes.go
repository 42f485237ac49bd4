package api

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes sets up the preview server routes. siteDir is served
// statically under /site.
func SetupRoutes(handler *Handler, siteDir string) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(Recovery())
	router.Use(CORS())
	router.Use(gin.Logger())

	// Health check
	router.GET("/health", handler.HealthCheck)

	// Rendered pages
	router.Static("/site", siteDir)

	// API v1
	v1 := router.Group("/api/v1")
	{
		cache := v1.Group("/cache/:name")
		{
			cache.GET("", handler.GetCache)
			cache.GET("/entry", handler.GetCacheEntry)
		}
	}

	return router
}
