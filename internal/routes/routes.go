package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/handlers"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(r *gin.Engine) {
	pageHandler := handlers.GetGlobalHandler()

	// API routes
	api := r.Group("/api/v1")
	{
		// Alerts pages (India, US)
		alerts := api.Group("/alerts")
		{
			alerts.GET("/:market", pageHandler.GetAlertsPage)
			alerts.GET("/:market/archive", pageHandler.GetArchive)
		}

		// Strategy preferences
		preferences := api.Group("/preferences")
		{
			preferences.POST("/:market/strategies", pageHandler.AddStrategies)
			preferences.DELETE("/:market/strategies/:strategy", pageHandler.RemoveStrategy)
		}

		// Watchlist management
		watchlist := api.Group("/watchlist")
		{
			watchlist.GET("/:market", pageHandler.GetWatchlist)
			watchlist.POST("/:market", pageHandler.AddWatchlistCompanies)
			watchlist.DELETE("/:market/:company", pageHandler.RemoveWatchlistCompany)
		}

		api.GET("/companies/:market", pageHandler.GetCompanies)

		// Newsletter
		newsletter := api.Group("/newsletter")
		{
			newsletter.POST("/subscribe", pageHandler.Subscribe)
			newsletter.POST("/share", pageHandler.ShareArticle)
			newsletter.GET("/share", pageHandler.GetSharedArticle)
		}

		// Account
		api.POST("/register", pageHandler.Register)
		api.POST("/login", pageHandler.Login)
		api.GET("/profile/:user_id", pageHandler.GetProfile)
	}

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "aifinverse",
		})
	})

	// Root endpoint
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "AIFinverse Alerts API",
			"version": "1.0.0",
			"endpoints": gin.H{
				"alerts":     "/api/v1/alerts/{market}",
				"watchlist":  "/api/v1/watchlist/{market}",
				"newsletter": "/api/v1/newsletter/subscribe",
				"health":     "/health",
			},
		})
	})
}
