package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bargenix/bargaining-api/internal/api/handlers"
	"github.com/bargenix/bargaining-api/internal/api/middleware"
	"github.com/bargenix/bargaining-api/internal/config"
	"github.com/bargenix/bargaining-api/internal/repository"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/v1")
	{
		// Public storefront routes (no merchant auth)
		v1.POST("/bargaining/request", handlers.HandleSubmitBargainRequest(repos, logger))
		v1.GET("/bargaining/products/:productId", handlers.HandleGetBargainInfo(repos, logger))

		// Merchant routes (require API-key authentication)
		merchantRoutes := v1.Group("")
		merchantRoutes.Use(middleware.AuthMiddleware(repos, logger))
		{
			bargaining := merchantRoutes.Group("/bargaining")
			{
				bargaining.POST("/set-by-category", handlers.HandleSetByCategory(repos, logger))
				bargaining.POST("/set-all-products", handlers.HandleSetAllProducts(repos, logger))
				bargaining.POST("/set-by-product", handlers.HandleSetByProduct(repos, logger))
				bargaining.POST("/set-min-price", handlers.HandleSetMinPrice(repos, logger))
				bargaining.POST("/bulk-min-price", handlers.HandleBulkMinPrice(repos, logger))
				bargaining.DELETE("/products/:productId", handlers.HandleDeactivateProduct(repos, logger))
				bargaining.POST("/deactivate-category", handlers.HandleDeactivateByCategory(repos, logger))
				bargaining.POST("/deactivate-all", handlers.HandleDeactivateAll(repos, logger))
				bargaining.GET("/configs", handlers.HandleListConfigs(repos, logger))
				bargaining.POST("/requests/by-shop", handlers.HandleListUnreadRequests(repos, logger))
				bargaining.PUT("/requests/:id/read", handlers.HandleMarkRequestRead(repos, logger))
			}

			merchantRoutes.POST("/shopify/connect", handlers.HandleConnectShopify(cfg.Shopify.DefaultAPIVersion, repos, logger))
		}
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
