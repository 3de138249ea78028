package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ParsimonyGit/shipstation-integration/internal/api/handlers"
	"github.com/ParsimonyGit/shipstation-integration/internal/api/middleware"
	"github.com/ParsimonyGit/shipstation-integration/internal/config"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, services *handlers.Services, logger *zap.Logger) *gin.Engine {
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

	// The hub posts notifications here; it cannot authenticate, so the
	// route stays guest-accessible.
	router.POST("/webhook", handlers.HandleWebhook(services, logger))

	// User-facing actions (require authentication)
	v1 := router.Group("/v1")
	v1.Use(middleware.AuthMiddleware(cfg, logger))
	{
		accounts := v1.Group("/accounts")
		{
			accounts.POST("/:name/refresh-carriers", handlers.HandleRefreshCarriers(services, logger))
			accounts.POST("/:name/refresh-stores", handlers.HandleRefreshStores(services, logger))
			accounts.POST("/:name/refresh-warehouses", handlers.HandleRefreshWarehouses(services, logger))
			accounts.POST("/:name/import-products", handlers.HandleImportProducts(services, logger))
			accounts.GET("/:name/carriers/:carrier/services", handlers.HandleCarrierServices(services, logger))
		}

		actions := v1.Group("/actions")
		{
			actions.POST("/pull-orders", handlers.HandlePullOrders(services, logger))
			actions.POST("/pull-shipments", handlers.HandlePullShipments(services, logger))
			actions.POST("/labels", handlers.HandleCreateLabel(services, logger))
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
