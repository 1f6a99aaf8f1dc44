package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// NewServer creates the HTTP server with all routes configured
func NewServer(handler *Handler, apiAccessKey string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	// CORS middleware; the presentation layer reads from another origin
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler, apiAccessKey)

	return r
}

// setupRoutes configures all the application routes
func setupRoutes(r *gin.Engine, handler *Handler, apiAccessKey string) {
	// Catalog read path (the Cache Reader surface)
	r.GET("/products", handler.ListProducts)
	r.GET("/products/featured", handler.GetFeatured)
	r.GET("/products/search", handler.SearchProducts)
	r.GET("/product/:slug", handler.GetProductBySlug)
	r.GET("/categories", handler.ListCategories)
	r.GET("/categories/:slug", handler.GetCategoryProducts)
	r.GET("/categories/:slug/subcategories", handler.GetSubCategories)

	// Health and status endpoints
	r.GET("/health", handler.HealthCheck)
	r.GET("/stats", handler.GetStats)

	// Operational endpoints (conditionally enabled with authentication)
	if apiAccessKey != "" {
		api := r.Group("/api")
		api.Use(authMiddleware(apiAccessKey))
		{
			api.POST("/sync", handler.TriggerSync)
			api.POST("/reload", handler.ReloadCatalog)
		}
		slog.Info("Operational API endpoints enabled with authentication")
	} else {
		slog.Info("Operational API endpoints disabled (API_ACCESS_KEY not set)")
	}

	// Root endpoint with basic information
	r.GET("/", func(c *gin.Context) {
		endpoints := map[string]string{
			"products":      "/products",
			"featured":      "/products/featured?limit=<n>",
			"search":        "/products/search?q=<query>",
			"product":       "/product/<slug>",
			"categories":    "/categories",
			"category":      "/categories/<slug>?subcategory=<name>",
			"subcategories": "/categories/<slug>/subcategories",
			"health":        "/health",
			"stats":         "/stats",
		}

		if apiAccessKey != "" {
			endpoints["sync"] = "/api/sync (POST, requires X-API-Key header)"
			endpoints["reload"] = "/api/reload (POST, requires X-API-Key header)"
		}

		c.JSON(200, gin.H{
			"service":     "FeedSync",
			"description": "Affiliate product feed ingestion and catalog API",
			"endpoints":   endpoints,
			"api_status": map[string]interface{}{
				"enabled":       apiAccessKey != "",
				"auth_required": apiAccessKey != "",
				"header":        "X-API-Key",
			},
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}

// authMiddleware creates authentication middleware for operational endpoints
func authMiddleware(apiAccessKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		providedKey := c.GetHeader("X-API-Key")

		// Also check Authorization header with Bearer prefix
		if providedKey == "" {
			authHeader := c.GetHeader("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				providedKey = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if providedKey == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "API key required",
				"message": "Provide API key in X-API-Key header or Authorization: Bearer <key>",
			})
			c.Abort()
			return
		}

		if providedKey != apiAccessKey {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid API key",
				"message": "The provided API key is not valid",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
