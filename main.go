package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/acarlier/loto-backend/config"
	"github.com/acarlier/loto-backend/routes"
	"github.com/acarlier/loto-backend/services"
	"github.com/acarlier/loto-backend/utils/logger"
)

// setupRouter initializes Gin routes and middleware
func setupRouter(cfg config.Config) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup REST routes
	routes.SetupRoutes(r)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now()})
	})

	// WebSocket endpoint for public displays
	r.GET("/ws/events/:id", services.HandleWebSocket)

	return r
}

func main() {
	// Load env variables
	cfg := config.Load()

	// Connect to database
	db := config.SetupDatabase(cfg.DatabaseURL)

	// Wire domain services
	services.Init(db)

	// Setup Gin router
	router := setupRouter(cfg)

	// Start server
	logger.Infof("Loto backend starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Log.Fatalf("Failed to start server: %v", err)
	}
}
