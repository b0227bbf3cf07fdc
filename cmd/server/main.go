package main

import (
	"log"

	"fleetops-backend/internal/api/routes"
	"fleetops-backend/internal/config"
	"fleetops-backend/internal/repository"
	"fleetops-backend/internal/services"
	"fleetops-backend/pkg/cache"
	"fleetops-backend/pkg/cleanup"
	"fleetops-backend/pkg/database"
	"fleetops-backend/pkg/email"
	"fleetops-backend/pkg/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Connect to MongoDB
	db, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Disconnect(db)

	// Initialize Redis client
	redisClient := redis.NewClient(cfg.Redis)
	defer redisClient.Close()

	var cacheManager cache.Manager
	healthStatus := redisClient.HealthCheck()
	if healthStatus.IsConnected {
		log.Printf("Redis connected successfully at %s", healthStatus.ConnectionInfo)
		cacheManager = cache.NewRedisManager(redisClient.GetClient(), cache.DefaultConfig())
	} else {
		log.Printf("Redis connection failed: %s (running without cache)", healthStatus.Error)
	}

	// Manager notifications need a configured SMTP host
	var notifier services.Notifier
	if cfg.SMTP.Host != "" {
		notifier = email.NewEmailService(cfg.SMTP)
	} else {
		log.Println("SMTP not configured, status-change notifications disabled")
	}

	// Purge resolved issues past their retention window
	issueRepo := repository.NewIssueRepository(db)
	cleanupService := cleanup.NewCleanupService(issueRepo, cfg.Cleanup.Interval, cfg.Cleanup.Retention)
	go cleanupService.Start()
	defer cleanupService.Stop()

	// Setup Gin router
	router := gin.Default()

	// CORS middleware
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
	}

	// Handle wildcard origin for development
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowCredentials = true
	}

	router.Use(cors.New(corsConfig))

	// Setup routes
	routes.SetupRoutes(router, routes.Dependencies{
		DB:           db,
		RedisClient:  redisClient,
		CacheManager: cacheManager,
		Notifier:     notifier,
	})

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	log.Fatal(router.Run(":" + cfg.Port))
}
