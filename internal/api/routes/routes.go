package routes

import (
	"log"

	"fleetops-backend/internal/api/handlers"
	"fleetops-backend/internal/api/middleware"
	"fleetops-backend/internal/repository"
	"fleetops-backend/internal/services"
	"fleetops-backend/internal/store"
	"fleetops-backend/pkg/cache"
	"fleetops-backend/pkg/redis"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// Dependencies holds the shared infrastructure handed down from main.
type Dependencies struct {
	DB           *mongo.Database
	RedisClient  *redis.Client
	CacheManager cache.Manager
	Notifier     services.Notifier
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	db := deps.DB
	mongoStore := store.NewMongoStore(db)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	floatRepo := repository.NewFloatRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	tourRepo := repository.NewTourRepository(db)
	issueRepo := repository.NewIssueRepository(db)
	inspectionRepo := repository.NewInspectionRepository(db)

	createIndexes(userRepo, floatRepo, expenseRepo, vehicleRepo, tourRepo, issueRepo)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	ledgerService := services.NewLedgerService(floatRepo, expenseRepo, mongoStore)
	ledgerService.SetMetadataReaders(tourRepo, vehicleRepo, userRepo)
	vehicleService := services.NewVehicleService(vehicleRepo)
	tourService := services.NewTourService(tourRepo, vehicleRepo)
	issueService := services.NewIssueService(issueRepo, vehicleRepo)
	inspectionService := services.NewInspectionService(inspectionRepo, issueRepo, vehicleRepo)
	maintenanceService := services.NewMaintenanceService(vehicleRepo, tourRepo)

	if deps.CacheManager != nil {
		ledgerService.SetCacheManager(deps.CacheManager)
		maintenanceService.SetCacheManager(deps.CacheManager)
	}
	if deps.Notifier != nil {
		issueService.SetNotifier(deps.Notifier)
		inspectionService.SetNotifier(deps.Notifier)
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	floatHandler := handlers.NewFloatHandler(ledgerService)
	expenseHandler := handlers.NewExpenseHandler(ledgerService)
	vehicleHandler := handlers.NewVehicleHandler(vehicleService)
	tourHandler := handlers.NewTourHandler(tourService)
	issueHandler := handlers.NewIssueHandler(issueService)
	inspectionHandler := handlers.NewInspectionHandler(inspectionService)
	maintenanceHandler := handlers.NewMaintenanceHandler(maintenanceService)
	healthHandler := handlers.NewHealthHandler(db, deps.RedisClient)

	// API routes
	api := router.Group("/api/v1")

	api.GET("/health", healthHandler.HealthCheck)

	// Public routes
	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/register", authHandler.Register)
		auth.POST("/refresh", authHandler.RefreshToken)
	}

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/auth/profile", authHandler.Profile)

		// Floats
		floats := protected.Group("/floats")
		{
			floats.GET("", floatHandler.GetFloats)
			floats.POST("", floatHandler.IssueFloat)
			floats.GET("/:id", floatHandler.GetFloat)
			floats.PATCH("/:id/close", floatHandler.CloseFloat)
		}

		// Expenses
		expenses := protected.Group("/expenses")
		{
			expenses.GET("", expenseHandler.GetExpenses)
			expenses.POST("", expenseHandler.SubmitExpense)
			expenses.PATCH("/:id/approve", expenseHandler.ApproveExpense)
			expenses.PATCH("/:id/reject", expenseHandler.RejectExpense)
			expenses.DELETE("/:id", expenseHandler.DeleteExpense)
		}

		// Vehicles
		vehicles := protected.Group("/vehicles")
		{
			vehicles.GET("", vehicleHandler.GetVehicles)
			vehicles.POST("", vehicleHandler.CreateVehicle)
			vehicles.GET("/:id", vehicleHandler.GetVehicle)
			vehicles.PATCH("/:id/status", vehicleHandler.UpdateStatus)
			vehicles.PATCH("/:id/odometer", vehicleHandler.UpdateOdometer)
			vehicles.GET("/:id/maintenance-indicators", maintenanceHandler.GetIndicators)
		}

		// Tours
		tours := protected.Group("/tours")
		{
			tours.GET("", tourHandler.GetTours)
			tours.POST("", tourHandler.CreateTour)
			tours.GET("/:id", tourHandler.GetTour)
		}

		// Issues
		issues := protected.Group("/issues")
		{
			issues.GET("", issueHandler.GetIssues)
			issues.POST("", issueHandler.CreateIssue)
			issues.PATCH("/:id/status", issueHandler.UpdateStatus)
		}

		// Inspections
		inspections := protected.Group("/inspections")
		{
			inspections.GET("", inspectionHandler.GetInspections)
			inspections.POST("", inspectionHandler.SubmitInspection)
		}
	}
}

type indexCreator interface {
	CreateIndexes() error
}

func createIndexes(creators ...indexCreator) {
	for _, creator := range creators {
		if err := creator.CreateIndexes(); err != nil {
			log.Printf("Warning: failed to create indexes: %v", err)
		}
	}
}
