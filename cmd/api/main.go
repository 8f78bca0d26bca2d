package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"incorpora/internal/config"
	"incorpora/internal/database"
	"incorpora/internal/handlers"
	"incorpora/internal/logger"
	"incorpora/internal/middleware"
	"incorpora/internal/services"
	"incorpora/internal/validator"

	_ "incorpora/internal/docs" // Import swagger docs
)

// @title           Incorpora API
// @version         1.0
// @description     Incorpora is a real-estate development feasibility engine: scenario simulation, cash-flow projection, financial indicators and portfolio consolidation.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	auditService := services.NewAuditService(db)
	userService := services.NewUserService(db)
	projectService := services.NewProjectService(db)
	scenarioService := services.NewScenarioService(db, projectService)
	portfolioService := services.NewPortfolioService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	projectHandler := handlers.NewProjectHandler(projectService, auditService)
	scenarioHandler := handlers.NewScenarioHandler(scenarioService, auditService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	auditHandler := handlers.NewAuditHandler(auditService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Project routes
	projects := protected.Group("/projects")
	projects.POST("", projectHandler.CreateProject)
	projects.GET("", projectHandler.GetUserProjects)
	projects.GET("/:id", projectHandler.GetProjectByID)
	projects.PUT("/:id", projectHandler.UpdateProject)
	projects.DELETE("/:id", projectHandler.DeleteProject)
	projects.PUT("/:id/active-scenario", projectHandler.SetActiveScenario)
	projects.POST("/:id/scenarios", scenarioHandler.CreateScenario)
	projects.GET("/:id/scenarios", scenarioHandler.GetProjectScenarios)

	// Scenario routes
	scenarios := protected.Group("/scenarios")
	scenarios.GET("/:id", scenarioHandler.GetScenarioByID)
	scenarios.PUT("/:id", scenarioHandler.UpdateScenario)
	scenarios.DELETE("/:id", scenarioHandler.DeleteScenario)
	scenarios.POST("/:id/copy", scenarioHandler.CopyScenario)
	scenarios.POST("/:id/costs", scenarioHandler.AddCost)
	scenarios.PUT("/:id/costs/:costId", scenarioHandler.UpdateCost)
	scenarios.DELETE("/:id/costs/:costId", scenarioHandler.RemoveCost)
	scenarios.POST("/:id/snapshots", scenarioHandler.CreateSnapshot)
	scenarios.GET("/:id/snapshots", scenarioHandler.GetSnapshots)
	scenarios.GET("/:id/results", scenarioHandler.GetResults)
	scenarios.GET("/:id/validation", scenarioHandler.GetValidation)
	scenarios.POST("/:id/recalculate", scenarioHandler.Recalculate)

	// Portfolio consolidation
	protected.GET("/portfolio", portfolioHandler.GetPortfolio)

	// Audit trail
	protected.GET("/audit-logs", auditHandler.GetAuditLogs)

	log.Infof("Starting Incorpora backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
