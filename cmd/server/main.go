package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gitpulse/gitpulse/internal/handlers"
	"github.com/gitpulse/gitpulse/internal/middleware"
	"github.com/gitpulse/gitpulse/internal/repositories"
	"github.com/gitpulse/gitpulse/internal/services"
	"github.com/gitpulse/gitpulse/pkg/config"
	"github.com/gitpulse/gitpulse/pkg/database"
	"github.com/gitpulse/gitpulse/pkg/logger"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Set Gin mode
	gin.SetMode(config.AppConfig.Server.Mode)

	// Initialize database
	if err := database.Init(config.AppConfig.Database.Path); err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Initialize dependencies
	referenceService := services.NewReferenceService()
	commitService, err := services.NewCommitService(config.AppConfig)
	if err != nil {
		logger.Fatalf("Failed to initialize GitHub client: %v", err)
	}
	velocityService := services.NewVelocityService()
	analysisService := services.NewAnalysisService(referenceService, commitService, velocityService)
	exportService := services.NewExportService()
	counterRepo := repositories.NewCounterRepository(database.DB)
	counterService := services.NewCounterService(counterRepo)

	// Initialize router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())

	// Setup routes
	setupRoutes(router, analysisService, exportService, counterService)

	// Setup server
	server := &http.Server{
		Addr:         ":" + config.AppConfig.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(config.AppConfig.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(config.AppConfig.Server.WriteTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Infof("Server starting on :%s", config.AppConfig.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	logger.Info("Server stopped")
}

func setupRoutes(router *gin.Engine, analysisService *services.AnalysisService, exportService *services.ExportService, counterService *services.CounterService) {
	// Initialize handlers
	analyzeHandler := handlers.NewAnalyzeHandler(analysisService)
	exportHandler := handlers.NewExportHandler(analysisService, exportService)
	counterHandler := handlers.NewCounterHandler(counterService)
	healthHandler := handlers.NewHealthHandler()

	api := router.Group("/api")
	{
		api.POST("/analyze", analyzeHandler.Analyze)
		api.POST("/analyze/export", exportHandler.Export)
		api.GET("/counters/:name", counterHandler.GetCounter)
		api.POST("/counters/:name/increment", counterHandler.IncrementCounter)
	}

	// Health check endpoint
	router.GET("/health", healthHandler.HealthCheck)
}
