package routes

import (
	"text2sql-api/api/handlers"
	"text2sql-api/api/middleware"
	"text2sql-api/internal/generator"
	"text2sql-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(router *gin.Engine, service generator.Service, logger *logger.Logger) {
	// Add middleware
	router.Use(middleware.RequestLogging(logger))
	router.Use(middleware.Metrics())
	router.Use(gin.Recovery())

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(service, logger)
	sqlHandler := handlers.NewSQLHandler(service, logger)
	tablesHandler := handlers.NewTablesHandler(service, logger)

	// Setup routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthHandler.Check)

		v1.POST("/sql", sqlHandler.Generate)

		v1.GET("/tables", tablesHandler.List)
		v1.POST("/tables", tablesHandler.Cache)
		v1.PUT("/tables", tablesHandler.Refresh)
		v1.DELETE("/tables", tablesHandler.Clear)
	}

	// Root health check
	router.GET("/health", healthHandler.Check)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
