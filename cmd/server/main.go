package main

import (
	_ "github.com/joho/godotenv/autoload" // Load .env file automatically

	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"text2sql-api/api/routes"
	"text2sql-api/internal/config"
	"text2sql-api/internal/events"
	"text2sql-api/internal/generator"
	"text2sql-api/internal/schema"
	"text2sql-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger, err := logger.NewWithLevel(cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Get the underlying zap logger for services
	zapLogger := logger.Zap()

	endpoint, opts, err := generator.FromConfig(cfg)
	if err != nil {
		logger.Fatal("Invalid generation settings", "error", err)
	}
	opts = append(opts, generator.WithLogger(zapLogger))

	// Pre-seed the catalog from the schema file, if any
	if cfg.Generation.SchemaFile != "" {
		tables, err := schema.LoadFile(cfg.Generation.SchemaFile)
		if err != nil {
			logger.Fatal("Failed to load schema file", "path", cfg.Generation.SchemaFile, "error", err)
		}
		opts = append(opts, generator.WithTables(tables...))
		logger.Info("Schema file loaded", "path", cfg.Generation.SchemaFile, "tables", len(tables))
	}

	// Initialize event bus
	var eventBus events.EventBus
	if cfg.Events.Enabled {
		eventBus = events.NewEventBus(zapLogger)
		if err := events.RegisterAuditLog(eventBus, zapLogger); err != nil {
			logger.Fatal("Failed to register event subscribers", "error", err)
		}
		opts = append(opts, generator.WithEventBus(eventBus))
	}

	gen, err := generator.New(endpoint, opts...)
	if err != nil {
		logger.Fatal("Failed to initialize SQL generator", "error", err)
	}

	// Setup Gin router
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	routes.SetupRoutes(router, gen, logger)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting server",
			"port", cfg.Server.Port,
			"model", endpoint.Model,
			"dialect", gen.Config().Dialect,
			"max_retries", gen.Config().MaxRetries,
			"breaker", cfg.Breaker.Enabled)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Drain asynchronous event handlers after in-flight requests finish
	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			logger.Error("Failed to close event bus", "error", err)
		}
	}

	logger.Info("Server exited")
}
