package handlers

import (
	"net/http"
	"time"

	"text2sql-api/internal/generator"
	"text2sql-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

const serviceName = "text2sql-api"

type HealthHandler struct {
	service generator.Service
	logger  *logger.Logger
}

func NewHealthHandler(service generator.Service, logger *logger.Logger) *HealthHandler {
	return &HealthHandler{
		service: service,
		logger:  logger,
	}
}

// Check reports liveness and how many tables the catalog holds. An empty
// catalog is reported as "degraded" since every generation would be rejected.
func (h *HealthHandler) Check(c *gin.Context) {
	status := "ok"
	tables := h.service.Len()
	if tables == 0 {
		status = "degraded"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   serviceName,
		"tables":    tables,
	})
}
