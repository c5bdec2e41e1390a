package handlers

import (
	"net/http"

	"text2sql-api/internal/common"
	"text2sql-api/internal/generator"
	"text2sql-api/internal/schema"
	"text2sql-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// TablesRequest is the body of POST and PUT /api/v1/tables
type TablesRequest struct {
	Tables []schema.TableMeta `json:"tables"`
}

// TablesHandler exposes the schema catalog
type TablesHandler struct {
	service generator.Service
	logger  *logger.Logger
}

// NewTablesHandler creates a new TablesHandler instance
func NewTablesHandler(service generator.Service, logger *logger.Logger) *TablesHandler {
	return &TablesHandler{
		service: service,
		logger:  logger,
	}
}

// List handles GET /api/v1/tables
func (h *TablesHandler) List(c *gin.Context) {
	tables := h.service.Tables()
	c.JSON(http.StatusOK, gin.H{
		"tables": tables,
		"count":  len(tables),
	})
}

// Cache handles POST /api/v1/tables. Tables before the first invalid one stay cached.
func (h *TablesHandler) Cache(c *gin.Context) {
	log := requestLogger(c, h.logger)

	body, ok := bindTables(c, log)
	if !ok {
		return
	}

	if err := h.service.CacheAll(body.Tables); err != nil {
		writeError(c, log, err)
		return
	}

	log.Infow("Tables cached", "count", len(body.Tables))
	h.List(c)
}

// Refresh handles PUT /api/v1/tables
func (h *TablesHandler) Refresh(c *gin.Context) {
	log := requestLogger(c, h.logger)

	body, ok := bindTables(c, log)
	if !ok {
		return
	}

	if err := h.service.Refresh(body.Tables); err != nil {
		writeError(c, log, err)
		return
	}

	log.Infow("Catalog refreshed", "count", len(body.Tables))
	h.List(c)
}

// Clear handles DELETE /api/v1/tables
func (h *TablesHandler) Clear(c *gin.Context) {
	h.service.Clear()
	requestLogger(c, h.logger).Infow("Catalog cleared")
	c.Status(http.StatusNoContent)
}

func bindTables(c *gin.Context, log *logger.Logger) (TablesRequest, bool) {
	var body TablesRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, log, common.NewInvalidArgumentError("body", "request body must be JSON: "+err.Error()))
		return body, false
	}
	return body, true
}
