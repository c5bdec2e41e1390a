package handlers

import (
	"net/http"

	"text2sql-api/internal/common"
	"text2sql-api/internal/generator"
	"text2sql-api/internal/schema"
	"text2sql-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// SQLHandler serves natural-language to SQL generation
type SQLHandler struct {
	service generator.Service
	logger  *logger.Logger
}

// NewSQLHandler creates a new SQLHandler instance
func NewSQLHandler(service generator.Service, logger *logger.Logger) *SQLHandler {
	return &SQLHandler{
		service: service,
		logger:  logger,
	}
}

// GenerateRequest is the body of POST /api/v1/sql
type GenerateRequest struct {
	Question string             `json:"question"`
	Tables   []schema.TableMeta `json:"tables"`
	Prompt   string             `json:"prompt"`
}

// GenerateResponse is the success body of POST /api/v1/sql
type GenerateResponse struct {
	SQL string `json:"sql"`
}

// Generate handles POST /api/v1/sql
func (h *SQLHandler) Generate(c *gin.Context) {
	log := requestLogger(c, h.logger)

	var body GenerateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, log, common.NewInvalidArgumentError("body", "request body must be JSON: "+err.Error()))
		return
	}

	// An absent "tables" stays nil and selects the catalog; [] is rejected.
	req := generator.Request{
		Question:       body.Question,
		Tables:         body.Tables,
		PromptOverride: body.Prompt,
	}

	sql, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		writeError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, GenerateResponse{SQL: sql})
}
