package handlers

import (
	"errors"
	"net/http"

	"text2sql-api/internal/common"
	"text2sql-api/internal/llm"
	"text2sql-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// requestLogger returns the per-request logger set by the logging middleware
func requestLogger(c *gin.Context, fallback *logger.Logger) *logger.Logger {
	if value, ok := c.Get("logger"); ok {
		if reqLogger, ok := value.(*logger.Logger); ok {
			return reqLogger
		}
	}
	return fallback
}

// writeError maps service errors onto HTTP responses
func writeError(c *gin.Context, log *logger.Logger, err error) {
	var invalid common.InvalidArgumentError
	if errors.As(err, &invalid) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
			"code":  invalid.Code(),
			"field": invalid.Field,
		})
		return
	}

	if failure, ok := llm.AsGenerationFailed(err); ok {
		log.Warnw("SQL generation failed", "retries", failure.Retries, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   failure.Message(),
			"code":    failure.Code(),
			"retries": failure.Retries,
			"cause":   errorMessage(failure.Cause),
		})
		return
	}

	log.Errorw("Unexpected error", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "internal error",
		"code":  "INTERNAL",
	})
}

func errorMessage(err error) string {
	var coded common.CodedError
	if errors.As(err, &coded) {
		return coded.Message()
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
