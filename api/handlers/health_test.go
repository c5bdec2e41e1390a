package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"text2sql-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestHealthHandler_Check(t *testing.T) {
	tests := []struct {
		name           string
		tables         int
		expectedStatus string
		expectedTables float64
	}{
		{
			name:           "catalog populated",
			tables:         2,
			expectedStatus: "ok",
			expectedTables: 2,
		},
		{
			name:           "catalog empty",
			tables:         0,
			expectedStatus: "degraded",
			expectedTables: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &MockGeneratorService{}
			service.On("Len").Return(tt.tables)

			router := setupTestRouter()
			router.GET("/health", NewHealthHandler(service, testLogger()).Check)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

			var response map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.expectedStatus, response["status"])
			assert.Equal(t, "text2sql-api", response["service"])
			assert.Equal(t, tt.expectedTables, response["tables"])
			assert.NotEmpty(t, response["timestamp"])

			service.AssertExpectations(t)
			service.AssertNotCalled(t, "Tables")
		})
	}
}
