package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"text2sql-api/internal/common"
	"text2sql-api/internal/schema"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func tablesRouter(service *MockGeneratorService) *gin.Engine {
	router := setupTestRouter()
	handler := NewTablesHandler(service, testLogger())
	router.GET("/api/v1/tables", handler.List)
	router.POST("/api/v1/tables", handler.Cache)
	router.PUT("/api/v1/tables", handler.Refresh)
	router.DELETE("/api/v1/tables", handler.Clear)
	return router
}

func TestTablesHandler_List(t *testing.T) {
	service := &MockGeneratorService{}
	service.On("Tables").Return([]schema.TableMeta{{TableName: "sys_user", Description: "users"}})

	w, response := postJSON(t, tablesRouter(service), http.MethodGet, "/api/v1/tables", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), response["count"])
	tables := response["tables"].([]interface{})
	assert.Equal(t, "sys_user", tables[0].(map[string]interface{})["table_name"])
}

func TestTablesHandler_Cache(t *testing.T) {
	cached := []schema.TableMeta{{TableName: "sys_user"}}

	service := &MockGeneratorService{}
	service.On("CacheAll", cached).Return(nil)
	service.On("Tables").Return(cached)

	w, response := postJSON(t, tablesRouter(service), http.MethodPost, "/api/v1/tables",
		`{"tables": [{"table_name": "sys_user"}]}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), response["count"])
	service.AssertExpectations(t)
}

func TestTablesHandler_CacheInvalid(t *testing.T) {
	service := &MockGeneratorService{}
	service.On("CacheAll", mock.Anything).
		Return(fmt.Errorf("table at index 1: %w", common.NewInvalidArgumentError("table_name", "table name must not be blank")))

	w, response := postJSON(t, tablesRouter(service), http.MethodPost, "/api/v1/tables",
		`{"tables": [{"table_name": "a"}, {"table_name": ""}]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, response["error"], "table at index 1")
	service.AssertNotCalled(t, "Tables")
}

func TestTablesHandler_Refresh(t *testing.T) {
	service := &MockGeneratorService{}
	service.On("Refresh", []schema.TableMeta{{TableName: "orders"}}).Return(nil)
	service.On("Tables").Return([]schema.TableMeta{{TableName: "orders"}})

	w, _ := postJSON(t, tablesRouter(service), http.MethodPut, "/api/v1/tables",
		`{"tables": [{"table_name": "orders"}]}`)

	assert.Equal(t, http.StatusOK, w.Code)
	service.AssertExpectations(t)
}

func TestTablesHandler_RefreshEmpty(t *testing.T) {
	service := &MockGeneratorService{}
	service.On("Refresh", mock.Anything).
		Return(common.NewInvalidArgumentError("tables", "refresh requires at least one table"))

	w, response := postJSON(t, tablesRouter(service), http.MethodPut, "/api/v1/tables", `{"tables": []}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "tables", response["field"])
}

func TestTablesHandler_Clear(t *testing.T) {
	service := &MockGeneratorService{}
	service.On("Clear").Return()

	w := httptest.NewRecorder()
	tablesRouter(service).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/tables", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	service.AssertExpectations(t)
}
