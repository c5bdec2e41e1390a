//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"text2sql-api/internal/events"
	"text2sql-api/internal/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sysUserTables = `{"tables": [{"table_name": "sys_user", "description": "application users",
	"columns": [{"name": "id", "type": "varchar"}, {"name": "user_name", "type": "varchar", "description": "login name"}]}]}`

func (a *testApp) do(method, path, body, requestID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func TestGenerationFlow_Success(t *testing.T) {
	app := setupApp(t, 1, mocks.SQLReply("SELECT user_name FROM sys_user"))

	w := app.do(http.MethodPost, "/api/v1/tables", sysUserTables, "")
	require.Equal(t, http.StatusOK, w.Code)

	requestID := uuid.New().String()
	w = app.do(http.MethodPost, "/api/v1/sql", `{"question": "list all user names"}`, requestID)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, requestID, w.Header().Get("X-Request-ID"))

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "SELECT user_name FROM sys_user", response["sql"])
	assert.Equal(t, int32(1), app.model.calls.Load())

	generated := app.recorder.Generated()
	require.Len(t, generated, 1)
	assert.Equal(t, requestID, generated[0].CorrelationID)
	assert.Equal(t, "list all user names", generated[0].Question)
	assert.Equal(t, 1, generated[0].Attempts)
	assert.Empty(t, app.recorder.Failed())

	schemaEvents := app.recorder.Schema()
	require.Len(t, schemaEvents, 1)
	assert.Equal(t, events.SchemaOpCacheAll, schemaEvents[0].Operation)
	assert.Equal(t, 1, schemaEvents[0].TableCount)
}

func TestGenerationFlow_RecoversAfterBadReply(t *testing.T) {
	app := setupApp(t, 2, "I cannot help with that", mocks.SQLReply("SELECT id FROM sys_user"))
	require.Equal(t, http.StatusOK, app.do(http.MethodPost, "/api/v1/tables", sysUserTables, "").Code)

	w := app.do(http.MethodPost, "/api/v1/sql", `{"question": "list ids"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int32(2), app.model.calls.Load())

	generated := app.recorder.Generated()
	require.Len(t, generated, 1)
	assert.Equal(t, 2, generated[0].Attempts)
}

func TestGenerationFlow_ExhaustedRetries(t *testing.T) {
	app := setupApp(t, 2, "no SQL here")
	require.Equal(t, http.StatusOK, app.do(http.MethodPost, "/api/v1/tables", sysUserTables, "").Code)

	w := app.do(http.MethodPost, "/api/v1/sql", `{"question": "list ids"}`, "")
	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, int32(3), app.model.calls.Load())

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "GENERATION_FAILED", response["code"])
	assert.Equal(t, float64(2), response["retries"])

	failed := app.recorder.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, 2, failed[0].Retries)
	assert.Equal(t, "extraction_error", failed[0].Kind)
	assert.Empty(t, app.recorder.Generated())
}

func TestGenerationFlow_SchemaLifecycle(t *testing.T) {
	app := setupApp(t, 0, mocks.SQLReply("SELECT 1"))

	require.Equal(t, http.StatusOK, app.do(http.MethodPost, "/api/v1/tables", sysUserTables, "").Code)

	w := app.do(http.MethodPut, "/api/v1/tables",
		`{"tables": [{"table_name": "orders", "columns": [{"name": "id", "type": "bigint"}]}]}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(http.MethodGet, "/api/v1/tables", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var listed struct {
		Tables []struct {
			TableName string `json:"table_name"`
		} `json:"tables"`
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Equal(t, 1, listed.Count)
	assert.Equal(t, "orders", listed.Tables[0].TableName)

	require.Equal(t, http.StatusNoContent, app.do(http.MethodDelete, "/api/v1/tables", "", "").Code)

	// An empty catalog is rejected without calling the model
	w = app.do(http.MethodPost, "/api/v1/sql", `{"question": "anything"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, int32(0), app.model.calls.Load())

	w = app.do(http.MethodGet, "/health", "", "")
	assert.Contains(t, w.Body.String(), `"degraded"`)

	ops := make([]string, 0, 3)
	for _, e := range app.recorder.Schema() {
		ops = append(ops, e.Operation)
	}
	assert.Equal(t, []string{events.SchemaOpCacheAll, events.SchemaOpRefresh, events.SchemaOpClear}, ops)
}
