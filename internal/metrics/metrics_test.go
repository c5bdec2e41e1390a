package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveGeneration(t *testing.T) {
	before := testutil.ToFloat64(generationRequestsTotal.WithLabelValues(OutcomeSuccess))

	ObserveGeneration(OutcomeSuccess, 250*time.Millisecond)
	ObserveGeneration(OutcomeSuccess, time.Second)

	assert.Equal(t, before+2, testutil.ToFloat64(generationRequestsTotal.WithLabelValues(OutcomeSuccess)))
}

func TestRecordAttempt(t *testing.T) {
	before := testutil.ToFloat64(generationAttemptsTotal.WithLabelValues("extraction_error"))
	RecordAttempt("extraction_error")
	assert.Equal(t, before+1, testutil.ToFloat64(generationAttemptsTotal.WithLabelValues("extraction_error")))
}

func TestSetCatalogTables(t *testing.T) {
	SetCatalogTables(3)
	assert.Equal(t, float64(3), testutil.ToFloat64(catalogTables))

	SetCatalogTables(-1)
	assert.Equal(t, float64(0), testutil.ToFloat64(catalogTables))
}

func TestObserveHTTPRequest(t *testing.T) {
	counter := httpRequestsTotal.WithLabelValues(http.MethodPost, "/api/v1/sql", "502")
	before := testutil.ToFloat64(counter)

	ObserveHTTPRequest(http.MethodPost, "/api/v1/sql", http.StatusBadGateway, 10*time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
	assert.Equal(t, "unknown", statusLabel(0))
}
