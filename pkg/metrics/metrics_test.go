package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Record(t *testing.T) {
	m := New()

	m.RecordCollaboratorFailure("marketaux")
	m.RecordCollaboratorFailure("marketaux")
	m.RecordObservations("gte", 7)
	m.RecordRun("console", "success", 2.5)
	m.RecordAllocation(1000, 970, 4, 2, 3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.collaboratorFailures.WithLabelValues("marketaux")))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.observations.WithLabelValues("gte")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runsTotal.WithLabelValues("console", "success")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.trimSteps))
	assert.Equal(t, 970.0, testutil.ToFloat64(m.lastTotalCost))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.listSize.WithLabelValues("buy")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.RecordCollaboratorFailure("yahoo_chart")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `sentiment_trading_collaborator_failures_total{source="yahoo_chart"} 1`)
}
