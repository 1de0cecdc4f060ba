package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"go-ticket-tracker/internal/model"
)

func TestRecordersCount(t *testing.T) {
	m := New()

	m.TokenIssued(model.TokenTypeAccess)
	m.TokenIssued(model.TokenTypeAccess)
	m.AuthRejected("invalid_token")
	m.RefreshOutcome(model.RefreshRejected)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.tokensIssued.WithLabelValues(model.TokenTypeAccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.authRejections.WithLabelValues("invalid_token")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.refreshOutcomes.WithLabelValues("rejected")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.TokenIssued(model.TokenTypeRefresh)
		m.AuthRejected("missing_header")
		m.RefreshOutcome(model.RefreshGranted)
	})
}

func TestInstrumentAndHandler(t *testing.T) {
	m := New()
	handler := m.Instrument(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues(http.MethodGet, "/health", "418")))

	rec = httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}
