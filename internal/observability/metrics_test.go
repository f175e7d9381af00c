package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCountersAndExposition(t *testing.T) {
	m := NewMetrics()
	m.ObserveAPI("GET", "/api/cars", "200", 20*time.Millisecond)
	m.IncRecommendation("ok")
	m.IncRecommendation("ok")
	m.IncChatAnswer("fallback")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.recommendations.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.chatAnswers.WithLabelValues("fallback")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "automate_api_requests_total"))
	assert.True(t, strings.Contains(body, "automate_recommendations_total"))
}

func TestMetricsNilReceiver(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/", "200", time.Millisecond)
	m.IncBooking("created")
	m.SetBreakerState("mail", 2)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
