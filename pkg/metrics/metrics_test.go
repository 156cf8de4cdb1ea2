package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_RecordHTTPRequest(t *testing.T) {
	m := New(Config{})

	m.RequestStarted()
	m.RecordHTTPRequest("/users", http.MethodGet, http.StatusOK, 5*time.Millisecond)
	m.RequestStarted()
	m.RecordHTTPRequest("/users", http.MethodGet, http.StatusOK, 7*time.Millisecond)
	m.RequestStarted()
	m.RecordHTTPRequest("/users/:id", http.MethodGet, http.StatusNotFound, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("/users", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("/users/:id", "GET", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.httpInFlight))
}

func TestManager_IndependentRegistries(t *testing.T) {
	a := New(Config{})
	b := New(Config{})

	a.RequestStarted()
	a.RecordHTTPRequest("/", http.MethodGet, http.StatusOK, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(a.httpRequests.WithLabelValues("/", "GET", "200")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.httpRequests.WithLabelValues("/", "GET", "200")))
}

func TestManager_Handler(t *testing.T) {
	m := New(Config{Namespace: "test"})
	m.RequestStarted()
	m.RecordHTTPRequest("/health", http.MethodGet, http.StatusOK, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `test_http_requests_total{method="GET",route="/health",status="200"} 1`)
}
