package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type observation struct {
	method string
	path   string
	status int
}

type recordingMetrics struct {
	mu           sync.Mutex
	observations []observation
}

func (m *recordingMetrics) ObserveHTTPRequest(method, path string, status int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observations = append(m.observations, observation{method: method, path: path, status: status})
}

func TestMetricsMiddleware(t *testing.T) {
	metrics := &recordingMetrics{}

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(metrics))
	r.HandleFunc("/notifications/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodDelete)
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodDelete, "/notifications/abc", nil),
		httptest.NewRequest(http.MethodGet, "/health", nil),
	} {
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	require.Len(t, metrics.observations, 2)
	assert.Equal(t, observation{method: http.MethodDelete, path: "/notifications/{id}", status: http.StatusNoContent}, metrics.observations[0])
	assert.Equal(t, observation{method: http.MethodGet, path: "/health", status: http.StatusOK}, metrics.observations[1])
}
