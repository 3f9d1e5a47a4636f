package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentHandlerUsesRoutePattern(t *testing.T) {
	m := New()

	r := chi.NewRouter()
	r.Use(m.InstrumentHandler)
	r.Get("/programs/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Handle("/metrics", m.Handler())

	for _, path := range []string{"/programs/1", "/programs/2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	}

	count := testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/programs/{id}", "404"))
	assert.Equal(t, float64(2), count)
	assert.Equal(t, float64(0), testutil.ToFloat64(m.inFlight))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `fittrack_http_requests_total{method="GET",route="/programs/{id}",status="404"} 2`), body)
	assert.Contains(t, body, "go_goroutines")
}

func TestStatusRecorderDefaultsToOK(t *testing.T) {
	m := New()
	h := m.InstrumentHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, float64(1), testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "unmatched", "200")))
}
