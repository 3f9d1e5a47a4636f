package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fittrack/fittrack-api/internal/api/shared"
	"github.com/fittrack/fittrack-api/internal/config"
	"github.com/fittrack/fittrack-api/internal/platform/logger"
)

func TestTraceMiddleware(t *testing.T) {
	var logBuf strings.Builder
	base := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var traceID string
	handler := TraceMiddleware(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
		logger.FromContext(r.Context()).Info("inside handler")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/programs", nil))

	require.NotEmpty(t, traceID)
	assert.Equal(t, traceID, recorder.Header().Get(TraceHeader))
	assert.Contains(t, logBuf.String(), "msg=\"inside handler\" trace_id="+traceID)
}

func TestLocale(t *testing.T) {
	bundle := testBundle(t)

	tests := []struct {
		header string
		want   string
	}{
		{header: "", want: "en"},
		{header: "sk", want: "sk"},
		{header: "sk-SK,sk;q=0.9,en;q=0.8", want: "sk"},
		{header: "de-DE", want: "en"},
		{header: "garbage;;", want: "en"},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			var got string
			handler := Locale(bundle)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = shared.LocalizerFromContext(r.Context()).Locale()
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Accept-Language", tt.header)
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, req)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, recorder.Header().Get("Content-Language"))
		})
	}
}

func TestRateLimiter(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(config.RateLimitConfig{RequestsPerSecond: 1, Burst: 2})
	limiter.now = func() time.Time { return now }

	handler := limiter.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	call := func(remoteAddr string) int {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = remoteAddr
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)
		return recorder.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1:1000"))
	assert.Equal(t, http.StatusOK, call("10.0.0.1:1001"), "same IP, different port")
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:1002"))
	assert.Equal(t, http.StatusOK, call("10.0.0.2:1000"), "other clients keep their own bucket")

	now = now.Add(time.Second)
	assert.Equal(t, http.StatusOK, call("10.0.0.1:1003"), "bucket refills")

	now = now.Add(time.Hour)
	limiter.Cleanup()
	limiter.mu.Lock()
	assert.Empty(t, limiter.limiters)
	limiter.mu.Unlock()
}

func TestErrorLog(t *testing.T) {
	var sinkBuf bytes.Buffer
	sink := logger.NewErrorLog(&sinkBuf)

	router := chi.NewRouter()
	router.Use(ErrorLog(sink))
	router.Post("/programs/{id}", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.Contains(t, string(body), "hunter2", "handler still sees the full body")
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "internal",
			errors.New("insert failed"))
	})
	router.Get("/panic", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	router.Get("/fine", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	t.Run("5xx entry with redacted body", func(t *testing.T) {
		sinkBuf.Reset()
		req := httptest.NewRequest(http.MethodPost, "/programs/7?verbose=1",
			strings.NewReader(`{"name":"Legs","auth":{"newPassword":"hunter2"},"Password":"hunter2"}`))
		req.Header.Set("User-Agent", "tests")
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, req)
		require.Equal(t, http.StatusInternalServerError, recorder.Code)

		var entry logger.ErrorEntry
		require.NoError(t, json.Unmarshal(sinkBuf.Bytes(), &entry))
		assert.Equal(t, http.MethodPost, entry.Method)
		assert.Equal(t, "http://example.com/programs/7?verbose=1", entry.FullURL)
		assert.Equal(t, map[string]string{"id": "7"}, entry.Params)
		assert.Equal(t, []string{"1"}, entry.Query["verbose"])
		assert.Equal(t, "192.0.2.1", entry.IP)
		assert.Equal(t, "tests", entry.UserAgent)
		assert.Equal(t, "insert failed", entry.Error)
		assert.NotContains(t, string(entry.Body), "hunter2")
		assert.Contains(t, string(entry.Body), `"Legs"`)
	})

	t.Run("truncated body is still redacted", func(t *testing.T) {
		sinkBuf.Reset()
		body := `{"Password":"hunter2","name":"` + strings.Repeat("x", maxLoggedBody) + `"}`
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/programs/7", strings.NewReader(body)))
		require.Equal(t, http.StatusInternalServerError, recorder.Code)

		var entry logger.ErrorEntry
		require.NoError(t, json.Unmarshal(sinkBuf.Bytes(), &entry))
		assert.NotContains(t, string(entry.Body), "hunter2")
		assert.Contains(t, string(entry.Body), "[REDACTED]")
	})

	t.Run("panic becomes a 500 with a stack", func(t *testing.T) {
		sinkBuf.Reset()
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/panic", nil))

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		assert.NotContains(t, recorder.Body.String(), "boom")

		var entry logger.ErrorEntry
		require.NoError(t, json.Unmarshal(sinkBuf.Bytes(), &entry))
		assert.Contains(t, entry.Error, "boom")
		assert.Contains(t, entry.Stack, "runtime/debug.Stack")
	})

	t.Run("4xx is not logged", func(t *testing.T) {
		sinkBuf.Reset()
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/fine", nil))

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.Zero(t, sinkBuf.Len())
	})
}
