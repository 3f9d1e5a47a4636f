package middleware

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5"

	"github.com/fittrack/fittrack-api/internal/api/shared"
	"github.com/fittrack/fittrack-api/internal/platform/logger"
	"github.com/fittrack/fittrack-api/internal/redact"
)

// maxLoggedBody bounds how much of a request body is kept for the error log.
const maxLoggedBody = 64 << 10

// ErrorLog is the outermost error boundary. It turns panics into a generic 500
// and appends an entry to sink for every 5xx response, with sensitive body
// fields redacted.
func ErrorLog(sink *logger.ErrorLog) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body := captureBody(r)
			ctx, recorder := shared.WithErrorRecorder(r.Context())
			r = r.WithContext(ctx)
			rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}

			var (
				panicErr error
				stack    string
			)
			func() {
				defer func() {
					if v := recover(); v != nil {
						if v == http.ErrAbortHandler {
							panic(v)
						}
						panicErr = fmt.Errorf("panic: %v", v)
						stack = string(debug.Stack())
						if !rec.wroteHeader {
							shared.RespondWithErrorAndLog(rec, r, http.StatusInternalServerError,
								shared.T(r.Context(), "error.internal"), panicErr)
						} else {
							rec.status = http.StatusInternalServerError
						}
					}
				}()
				next.ServeHTTP(rec, r)
			}()

			if rec.status < http.StatusInternalServerError {
				return
			}

			err := recorder.Err()
			if panicErr != nil {
				err = panicErr
			}
			entry := logger.ErrorEntry{
				TraceID:   shared.GetTraceID(r.Context()),
				Method:    r.Method,
				FullURL:   fullURL(r),
				Params:    routeParams(r),
				Query:     r.URL.Query(),
				IP:        clientIP(r),
				UserAgent: r.UserAgent(),
				Body:      redact.JSONBody(body),
				Status:    rec.status,
				Stack:     stack,
			}
			if err != nil {
				entry.Error = redact.Error(err)
			}
			if writeErr := sink.Write(entry); writeErr != nil {
				logger.FromContextOrDefault(r.Context(), slog.Default()).
					Error("failed to write error log entry", "error", writeErr)
			}
		})
	}
}

// captureBody reads up to maxLoggedBody bytes and restores r.Body so the
// handler still sees the full body.
func captureBody(r *http.Request) []byte {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	head, err := io.ReadAll(io.LimitReader(r.Body, maxLoggedBody))
	if err != nil {
		return nil
	}
	r.Body = struct {
		io.Reader
		io.Closer
	}{io.MultiReader(bytes.NewReader(head), r.Body), r.Body}
	return head
}

func fullURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}

func routeParams(r *http.Request) map[string]string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || len(rctx.URLParams.Keys) == 0 {
		return nil
	}
	params := make(map[string]string, len(rctx.URLParams.Keys))
	for i, key := range rctx.URLParams.Keys {
		if key == "*" || i >= len(rctx.URLParams.Values) {
			continue
		}
		params[key] = rctx.URLParams.Values[i]
	}
	return params
}

type responseRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (rr *responseRecorder) WriteHeader(status int) {
	if !rr.wroteHeader {
		rr.status = status
		rr.wroteHeader = true
	}
	rr.ResponseWriter.WriteHeader(status)
}

func (rr *responseRecorder) Write(b []byte) (int, error) {
	rr.wroteHeader = true
	return rr.ResponseWriter.Write(b)
}
