package middleware

import (
	"net/http"

	"github.com/fittrack/fittrack-api/internal/api/shared"
	"github.com/fittrack/fittrack-api/internal/i18n"
)

// Locale picks the response language from Accept-Language and stores the
// matching localizer in the request context.
func Locale(bundle *i18n.Bundle) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			localizer := bundle.LocalizerFor(r.Header.Get("Accept-Language"))
			w.Header().Set("Content-Language", localizer.Locale())
			next.ServeHTTP(w, r.WithContext(shared.WithLocale(r.Context(), localizer)))
		})
	}
}
