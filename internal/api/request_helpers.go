package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/fittrack/fittrack-api/internal/api/shared"
	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/fittrack/fittrack-api/internal/platform/logger"
	"github.com/fittrack/fittrack-api/internal/service"
)

// getPathID extracts a positive integer id from the URL path parameters.
func getPathID(r *http.Request, paramName string) (int64, error) {
	raw := chi.URLParam(r, paramName)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, shared.InvalidParam(paramName)
	}
	return id, nil
}

// handlePathID extracts a path id and writes a 400 response when it is
// invalid.
func handlePathID(w http.ResponseWriter, r *http.Request, paramName string, log *slog.Logger) (int64, bool) {
	id, err := getPathID(r, paramName)
	if err != nil {
		if log == nil {
			log = logger.FromContextOrDefault(r.Context(), slog.Default())
		}
		log.Debug("invalid path parameter",
			slog.String("param_name", paramName),
			slog.String("value", chi.URLParam(r, paramName)))
		HandleAPIError(w, r, err)
		return 0, false
	}
	return id, true
}

// getIdentity returns the caller set by the auth middleware. A missing
// identity means the route was mounted without authentication; it is answered
// with 401.
func getIdentity(w http.ResponseWriter, r *http.Request) (shared.Identity, bool) {
	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		logger.FromContextOrDefault(r.Context(), slog.Default()).
			Warn("identity not found in request context")
		HandleAPIError(w, r, domain.ErrUnauthenticated)
		return shared.Identity{}, false
	}
	return identity, true
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string) (*int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, domain.ErrInvalidPage
	}
	return &n, nil
}

// parseListParams reads the search, page and limit query parameters shared by
// every list endpoint.
func parseListParams(r *http.Request) (service.ListParams, error) {
	page, err := queryInt(r, "page")
	if err != nil {
		return service.ListParams{}, err
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		return service.ListParams{}, err
	}
	req, err := domain.NewPageRequest(page, limit)
	if err != nil {
		return service.ListParams{}, err
	}
	return service.ListParams{
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
		Page:   req,
	}, nil
}

// respondWithList writes a bare array when no page was requested and the page
// envelope otherwise.
func respondWithList[T any](w http.ResponseWriter, r *http.Request, req domain.PageRequest, page *domain.Page[T]) {
	if !req.Enabled() {
		shared.RespondWithJSON(w, r, http.StatusOK, page.Items)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, page)
}

// mapPage converts the items of a page, keeping its counts.
func mapPage[T, U any](page *domain.Page[T], fn func(T) U) *domain.Page[U] {
	items := make([]U, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, fn(item))
	}
	return &domain.Page[U]{
		Items:       items,
		CurrentPage: page.CurrentPage,
		TotalPages:  page.TotalPages,
		TotalItems:  page.TotalItems,
		HasNextPage: page.HasNextPage,
	}
}

// decodeAndValidate decodes the body into req and validates it, writing the
// error response on failure.
// Fields of the wrong type are reported together with every other failed rule.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	decodeErr := shared.DecodeJSON(r, req)
	var typeErrs *shared.ValidationError
	if decodeErr != nil && !errors.As(decodeErr, &typeErrs) {
		HandleAPIError(w, r, decodeErr)
		return false
	}
	if err := shared.CombineValidationErrors(req, decodeErr, shared.ValidateRequest(req)); err != nil {
		HandleAPIError(w, r, err)
		return false
	}
	return true
}
