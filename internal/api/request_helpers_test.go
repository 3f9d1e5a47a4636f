package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fittrack/fittrack-api/internal/api/shared"
	"github.com/fittrack/fittrack-api/internal/domain"
)

// withURLParam returns r with a chi route context holding name=value.
func withURLParam(r *http.Request, name, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(name, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestGetPathID(t *testing.T) {
	tests := []struct {
		value   string
		want    int64
		wantErr bool
	}{
		{"42", 42, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"", 0, true},
		{"99999999999999999999", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			r := withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", tt.value)
			id, err := getPathID(r, "id")
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestParseListParams(t *testing.T) {
	tests := []struct {
		query   string
		want    domain.PageRequest
		search  string
		wantErr bool
	}{
		{query: "", want: domain.PageRequest{}},
		{query: "search=+push+", want: domain.PageRequest{}, search: "push"},
		{query: "page=2", want: domain.PageRequest{Page: 2, Limit: domain.DefaultPageSize}},
		{query: "limit=5", want: domain.PageRequest{Page: 1, Limit: 5}},
		{query: "page=1&limit=200", want: domain.PageRequest{Page: 1, Limit: domain.MaxPageSize}},
		{query: "page=0", wantErr: true},
		{query: "limit=-1", wantErr: true},
		{query: "page=two", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/exercises?"+tt.query, nil)
			params, err := parseListParams(r)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidPage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, params.Page)
			assert.Equal(t, tt.search, params.Search)
		})
	}
}

func TestRespondWithList(t *testing.T) {
	page := domain.NewPage([]string{"a", "b"}, domain.PageRequest{Page: 1, Limit: 2}, 3)

	rec := httptest.NewRecorder()
	respondWithList(rec, httptest.NewRequest(http.MethodGet, "/", nil), domain.PageRequest{}, page)
	assert.JSONEq(t, `["a","b"]`, rec.Body.String())

	rec = httptest.NewRecorder()
	respondWithList(rec, httptest.NewRequest(http.MethodGet, "/", nil), domain.PageRequest{Page: 1, Limit: 2}, page)
	assert.JSONEq(t, `{"items":["a","b"],"currentPage":1,"totalPages":2,"totalItems":3,"hasNextPage":true}`,
		rec.Body.String())
}

func TestGetIdentity(t *testing.T) {
	rec := httptest.NewRecorder()
	_, ok := getIdentity(rec, httptest.NewRequest(http.MethodGet, "/user", nil))
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	want := shared.Identity{ID: 7, Email: "a@example.com", Role: domain.RoleUser}
	r := httptest.NewRequest(http.MethodGet, "/user", nil)
	r = r.WithContext(shared.WithIdentity(r.Context(), want))
	got, ok := getIdentity(httptest.NewRecorder(), r)
	assert.True(t, ok)
	assert.Equal(t, want, got)
}
