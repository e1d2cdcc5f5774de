package helpers

import (
	// Go Internal Packages
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	// Local Packages
	errors "pay-stream/errors"

	// External Packages
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withParam(name, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(name, value)
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestPathID(t *testing.T) {
	id, err := PathID(withParam("id", "42"), "id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"abc", "0", "-3", "1.5"} {
		_, err := PathID(withParam("id", raw), "id")
		assert.True(t, errors.Is(errors.Invalid, err), raw)
	}

	_, err = PathID(withParam("id", ""), "id")
	ve, ok := errors.Validation(err)
	require.True(t, ok)
	assert.Equal(t, []string{"id cannot be empty"}, ve.Messages())
}

func TestQueryInt(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/payments?page=3&limit=x", nil)

	page, err := QueryInt(r, "page", 1)
	require.NoError(t, err)
	assert.Equal(t, 3, page)

	missing, err := QueryInt(r, "offset", 20)
	require.NoError(t, err)
	assert.Equal(t, 20, missing)

	_, err = QueryInt(r, "limit", 20)
	assert.True(t, errors.Is(errors.Invalid, err))
}
