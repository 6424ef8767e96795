package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware_AttachesIDToContext(t *testing.T) {
	var got string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = getRequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := requestIDMiddleware()(inner)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/feed", nil))

	require.NotEmpty(t, got)
	assert.NotEqual(t, "unknown", got)

	first := got
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/feed", nil))
	assert.NotEqual(t, first, got, "each request gets its own id")
}

func TestGetRequestID_MissingFromContext(t *testing.T) {
	assert.Equal(t, "unknown", getRequestID(context.Background()))
}
