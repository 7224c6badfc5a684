package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gatherhub/server/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	pool, err := pgxpool.New(context.Background(), "postgres://gatherhub@localhost:5432/gatherhub_test")
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	handler, err := NewRouter(config.Config{}, zerolog.Nop(), pool)
	require.NoError(t, err)
	return handler
}

func TestRouterHealthz(t *testing.T) {
	handler := newTestRouter(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRouterMethodNotAllowed(t *testing.T) {
	handler := newTestRouter(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/auth/register", nil))

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Equal(t, "POST", rec.Header().Get("Allow"))
}

func TestRouterUnknownPath(t *testing.T) {
	handler := newTestRouter(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAllowedMethodsSorted(t *testing.T) {
	methods := allowedMethods(map[string]http.Handler{
		http.MethodPut:    nil,
		http.MethodGet:    nil,
		http.MethodDelete: nil,
	})
	require.Equal(t, "DELETE, GET, PUT", methods)
}
