package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJSONWritesPayload(t *testing.T) {
	rec := httptest.NewRecorder()

	JSON(rec, http.StatusOK, map[string]int{"count": 3})

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 3, body["count"])
}

func TestMessageShape(t *testing.T) {
	rec := httptest.NewRecorder()

	Message(rec, http.StatusCreated, "created")

	require.Equal(t, http.StatusCreated, rec.Code)
	require.JSONEq(t, `{"message": "created"}`, rec.Body.String())
}

func TestErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)

	Error(rec, req, http.StatusInternalServerError, "Unexpected server error", errors.New("pq: connection refused"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"message": "Unexpected server error"}`, rec.Body.String())
	require.NotContains(t, rec.Body.String(), "connection refused")
}

func TestErrorWithoutErr(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/events/1", nil)

	Error(rec, req, http.StatusUnauthorized, "Caller identity is required", nil)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"message": "Caller identity is required"}`, rec.Body.String())
}
