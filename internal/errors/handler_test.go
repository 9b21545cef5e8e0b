package errors

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestHandleError(t *testing.T) {
	handler := NewErrorHandler(testLogger())

	t.Run("plain error maps to 500", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/data", nil)

		handler.HandleError(rec, req, errors.New("something broke"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "something broke", decodeError(t, rec))
	})

	t.Run("api error keeps its status", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/data", nil)

		handler.HandleError(rec, req, ErrValidation("bad filters"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "bad filters", decodeError(t, rec))
	})

	t.Run("nil error writes nothing", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/data", nil)

		handler.HandleError(rec, req, nil)

		assert.Empty(t, rec.Body.String())
	})
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	handler := NewErrorHandler(testLogger())

	rec := httptest.NewRecorder()
	handler.NotFound(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "resource not found", decodeError(t, rec))

	rec = httptest.NewRecorder()
	handler.MethodNotAllowed(rec, httptest.NewRequest(http.MethodDelete, "/data", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "method not allowed", decodeError(t, rec))
}
