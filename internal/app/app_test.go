package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDataset(t *testing.T) string {
	t.Helper()
	csv := `date,Year,Month,SalesValue,Volume,Brand,PackType,PPG,Channel
15-01-2020,2020,1,100,10,Alfa,Can,Small,Retail
20-02-2020,2020,2,50,5,Bravo,Bottle,Large,Online
15-01-2021,2021,1,200,20,Alfa,Can,Small,Retail
`
	path := filepath.Join(t.TempDir(), "sales.csv")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0644))
	return path
}

func newTestApp(t *testing.T) *Application {
	t.Helper()
	t.Setenv("QME_DATASET_PATH", writeDataset(t))
	t.Setenv("QME_SECURITY_RATE_LIMIT_ENABLED", "false")

	application, err := New()
	require.NoError(t, err)
	return application
}

func TestEndpoints(t *testing.T) {
	application := newTestApp(t)

	t.Run("health with trailing slash", func(t *testing.T) {
		rec := httptest.NewRecorder()
		application.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "ok", body["status"])
	})

	t.Run("filters", func(t *testing.T) {
		rec := httptest.NewRecorder()
		application.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/filters/", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.ElementsMatch(t, []any{"Alfa", "Bravo"}, body["brands"])
	})

	t.Run("data with filters", func(t *testing.T) {
		payload := []byte(`{"filters":{"years":[2020]}}`)
		req := httptest.NewRequest(http.MethodPost, "/data/", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		application.Router().ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

		salesByYear, err := json.Marshal(body["salesByYear"])
		require.NoError(t, err)
		assert.JSONEq(t, `[{"Year":2020,"SalesValue":150}]`, string(salesByYear))
	})

	t.Run("unknown route", func(t *testing.T) {
		rec := httptest.NewRecorder()
		application.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

		require.Equal(t, http.StatusNotFound, rec.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.NotEmpty(t, body["error"])
	})

	t.Run("metrics endpoint", func(t *testing.T) {
		rec := httptest.NewRecorder()
		application.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
