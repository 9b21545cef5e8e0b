package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satyenduM/Quant-Matrix-EDA-App/internal/services"
)

type stubHealthService struct {
	status services.HealthStatus
}

func (s *stubHealthService) Check(ctx context.Context) services.HealthStatus {
	return s.status
}

func TestHealthCheckEndpoint(t *testing.T) {
	handler := NewHealthHandler(&stubHealthService{
		status: services.HealthStatus{
			Status:        "ok",
			Message:       "service is running",
			Timestamp:     time.Now().UTC(),
			Version:       "test",
			DatasetLoaded: true,
		},
	}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	handler.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got services.HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "ok", got.Status)
	assert.Equal(t, "service is running", got.Message)
	assert.True(t, got.DatasetLoaded)
}
