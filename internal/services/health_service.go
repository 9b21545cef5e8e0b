package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/satyenduM/Quant-Matrix-EDA-App/internal/dataset"
)

// HealthStatus is the health check response body.
type HealthStatus struct {
	Status        string    `json:"status"`
	Message       string    `json:"message"`
	Timestamp     time.Time `json:"timestamp"`
	Version       string    `json:"version"`
	DatasetLoaded bool      `json:"datasetLoaded"`
}

// HealthService reports process liveness and whether the dataset has been
// loaded yet.
type HealthService struct {
	version string
	store   *dataset.Store
	logger  *slog.Logger
}

// NewHealthService creates a new health service.
func NewHealthService(version string, store *dataset.Store, logger *slog.Logger) *HealthService {
	return &HealthService{
		version: version,
		store:   store,
		logger:  logger.With(slog.String("service", "health")),
	}
}

// Check returns the current health status. The dataset loads lazily, so an
// unloaded dataset is still healthy.
func (s *HealthService) Check(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:        "ok",
		Message:       "service is running",
		Timestamp:     time.Now().UTC(),
		Version:       s.version,
		DatasetLoaded: s.store.Loaded(),
	}
}
