package http

import (
	"context"

	"github.com/satyenduM/Quant-Matrix-EDA-App/internal/services"
	"github.com/satyenduM/Quant-Matrix-EDA-App/pkg/contracts/domain"
)

// DataService is the dashboard surface the data handler depends on.
type DataService interface {
	FilterOptions(ctx context.Context) (domain.FilterOptions, error)
	Dashboard(ctx context.Context, spec domain.FilterSpec) (map[string]any, error)
}

// HealthService is the surface the health handler depends on.
type HealthService interface {
	Check(ctx context.Context) services.HealthStatus
}
