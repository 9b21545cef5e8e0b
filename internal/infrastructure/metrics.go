package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const (
	// ServiceName identifies this service in telemetry output.
	ServiceName = "quant-matrix-eda"
	// MeterName scopes the instruments created by this package.
	MeterName = "quantmatrix"
)

// Metrics holds the OpenTelemetry meter provider, the HTTP instruments used
// by the request-metrics middleware, and the Prometheus scrape handler.
type Metrics struct {
	Provider *sdkmetric.MeterProvider
	Meter    metric.Meter

	RequestCounter  metric.Int64Counter
	RequestDuration metric.Float64Histogram

	PrometheusHTTP http.Handler
}

// NewMetrics initializes OpenTelemetry metrics with a Prometheus exporter.
func NewMetrics(version string, logger *slog.Logger) (*Metrics, error) {
	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(version),
	))
	if err != nil {
		return nil, fmt.Errorf("create telemetry resource: %w", err)
	}

	exporter, err := otelprom.New()
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	meter := provider.Meter(MeterName)

	requestCounter, err := meter.Int64Counter("http.server.request.count",
		metric.WithDescription("Number of HTTP requests processed"))
	if err != nil {
		return nil, fmt.Errorf("create request counter: %w", err)
	}
	requestDuration, err := meter.Float64Histogram("http.server.request.duration",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("create request duration histogram: %w", err)
	}

	logger.Info("metrics initialized",
		slog.String("service", ServiceName),
		slog.String("exporter", "prometheus"))

	return &Metrics{
		Provider:        provider,
		Meter:           meter,
		RequestCounter:  requestCounter,
		RequestDuration: requestDuration,
		PrometheusHTTP:  promhttp.Handler(),
	}, nil
}

// Shutdown flushes and stops the meter provider.
func (m *Metrics) Shutdown(ctx context.Context) error {
	if m == nil || m.Provider == nil {
		return nil
	}
	return m.Provider.Shutdown(ctx)
}
