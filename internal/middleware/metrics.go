package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/satyenduM/Quant-Matrix-EDA-App/internal/infrastructure"
)

// RequestMetrics records a count and duration for every request using the
// OpenTelemetry instruments owned by the infrastructure package.
func RequestMetrics(m *infrastructure.Metrics) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m == nil {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			attrs := metric.WithAttributes(
				attribute.String("http.request.method", r.Method),
				attribute.String("http.route", r.URL.Path),
				attribute.Int("http.response.status_code", ww.Status()),
			)
			m.RequestCounter.Add(r.Context(), 1, attrs)
			m.RequestDuration.Record(r.Context(), time.Since(start).Seconds(), attrs)
		})
	}
}
