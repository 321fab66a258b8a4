// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backoffice_http_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "backoffice_http_request_duration_seconds",
			Help: "Duration of HTTP request handling in seconds",
		},
		[]string{"method", "route"},
	)

	IntakeRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backoffice_intake_requests_total",
			Help: "Natural-language task intake requests by outcome",
		},
		[]string{"outcome"},
	)

	IntakeExtractionFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backoffice_intake_extraction_failures_total",
			Help: "Extraction stage failures by error code",
		},
		[]string{"error_code"},
	)

	IntakeCustomersCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "backoffice_intake_customers_created_total",
			Help: "Customers created by the intake resolver",
		},
	)
)
