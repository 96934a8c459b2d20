package prometheus

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter metrics
var (
	// Login counters
	LoginCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "petcare_login_total",
			Help: "Total number of login attempts",
		},
	)

	// Registration counters
	RegisterCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "petcare_register_total",
			Help: "Total number of user registrations",
		},
	)

	// Booking counter
	BookingCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "petcare_bookings_total",
			Help: "Total number of appointment booking attempts",
		},
	)

	// Scheduling conflict counter
	SchedulingConflictCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "petcare_scheduling_conflicts_total",
			Help: "Total number of bookings rejected because the slot was taken",
		},
	)

	// Appointment status transition counter
	TransitionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petcare_appointment_transitions_total",
			Help: "Total number of appointment status transitions",
		},
		[]string{"to"}, // target status: "Confirmed", "Completed", "Cancelled"
	)

	// Medical record counter
	MedicalRecordCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petcare_medical_records_total",
			Help: "Total number of medical records created",
		},
		[]string{"kind"}, // "vaccination" or "medication"
	)

	// Error counters
	AuthErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petcare_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"type"}, // "login_failure", "invalid_token", "missing_token", etc.
	)

	// HTTP request counter by endpoint and status
	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petcare_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)
)

// Histogram metrics
var (
	// Request duration
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "petcare_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)
)

// InitMetrics registers all metrics with the default registry
func InitMetrics() {
	prometheus.MustRegister(
		LoginCounter,
		RegisterCounter,
		BookingCounter,
		SchedulingConflictCounter,
		TransitionCounter,
		MedicalRecordCounter,
		AuthErrorCounter,
		HTTPRequestCounter,
		RequestDuration,
	)
}

// RecordAuthError increments the auth error counter for the given type
func RecordAuthError(errorType string) {
	AuthErrorCounter.WithLabelValues(errorType).Inc()
}

// MetricsMiddleware records request count and duration for every route
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			status := strconv.Itoa(c.Response().Status)
			method := c.Request().Method
			path := c.Path()

			HTTPRequestCounter.WithLabelValues(path, method, status).Inc()
			RequestDuration.WithLabelValues(path, method, status).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// Handler exposes the Prometheus metrics endpoint
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}
