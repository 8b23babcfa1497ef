package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carrental_http_requests_total",
			Help: "Total HTTP requests by method, route and status",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "carrental_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	RequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "carrental_http_requests_in_flight",
			Help: "HTTP requests currently being served",
		},
	)

	RentalTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carrental_rental_transitions_total",
			Help: "Persisted rental status changes",
		},
		[]string{"from", "to"},
	)

	StateRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carrental_rental_state_rejections_total",
			Help: "Operations rejected because the rental was in an incompatible status",
		},
		[]string{"operation", "status"},
	)

	RentalsByStatus = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "carrental_rentals",
			Help: "Rentals per status at the last fleet snapshot",
		},
		[]string{"status"},
	)

	OverdueRentals = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "carrental_rentals_overdue",
			Help: "Active rentals past their end date at the last fleet snapshot",
		},
	)
)

// RecordTransition counts a persisted status change; from is empty on creation.
func RecordTransition(from, to string) {
	if from == to {
		return
	}
	if from == "" {
		from = "none"
	}
	RentalTransitions.WithLabelValues(from, to).Inc()
}

func RecordStateRejection(operation, status string) {
	StateRejections.WithLabelValues(operation, status).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware collects request metrics keyed by the mux route template
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		RequestsInFlight.Inc()
		defer RequestsInFlight.Dec()

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		endpoint := "unknown"
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				endpoint = tpl
			}
		}

		RequestsTotal.WithLabelValues(r.Method, endpoint, strconv.Itoa(rec.status)).Inc()
		RequestDuration.WithLabelValues(r.Method, endpoint).Observe(time.Since(start).Seconds())
	})
}
