package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by route and status code",
		},
		[]string{"method", "path", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Requests currently being served",
		},
	)
)

var (
	SubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "application_submissions_total",
			Help: "Rows appended per role, by outcome",
		},
		[]string{"role", "outcome"},
	)

	SheetsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "application_sheets_created_total",
			Help: "Sheets created on first submission",
		},
		[]string{"sheet"},
	)

	AppendDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "application_sheet_append_duration_seconds",
			Help:    "Duration of ensure-and-append against the sheet store",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"sheet"},
	)
)

// Init registers every collector with the default registry.
func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(RequestsInFlight)
	prometheus.MustRegister(SubmissionsTotal)
	prometheus.MustRegister(SheetsCreated)
	prometheus.MustRegister(AppendDuration)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
