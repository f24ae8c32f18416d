package advisory

import "github.com/prometheus/client_golang/prometheus"

// Outcome label values of advisory_requests_total.
const (
	outcomeOK      = "ok"
	outcomeRefused = "refused"
	outcomeInvalid = "invalid"
	outcomeTimeout = "timeout"
	outcomeError   = "error"
)

var (
	adviceReqs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisory_requests_total",
			Help: "Advice requests handled by the gateway, by outcome.",
		},
		[]string{"outcome"},
	)

	// Model calls routinely take several seconds, so buckets reach past a minute.
	adviceLat = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "advisory_request_duration_seconds",
			Help:    "Duration of advice requests in seconds.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 4, 8, 15, 30, 60, 120},
		},
	)
)

func init() {
	prometheus.MustRegister(adviceReqs, adviceLat)
}
