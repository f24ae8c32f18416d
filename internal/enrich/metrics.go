package enrich

import "github.com/prometheus/client_golang/prometheus"

var upstreamReqs = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "enrich_upstream_requests_total",
		Help: "Enrichment upstream calls by upstream and outcome.",
	},
	[]string{"upstream", "outcome"},
)

func init() {
	prometheus.MustRegister(upstreamReqs)
}

func observe(upstream string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	upstreamReqs.WithLabelValues(upstream, outcome).Inc()
}
