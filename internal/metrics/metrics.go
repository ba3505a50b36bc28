package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SignalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "signaldesk_signals_total", Help: "Signals produced, by ticker and signal"},
		[]string{"ticker", "signal"},
	)
	EvaluationErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "signaldesk_evaluation_errors_total", Help: "Failed evaluations by stage"},
		[]string{"stage"},
	)
	FetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "signaldesk_fetch_duration_seconds",
			Help:    "Market data fetch latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)
	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "signaldesk_cache_lookups_total", Help: "Bar cache lookups by result"},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(SignalsTotal, EvaluationErrors, FetchDuration, CacheLookups)
}

// Serve exposes /metrics on addr in a background goroutine.
func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
