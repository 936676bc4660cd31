package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pview",
		Subsystem: "api",
		Name:      "requests_total",
		Help:      "The total number of project API requests",
	}, []string{"code", "method"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pview",
		Subsystem: "api",
		Name:      "request_duration_seconds",
		Help:      "The duration of project API requests",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})
)

// instrument wraps the round tripper with request metrics.
func instrument(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return promhttp.InstrumentRoundTripperCounter(requestCounter,
		promhttp.InstrumentRoundTripperDuration(requestDuration, next),
	)
}
