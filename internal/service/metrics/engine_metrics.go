package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	EndpointLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "regimepulse",
			Subsystem: "api",
			Name:      "latency_seconds",
			Help:      "Latency of evaluation endpoints",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	EndpointErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "regimepulse",
			Subsystem: "api",
			Name:      "errors_total",
			Help:      "Errors by evaluation endpoint",
		},
		[]string{"endpoint"},
	)

	CacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "regimepulse",
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Computation cache hits",
		},
	)

	CacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "regimepulse",
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Computation cache misses",
		},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(EndpointLatency, EndpointErrors, CacheHits, CacheMisses)
	})
}
