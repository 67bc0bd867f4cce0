package store

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	persistTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "store_persist_total",
			Help:      "Total number of ledger persist attempts",
		},
		[]string{"backend", "result"},
	)
	persistDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ledger",
			Name:      "store_persist_duration_seconds",
			Help:      "Duration of ledger persists in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"backend"},
	)
)

func observePersist(backend string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	persistTotal.WithLabelValues(backend, result).Inc()
	persistDuration.WithLabelValues(backend).Observe(time.Since(start).Seconds())
}
