package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/youmna-rabie/uid2gateway/internal/types"
)

var (
	lookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "uid2gateway",
			Name:      "lookups_total",
			Help:      "Gateway lookups served over HTTP, by outcome.",
		},
		[]string{"status"},
	)

	lookupDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "uid2gateway",
			Name:      "lookup_duration_seconds",
			Help:      "Time spent scanning the gateway file for one lookup.",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

func observeLookup(status types.Status, elapsed time.Duration) {
	lookupsTotal.WithLabelValues(string(status)).Inc()
	lookupDuration.Observe(elapsed.Seconds())
}
