package batcher

import "github.com/prometheus/client_golang/prometheus"

var (
	batchSizes = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "inferd",
			Subsystem: "pipeline",
			Name:      "batch_size",
			Help:      "Number of requests per emitted batch",
			Buckets:   []float64{1, 2, 4, 8, 16, 32, 64},
		},
	)

	requestsRejected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "inferd",
			Subsystem: "pipeline",
			Name:      "requests_rejected_total",
			Help:      "Requests rejected during batch layout",
		},
	)
)

func init() {
	prometheus.MustRegister(batchSizes, requestsRejected)
}
