package worker

import "github.com/prometheus/client_golang/prometheus"

var (
	ingressBatches = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "inferd",
			Subsystem: "pipeline",
			Name:      "ingress_batches_total",
			Help:      "Batches handed to worker kernels",
		},
	)

	egressRequests = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "inferd",
			Subsystem: "pipeline",
			Name:      "egress_requests_total",
			Help:      "Requests completed by worker kernels",
		},
	)

	requestLatency = prometheus.NewSummary(
		prometheus.SummaryOpts{
			Namespace:  "inferd",
			Subsystem:  "pipeline",
			Name:       "request_latency_seconds",
			Help:       "Latency from batcher ingress to callback",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
	)
)

func init() {
	prometheus.MustRegister(ingressBatches, egressRequests, requestLatency)
}
