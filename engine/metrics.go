package engine

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors the Engine reports to. A nil
// *Metrics is valid everywhere Engine accepts one — every method below is
// nil-receiver safe — so instrumentation stays entirely opt-in.
type Metrics struct {
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
}

// NewMetrics registers the Engine's collectors against reg and returns a
// Metrics ready to pass to New. Passing prometheus.NewRegistry() (rather
// than the global DefaultRegisterer) keeps repeated test runs from
// colliding on duplicate registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "txnengine",
			Name:      "operations_total",
			Help:      "Total number of engine operations, labeled by operation kind and result.",
		}, []string{"op", "result"}),
		operationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "txnengine",
			Name:      "operation_duration_seconds",
			Help:      "Latency of engine operations, labeled by operation kind.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
	}
	reg.MustRegister(m.operationsTotal, m.operationDuration)
	return m
}

// observe records one completed operation of the given kind, its outcome
// ("ok", or "error" for any non-nil error), and its duration.
func (m *Metrics) observe(op string, err error, start time.Time) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.operationsTotal.WithLabelValues(op, result).Inc()
	m.operationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
