package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Aleph-Alpha/pglock/v1/observability"
)

// LockObserver exports lock operation metrics to Prometheus. It implements
// observability.Observer, so it plugs straight into lock.WithObserver or the
// lock fx module.
//
// Exported metrics:
//   - lock_operations_total{operation,interface,outcome}
//   - lock_operation_duration_seconds{operation,interface}
type LockObserver struct {
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
}

// NewLockObserver creates a LockObserver and registers its collectors with
// reg, typically Metrics.Registerer().
//
// Example:
//
//	m := metrics.NewMetrics(cfg)
//	obs := metrics.NewLockObserver(m.Registerer())
//	l, err := lock.New(conn, "reindex", lock.WithObserver(obs))
func NewLockObserver(reg prometheus.Registerer) *LockObserver {
	o := &LockObserver{
		operationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lock_operations_total",
				Help: "Total number of advisory lock operations by outcome",
			},
			[]string{"operation", "interface", "outcome"},
		),
		operationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lock_operation_duration_seconds",
				Help:    "Duration of advisory lock database round trips in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "interface"},
		),
	}

	reg.MustRegister(o.operationsTotal, o.operationDuration)
	return o
}

// ObserveOperation implements observability.Observer.
func (o *LockObserver) ObserveOperation(op observability.OperationContext) {
	if op.Component != "lock" {
		return
	}

	outcome := "success"
	if op.Error != nil {
		outcome = "error"
	}

	o.operationsTotal.WithLabelValues(op.Operation, op.SubResource, outcome).Inc()
	o.operationDuration.WithLabelValues(op.Operation, op.SubResource).Observe(op.Duration.Seconds())
}
