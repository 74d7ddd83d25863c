package metrics

import (
	"errors"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/pglock/v1/observability"
)

func lockOp(operation, iface string, err error) observability.OperationContext {
	return observability.OperationContext{
		Component:   "lock",
		Operation:   operation,
		Resource:    "migrations",
		SubResource: iface,
		Duration:    25 * time.Millisecond,
		Error:       err,
	}
}

func findMetric(t *testing.T, m *Metrics, name string) *dto.MetricFamily {
	t.Helper()
	families, err := m.Registry.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func labelValue(metric *dto.Metric, name string) string {
	for _, l := range metric.GetLabel() {
		if l.GetName() == name {
			return l.GetValue()
		}
	}
	return ""
}

func TestLockObserverCountsOperations(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "test-service"})
	obs := NewLockObserver(m.Registerer())

	obs.ObserveOperation(lockOp("acquire", "pgx", nil))
	obs.ObserveOperation(lockOp("acquire", "pgx", nil))
	obs.ObserveOperation(lockOp("release", "pgx", errors.New("conn closed")))

	counters := findMetric(t, m, "lock_operations_total")
	require.NotNil(t, counters, "counter family must be registered")

	byOutcome := map[string]float64{}
	for _, metric := range counters.GetMetric() {
		key := labelValue(metric, "operation") + "/" + labelValue(metric, "outcome")
		byOutcome[key] = metric.GetCounter().GetValue()
		assert.Equal(t, "test-service", labelValue(metric, "service"))
		assert.Equal(t, "pgx", labelValue(metric, "interface"))
	}

	assert.Equal(t, float64(2), byOutcome["acquire/success"])
	assert.Equal(t, float64(1), byOutcome["release/error"])
}

func TestLockObserverRecordsDurations(t *testing.T) {
	m := NewMetrics(Config{})
	obs := NewLockObserver(m.Registerer())

	obs.ObserveOperation(lockOp("acquire", "gorm", nil))

	histograms := findMetric(t, m, "lock_operation_duration_seconds")
	require.NotNil(t, histograms, "histogram family must be registered")
	require.Len(t, histograms.GetMetric(), 1)

	h := histograms.GetMetric()[0].GetHistogram()
	assert.Equal(t, uint64(1), h.GetSampleCount())
	assert.InDelta(t, 0.025, h.GetSampleSum(), 0.0001)
}

func TestLockObserverIgnoresOtherComponents(t *testing.T) {
	m := NewMetrics(Config{})
	obs := NewLockObserver(m.Registerer())

	obs.ObserveOperation(observability.OperationContext{
		Component: "postgres",
		Operation: "ping",
	})

	counters := findMetric(t, m, "lock_operations_total")
	require.NotNil(t, counters)
	assert.Empty(t, counters.GetMetric(), "foreign components must not be counted")
}
