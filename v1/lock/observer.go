package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/Aleph-Alpha/pglock/v1/observability"
)

// timedOp runs one adapter round trip and notifies the observer with its
// duration and outcome.
func (l *Lock) timedOp(ctx context.Context, operation string, op func(ctx context.Context) error) error {
	start := time.Now()
	err := op(ctx)
	l.observeOperation(operation, time.Since(start), err)
	return err
}

// observeOperation notifies the observer about an operation if one is
// configured. This is used internally to track lock operations for metrics
// and tracing.
func (l *Lock) observeOperation(operation string, duration time.Duration, err error) {
	if l == nil || l.observer == nil {
		return
	}

	l.observer.ObserveOperation(observability.OperationContext{
		Component:   "lock",
		Operation:   operation,
		Resource:    fmt.Sprintf("%v", l.key),
		SubResource: string(l.iface),
		Duration:    duration,
		Error:       err,
		Metadata: map[string]interface{}{
			"lock_id": l.lockID,
			"scope":   string(l.scope),
			"shared":  l.shared,
		},
	})
}
