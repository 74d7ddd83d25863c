// Package observability defines the shared observability contract used by the
// pglock packages.
//
// Instead of a process-wide logger or metrics singleton, every client in this
// module accepts an optional Observer. Implementations can export metrics
// (see v1/metrics), record spans (see v1/tracer), or both at once via
// MultiObserver. The core lock logic stays fully testable without any global
// state.
package observability

import "time"

// OperationContext describes a single completed operation against an external
// system. It is passed to Observer implementations after the operation
// finishes, successfully or not.
type OperationContext struct {
	// Component identifies the package that performed the operation,
	// e.g. "lock" or "postgres".
	Component string

	// Operation is the operation name, e.g. "acquire", "release", "rollback".
	Operation string

	// Resource is the primary resource the operation targeted.
	// For lock operations this is the caller-supplied lock key.
	Resource string

	// SubResource carries additional context, e.g. the adapter family name.
	SubResource string

	// Duration is how long the operation took, including the database
	// round trip.
	Duration time.Duration

	// Error is the error the operation returned, or nil on success.
	Error error

	// Size is an operation-defined size in bytes, or 0 when not applicable.
	Size int64

	// Metadata carries operation-specific key/value pairs.
	Metadata map[string]interface{}
}

// Observer receives operation notifications.
//
// Implementations must be safe for concurrent use; a single Observer is
// typically shared between many clients.
type Observer interface {
	ObserveOperation(op OperationContext)
}

// MultiObserver fans a notification out to several observers in order.
type MultiObserver []Observer

// ObserveOperation implements Observer.
func (m MultiObserver) ObserveOperation(op OperationContext) {
	for _, o := range m {
		if o != nil {
			o.ObserveOperation(op)
		}
	}
}
