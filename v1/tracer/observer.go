package tracer

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	traceSpan "go.opentelemetry.io/otel/trace"

	"github.com/Aleph-Alpha/pglock/v1/observability"
)

// LockObserver records lock operations as OpenTelemetry spans. It implements
// observability.Observer, so it plugs straight into lock.WithObserver or the
// lock fx module.
//
// Observations arrive after the operation completed, so spans are created
// with explicit start and end timestamps reconstructed from the reported
// duration.
type LockObserver struct {
	tracer *Tracer
}

// NewLockObserver creates a LockObserver emitting spans through t.
func NewLockObserver(t *Tracer) *LockObserver {
	return &LockObserver{tracer: t}
}

// ObserveOperation implements observability.Observer.
func (o *LockObserver) ObserveOperation(op observability.OperationContext) {
	if op.Component != "lock" {
		return
	}

	end := time.Now()
	start := end.Add(-op.Duration)

	tracer := o.tracer.tracer.Tracer("")
	_, span := tracer.Start(context.Background(), "lock."+op.Operation,
		traceSpan.WithTimestamp(start),
		traceSpan.WithSpanKind(traceSpan.SpanKindClient),
		traceSpan.WithAttributes(
			attribute.String("lock.key", op.Resource),
			attribute.String("lock.interface", op.SubResource),
			attribute.String("db.system", "postgresql"),
		),
	)

	if op.Error != nil {
		span.RecordError(op.Error)
		span.SetStatus(codes.Error, op.Error.Error())
	}

	span.End(traceSpan.WithTimestamp(end))
}
