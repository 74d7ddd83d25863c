// Package tracer provides OpenTelemetry tracing for the pglock module.
//
// It wraps the OpenTelemetry SDK with a small client for span creation and
// error recording, and provides a LockObserver that records advisory lock
// operations as client spans through the observability.Observer interface.
//
// Direct usage:
//
//	t := tracer.NewClient(tracer.Config{
//	    ServiceName:  "lock-service",
//	    AppEnv:       "staging",
//	    EnableExport: true,
//	}, log)
//
//	l, err := lock.New(conn, "reindex",
//	    lock.WithObserver(tracer.NewLockObserver(t)),
//	)
//
// The OTLP HTTP exporter reads its endpoint from the standard
// OTEL_EXPORTER_OTLP_* environment variables.
package tracer
