// Package metrics exposes Prometheus metrics for the pglock module.
//
// It provides an isolated registry per service, an HTTP server for the
// /metrics endpoint, and a LockObserver that exports advisory lock operation
// counters and latencies through the observability.Observer interface.
//
// Direct usage:
//
//	m := metrics.NewMetrics(metrics.Config{
//	    Address:                 ":9090",
//	    ServiceName:             "lock-service",
//	    EnableDefaultCollectors: true,
//	})
//	obs := metrics.NewLockObserver(m.Registerer())
//	go m.Server.ListenAndServe()
//
//	l, err := lock.New(conn, "reindex", lock.WithObserver(obs))
//
// With fx, FXModule provides the Metrics instance, binds the LockObserver to
// observability.Observer so the lock module picks it up automatically, and
// manages server startup and shutdown through the application lifecycle.
package metrics
